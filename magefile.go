//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

const binDir = "bin"

var commands = []string{"padkeys", "inputdebug"}

func build(tags string) error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	for _, c := range commands {
		args := []string{"build", "-o", filepath.Join(binDir, c)}
		if tags != "" {
			args = append(args, "-tags", tags)
		}
		args = append(args, "./cmd/"+c)
		fmt.Println("[MAGE] building", c, tags)
		if err := sh.RunV("go", args...); err != nil {
			return err
		}
	}
	return nil
}

// Build compiles the commands without the cgo backends.
func Build() error {
	return build("")
}

// BuildAll also compiles the SDL driver and the robotgo backend.
func BuildAll() error {
	return build("sdl robotgo")
}

// Test vets the code and runs the unit tests.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "./...")
}

// Vet checks the code, including the tagged files.
func Vet() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "-tags", "sdl robotgo", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
