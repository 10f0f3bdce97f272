// inputdebug prints raw controller events and the key transitions padkeys
// would make for them, without touching the keyboard.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/synrais/padkeys/pkg/config"
	"github.com/synrais/padkeys/pkg/dispatch"
	"github.com/synrais/padkeys/pkg/input"
	"github.com/synrais/padkeys/pkg/keys"
	"github.com/synrais/padkeys/pkg/keystate"
	"github.com/synrais/padkeys/pkg/translate"
)

// dryRun accepts every key transition.
type dryRun struct{}

func (dryRun) Press(keys.VirtualKey) error   { return nil }
func (dryRun) Release(keys.VirtualKey) error { return nil }

func main() {
	cfg, err := config.EnsureUserConfig(config.AppName, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[DEBUG] Config load error:", err)
		os.Exit(1)
	}
	driver := cfg.Device.Driver
	path := cfg.Device.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	dev, err := input.Open(driver, path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[DEBUG]", err)
		os.Exit(1)
	}
	info := dev.Info()
	fmt.Printf("[DEBUG] %s (%s) via %s: axes=%d buttons=%d hats=%d\n",
		info.Name, info.Path, driver, info.Axes, info.Buttons, info.Hats)
	fmt.Println("[DEBUG] Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "", log.Ltime|log.Lmicroseconds)
	tracker := keystate.NewTracker(dryRun{}, logger)
	tracker.SetVerbose(true)

	d := dispatch.New(dev, translate.New(tracker), tracker, logger)
	d.Events = func(ev input.Event) {
		logger.Printf("[INPUT] %v", ev)
	}
	if err := d.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "[DEBUG]", err)
		os.Exit(1)
	}
}
