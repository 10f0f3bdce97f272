//go:build linux

package virtualinput

import (
	"fmt"
	"time"

	"github.com/bendahl/uinput"

	"github.com/synrais/padkeys/pkg/keys"
)

var uinputKeys = keymap[int]{
	wasd: map[keys.VirtualKey]int{
		keys.Up:      uinput.KeyW,
		keys.Down:    uinput.KeyS,
		keys.Left:    uinput.KeyA,
		keys.Right:   uinput.KeyD,
		keys.Confirm: uinput.KeyEnter,
	},
	arrows: map[keys.VirtualKey]int{
		keys.Up:      uinput.KeyUp,
		keys.Down:    uinput.KeyDown,
		keys.Left:    uinput.KeyLeft,
		keys.Right:   uinput.KeyRight,
		keys.Confirm: uinput.KeyEnter,
	},
}

func init() {
	register("uinput", NewKeyboard)
}

// keyDevice is the part of uinput.Keyboard the backend uses.
type keyDevice interface {
	KeyDown(key int) error
	KeyUp(key int) error
	Close() error
}

// Keyboard is a uinput virtual keyboard.
type Keyboard struct {
	Device keyDevice
	Layout keys.Layout
}

// NewKeyboard creates the uinput virtual keyboard device. The device must
// be closed when the program stops.
func NewKeyboard(opts Options) (Injector, error) {
	kbd, err := uinput.CreateKeyboard(uinputDevice, []byte(opts.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create keyboard device: %w", err)
	}
	if opts.Settle > 0 {
		time.Sleep(opts.Settle)
	}
	return &Keyboard{Device: kbd, Layout: opts.Layout}, nil
}

func (k *Keyboard) Close() error {
	if err := k.Device.Close(); err != nil {
		return fmt.Errorf("failed to close keyboard device: %w", err)
	}
	return nil
}

func (k *Keyboard) Press(key keys.VirtualKey) error {
	code, err := uinputKeys.lookup(k.Layout, key)
	if err == nil {
		err = k.Device.KeyDown(code)
	}
	if err != nil {
		return &InjectionError{Backend: "uinput", Op: "press", Key: key, Err: err}
	}
	return nil
}

func (k *Keyboard) Release(key keys.VirtualKey) error {
	code, err := uinputKeys.lookup(k.Layout, key)
	if err == nil {
		err = k.Device.KeyUp(code)
	}
	if err != nil {
		return &InjectionError{Backend: "uinput", Op: "release", Key: key, Err: err}
	}
	return nil
}
