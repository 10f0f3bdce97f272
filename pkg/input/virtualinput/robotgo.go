//go:build robotgo

package virtualinput

import (
	"github.com/go-vgo/robotgo"

	"github.com/synrais/padkeys/pkg/keys"
)

var robotgoKeys = keymap[string]{
	wasd: map[keys.VirtualKey]string{
		keys.Up:      "w",
		keys.Down:    "s",
		keys.Left:    "a",
		keys.Right:   "d",
		keys.Confirm: "enter",
	},
	arrows: map[keys.VirtualKey]string{
		keys.Up:      "up",
		keys.Down:    "down",
		keys.Left:    "left",
		keys.Right:   "right",
		keys.Confirm: "enter",
	},
}

func init() {
	register("robotgo", func(opts Options) (Injector, error) {
		return &Robotgo{layout: opts.Layout}, nil
	})
}

// Robotgo toggles keys through robotgo's native bindings.
type Robotgo struct {
	layout keys.Layout
}

func (r *Robotgo) Close() error { return nil }

func (r *Robotgo) Press(key keys.VirtualKey) error {
	return r.toggle("press", "down", key)
}

func (r *Robotgo) Release(key keys.VirtualKey) error {
	return r.toggle("release", "up", key)
}

func (r *Robotgo) toggle(op, dir string, key keys.VirtualKey) error {
	name, err := robotgoKeys.lookup(r.layout, key)
	if err == nil {
		err = robotgo.KeyToggle(name, dir)
	}
	if err != nil {
		return &InjectionError{Backend: "robotgo", Op: op, Key: key, Err: err}
	}
	return nil
}
