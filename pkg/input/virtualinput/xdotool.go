package virtualinput

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/synrais/padkeys/pkg/keys"
)

var xdotoolKeys = keymap[string]{
	wasd: map[keys.VirtualKey]string{
		keys.Up:      "w",
		keys.Down:    "s",
		keys.Left:    "a",
		keys.Right:   "d",
		keys.Confirm: "Return",
	},
	arrows: map[keys.VirtualKey]string{
		keys.Up:      "Up",
		keys.Down:    "Down",
		keys.Left:    "Left",
		keys.Right:   "Right",
		keys.Confirm: "Return",
	},
}

func init() {
	register("xdotool", NewXdotool)
}

// Xdotool shells out to the xdotool command for every transition. It needs
// an X display.
type Xdotool struct {
	path   string
	layout keys.Layout
	run    func(name string, args ...string) error
}

func NewXdotool(opts Options) (Injector, error) {
	path, err := exec.LookPath(opts.XdotoolPath)
	if err != nil {
		return nil, fmt.Errorf("xdotool not available: %w", err)
	}
	return &Xdotool{path: path, layout: opts.Layout, run: runCommand}, nil
}

func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

func (x *Xdotool) Close() error { return nil }

func (x *Xdotool) Press(key keys.VirtualKey) error {
	return x.toggle("press", "keydown", key)
}

func (x *Xdotool) Release(key keys.VirtualKey) error {
	return x.toggle("release", "keyup", key)
}

func (x *Xdotool) toggle(op, verb string, key keys.VirtualKey) error {
	name, err := xdotoolKeys.lookup(x.layout, key)
	if err == nil {
		err = x.run(x.path, verb, name)
	}
	if err != nil {
		return &InjectionError{Backend: "xdotool", Op: op, Key: key, Err: err}
	}
	return nil
}
