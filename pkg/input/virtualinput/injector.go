// Package virtualinput emits key presses to the operating system through
// interchangeable backends.
package virtualinput

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/synrais/padkeys/pkg/keys"
)

const (
	DeviceName     = "padkeys"
	DefaultBackend = "uinput"
	DefaultSettle  = 200 * time.Millisecond
	defaultXdotool = "xdotool"
	uinputDevice   = "/dev/uinput"
)

// Injector performs OS-level key transitions for virtual keys.
type Injector interface {
	Press(keys.VirtualKey) error
	Release(keys.VirtualKey) error
	Close() error
}

// Options configure a backend. An empty Name or XdotoolPath selects the
// default.
type Options struct {
	Layout keys.Layout
	// Name of the virtual keyboard device, where the backend creates one.
	Name string
	// Settle is how long to wait after creating a virtual device before
	// the first key, so the desktop has picked it up.
	Settle      time.Duration
	XdotoolPath string
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = DeviceName
	}
	if o.XdotoolPath == "" {
		o.XdotoolPath = defaultXdotool
	}
	return o
}

// InjectionError reports a failed press or release.
type InjectionError struct {
	Backend string
	Op      string
	Key     keys.VirtualKey
	Err     error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Backend, e.Op, e.Key, e.Err)
}

func (e *InjectionError) Unwrap() error { return e.Err }

type factory func(Options) (Injector, error)

var backends = map[string]factory{}

func register(name string, f factory) {
	backends[name] = f
}

// Backends lists the available backend names.
func Backends() []string {
	names := maps.Keys(backends)
	slices.Sort(names)
	return names
}

// New creates the named backend.
func New(backend string, opts Options) (Injector, error) {
	if backend == "" {
		backend = DefaultBackend
	}
	f, ok := backends[strings.ToLower(backend)]
	if !ok {
		return nil, fmt.Errorf("unknown key injector %q (available: %s)",
			backend, strings.Join(Backends(), ", "))
	}
	return f(opts.withDefaults())
}

// keymap holds one backend's key identifiers for both layouts.
type keymap[T any] struct {
	wasd   map[keys.VirtualKey]T
	arrows map[keys.VirtualKey]T
}

func (m keymap[T]) lookup(l keys.Layout, k keys.VirtualKey) (T, error) {
	table := m.wasd
	if l == keys.LayoutArrows {
		table = m.arrows
	}
	v, ok := table[k]
	if !ok {
		var zero T
		return zero, fmt.Errorf("no key for %s in %s layout", k, l)
	}
	return v, nil
}
