package input

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Event is one controller event. The concrete types are HatEvent,
// AxisEvent, ButtonEvent and QuitEvent.
type Event interface {
	isEvent()
}

// HatEvent reports the full position of one hat. Y = 1 is up.
type HatEvent struct {
	Hat  int
	X, Y int
}

// AxisEvent reports a stick axis normalised to [-1, 1].
type AxisEvent struct {
	Axis  int
	Value float64
}

// ButtonEvent reports a button transition.
type ButtonEvent struct {
	Button  int
	Pressed bool
}

// QuitEvent asks the dispatcher to stop.
type QuitEvent struct{}

func (HatEvent) isEvent()    {}
func (AxisEvent) isEvent()   {}
func (ButtonEvent) isEvent() {}
func (QuitEvent) isEvent()   {}

func (e HatEvent) String() string { return fmt.Sprintf("hat %d x=%d y=%d", e.Hat, e.X, e.Y) }
func (e AxisEvent) String() string {
	return fmt.Sprintf("axis %d value=%.3f", e.Axis, e.Value)
}
func (e ButtonEvent) String() string {
	if e.Pressed {
		return fmt.Sprintf("button %d down", e.Button)
	}
	return fmt.Sprintf("button %d up", e.Button)
}
func (QuitEvent) String() string { return "quit" }

// DeviceInfo describes an opened controller.
type DeviceInfo struct {
	Name    string
	Path    string
	GUID    string
	Axes    int
	Buttons int
	Hats    int
}

// Device is an opened controller.
type Device interface {
	Info() DeviceInfo
	// Poll returns the events that arrived since the last call. It never
	// blocks.
	Poll() ([]Event, error)
	Close() error
}

var (
	ErrDeviceNotFound = errors.New("no controller found")
	ErrDeviceLost     = errors.New("controller disconnected")
)

// DeviceInitError reports a controller that exists but could not be
// opened or queried.
type DeviceInitError struct {
	Path string
	Err  error
}

func (e *DeviceInitError) Error() string {
	return fmt.Sprintf("failed to initialise controller %s: %v", e.Path, e.Err)
}

func (e *DeviceInitError) Unwrap() error { return e.Err }

// Driver discovers and opens controllers of one kind.
type Driver interface {
	// Discover returns candidate device paths in index order.
	Discover() ([]string, error)
	Open(path string) (Device, error)
	// WatchDir is the directory whose changes may add a device, or "" when
	// hotplug waiting is not supported.
	WatchDir() string
}

var drivers = map[string]Driver{}

// Register makes a driver available by name. It is called from init
// functions of driver files.
func Register(name string, d Driver) {
	drivers[strings.ToLower(name)] = d
}

// Drivers lists the registered driver names.
func Drivers() []string {
	names := maps.Keys(drivers)
	slices.Sort(names)
	return names
}

func lookup(name string) (Driver, error) {
	d, ok := drivers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown input driver %q (available: %s)",
			name, strings.Join(Drivers(), ", "))
	}
	return d, nil
}

// Discover lists controllers for the named driver.
func Discover(driver string) ([]string, error) {
	d, err := lookup(driver)
	if err != nil {
		return nil, err
	}
	return d.Discover()
}

// Open opens path with the named driver. An empty path selects the first
// discovered controller.
func Open(driver, path string) (Device, error) {
	d, err := lookup(driver)
	if err != nil {
		return nil, err
	}
	if path == "" {
		paths, err := d.Discover()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeviceNotFound, err)
		}
		if len(paths) == 0 {
			return nil, ErrDeviceNotFound
		}
		path = paths[0]
	}
	dev, err := d.Open(path)
	if err != nil {
		var initErr *DeviceInitError
		if errors.Is(err, ErrDeviceNotFound) || errors.As(err, &initErr) {
			return nil, err
		}
		return nil, &DeviceInitError{Path: path, Err: err}
	}
	return dev, nil
}
