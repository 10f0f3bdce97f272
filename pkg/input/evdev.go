//go:build linux

package input

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/holoplot/go-evdev"
	"golang.org/x/exp/slices"
)

const evdevQueueSize = 256

func init() {
	Register("evdev", evdevDriver{})
}

type evdevDriver struct{}

func (evdevDriver) WatchDir() string { return "/dev/input" }

// Discover returns event nodes that advertise joystick or gamepad buttons.
func (evdevDriver) Discover() ([]string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, p := range paths {
		d, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if isJoystick(d.CapableEvents(evdev.EV_KEY)) {
			out = append(out, p.Path)
		}
		d.Close()
	}
	sortByNodeNumber(out)
	return out, nil
}

func (evdevDriver) Open(path string) (Device, error) {
	d, err := evdev.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, path)
		}
		return nil, &DeviceInitError{Path: path, Err: err}
	}
	dev, err := newEvdevDevice(d, path)
	if err != nil {
		d.Close()
		return nil, &DeviceInitError{Path: path, Err: err}
	}
	go dev.readLoop()
	return dev, nil
}

// isJoystick reports whether any key code falls in the joystick or
// gamepad button ranges.
func isJoystick(codes []evdev.EvCode) bool {
	for _, c := range codes {
		if c >= evdev.BTN_JOYSTICK && c < evdev.BTN_DIGI {
			return true
		}
	}
	return false
}

type readResult struct {
	ev  *evdev.InputEvent
	err error
}

// evdevDevice numbers buttons and stick axes in code order, the way SDL
// does, so button and axis indices match other drivers.
type evdevDevice struct {
	dev  *evdev.InputDevice
	info DeviceInfo

	buttons map[evdev.EvCode]int
	axes    map[evdev.EvCode]int
	ranges  map[evdev.EvCode]evdev.AbsInfo
	hats    hatState

	read     func() (*evdev.InputEvent, error)
	queue    chan readResult
	done     chan struct{}
	stopOnce sync.Once
	err      error
}

func newEvdevDevice(d *evdev.InputDevice, path string) (*evdevDevice, error) {
	name, err := d.Name()
	if err != nil {
		return nil, fmt.Errorf("query name: %w", err)
	}
	ranges, err := d.AbsInfos()
	if err != nil {
		return nil, fmt.Errorf("query axes: %w", err)
	}

	buttons, axes, hats := indexCapabilities(d.CapableEvents(evdev.EV_KEY), d.CapableEvents(evdev.EV_ABS))

	info := DeviceInfo{
		Name:    name,
		Path:    path,
		Axes:    len(axes),
		Buttons: len(buttons),
		Hats:    hats,
	}
	if id, err := d.InputID(); err == nil {
		info.GUID = makeGUID(int(id.Vendor), int(id.Product), int(id.Version))
	}

	return &evdevDevice{
		dev:     d,
		info:    info,
		buttons: buttons,
		axes:    axes,
		ranges:  ranges,
		hats:    hatState{},
		read:    d.ReadOne,
		queue:   make(chan readResult, evdevQueueSize),
		done:    make(chan struct{}),
	}, nil
}

func indexCapabilities(keyCodes, absCodes []evdev.EvCode) (buttons, axes map[evdev.EvCode]int, hats int) {
	keyCodes = slices.Clone(keyCodes)
	absCodes = slices.Clone(absCodes)
	slices.Sort(keyCodes)
	slices.Sort(absCodes)

	buttons = map[evdev.EvCode]int{}
	for _, c := range keyCodes {
		if c >= evdev.BTN_MISC {
			buttons[c] = len(buttons)
		}
	}

	axes = map[evdev.EvCode]int{}
	seenHats := map[int]bool{}
	for _, c := range absCodes {
		if hat, _, ok := hatAxis(int(c)); ok {
			seenHats[hat] = true
			continue
		}
		axes[c] = len(axes)
	}
	return buttons, axes, len(seenHats)
}

// readLoop owns the blocking reads. It stops when the device is closed,
// even if nobody drains the queue any more.
func (e *evdevDevice) readLoop() {
	defer close(e.queue)
	for {
		ev, err := e.read()
		if err != nil {
			select {
			case e.queue <- readResult{err: err}:
			default:
			}
			return
		}
		select {
		case e.queue <- readResult{ev: ev}:
		case <-e.done:
			return
		}
	}
}

func (e *evdevDevice) stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

func (e *evdevDevice) Info() DeviceInfo { return e.info }

func (e *evdevDevice) Close() error {
	e.stop()
	return e.dev.Close()
}

func (e *evdevDevice) Poll() ([]Event, error) {
	if e.err != nil {
		return nil, e.err
	}
	var events []Event
	for {
		select {
		case r, ok := <-e.queue:
			if !ok {
				e.err = fmt.Errorf("%w: %s", ErrDeviceLost, e.info.Path)
				return events, e.err
			}
			if r.err != nil {
				e.err = fmt.Errorf("%w: %s: %v", ErrDeviceLost, e.info.Path, r.err)
				return events, e.err
			}
			if ev, ok := e.decode(r.ev); ok {
				events = append(events, ev)
			}
		default:
			return events, nil
		}
	}
}

func (e *evdevDevice) decode(ev *evdev.InputEvent) (Event, bool) {
	switch ev.Type {
	case evdev.EV_KEY:
		idx, ok := e.buttons[ev.Code]
		if !ok || ev.Value == 2 { // autorepeat
			return nil, false
		}
		return ButtonEvent{Button: idx, Pressed: ev.Value != 0}, true
	case evdev.EV_ABS:
		if hat, isY, ok := hatAxis(int(ev.Code)); ok {
			return e.hats.update(hat, isY, ev.Value)
		}
		idx, ok := e.axes[ev.Code]
		if !ok {
			return nil, false
		}
		r := e.ranges[ev.Code]
		return AxisEvent{Axis: idx, Value: normalizeAxis(ev.Value, r.Minimum, r.Maximum)}, true
	}
	return nil, false
}
