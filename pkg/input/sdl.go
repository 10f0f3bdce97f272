//go:build sdl

package input

import (
	"fmt"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	Register("sdl", sdlDriver{})
}

// sdlDriver addresses joysticks by SDL device index ("0", "1", ...).
type sdlDriver struct{}

func (sdlDriver) WatchDir() string { return "/dev/input" }

func (sdlDriver) Discover() ([]string, error) {
	if err := sdl.Init(sdl.INIT_JOYSTICK); err != nil {
		return nil, err
	}
	defer sdl.QuitSubSystem(sdl.INIT_JOYSTICK)

	n := sdl.NumJoysticks()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		paths = append(paths, strconv.Itoa(i))
	}
	return paths, nil
}

func (sdlDriver) Open(path string) (Device, error) {
	index, err := strconv.Atoi(path)
	if err != nil {
		return nil, fmt.Errorf("%w: sdl device index %q", ErrDeviceNotFound, path)
	}
	if err := sdl.Init(sdl.INIT_JOYSTICK); err != nil {
		return nil, &DeviceInitError{Path: path, Err: err}
	}
	if index >= sdl.NumJoysticks() {
		sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
		return nil, ErrDeviceNotFound
	}
	joy := sdl.JoystickOpen(index)
	if joy == nil {
		err := sdl.GetError()
		sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
		return nil, &DeviceInitError{Path: path, Err: err}
	}
	return &sdlDevice{
		joy: joy,
		info: DeviceInfo{
			Name:    joy.Name(),
			Path:    "sdl:" + path,
			Axes:    joy.NumAxes(),
			Buttons: joy.NumButtons(),
			Hats:    joy.NumHats(),
		},
	}, nil
}

type sdlDevice struct {
	joy  *sdl.Joystick
	info DeviceInfo
}

func (s *sdlDevice) Info() DeviceInfo { return s.info }

func (s *sdlDevice) Close() error {
	if s.joy != nil {
		s.joy.Close()
		s.joy = nil
		sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
	}
	return nil
}

func (s *sdlDevice) Poll() ([]Event, error) {
	var events []Event
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			events = append(events, QuitEvent{})
		case *sdl.JoyHatEvent:
			x, y := sdlHat(ev.Value)
			events = append(events, HatEvent{Hat: int(ev.Hat), X: x, Y: y})
		case *sdl.JoyAxisEvent:
			events = append(events, AxisEvent{
				Axis:  int(ev.Axis),
				Value: normalizeAxis(int32(ev.Value), -32768, 32767),
			})
		case *sdl.JoyButtonEvent:
			events = append(events, ButtonEvent{
				Button:  int(ev.Button),
				Pressed: ev.State == sdl.PRESSED,
			})
		case *sdl.JoyDeviceRemovedEvent:
			if ev.Which == s.joy.InstanceID() {
				return events, fmt.Errorf("%w: %s", ErrDeviceLost, s.info.Path)
			}
		}
	}
	return events, nil
}

// sdlHat converts an SDL hat bitmask to signs with y = 1 for up.
func sdlHat(v uint8) (x, y int) {
	if v&sdl.HAT_UP != 0 {
		y = 1
	} else if v&sdl.HAT_DOWN != 0 {
		y = -1
	}
	if v&sdl.HAT_LEFT != 0 {
		x = -1
	} else if v&sdl.HAT_RIGHT != 0 {
		x = 1
	}
	return x, y
}
