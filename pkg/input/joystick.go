//go:build linux

package input

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	jsEventSize = 8

	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80

	// ioctl requests from <linux/joystick.h>
	jsiocgAxes    = 0x80016a11
	jsiocgButtons = 0x80016a12
	jsiocgName    = 0x80006a13 // size is or'ed in at bits 16..29
	jsiocgAxmap   = 0x80406a32
	absCnt        = 0x40

	jsNameLen = 128
)

var (
	jsDevGlob      = "/dev/input/js*"
	sysfsInputRoot = "/sys/class/input"
)

func init() {
	Register("joydev", joydevDriver{})
}

type joydevDriver struct{}

func (joydevDriver) WatchDir() string { return filepath.Dir(jsDevGlob) }

func (joydevDriver) Discover() ([]string, error) {
	paths, err := filepath.Glob(jsDevGlob)
	if err != nil {
		return nil, err
	}
	sortByNodeNumber(paths)
	return paths, nil
}

func (joydevDriver) Open(path string) (Device, error) {
	dev, err := openJoystickDevice(path)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// sortByNodeNumber orders js2 before js10.
func sortByNodeNumber(paths []string) {
	num := func(p string) int {
		base := filepath.Base(p)
		i := strings.LastIndexFunc(base, func(r rune) bool { return r < '0' || r > '9' })
		n, _ := strconv.Atoi(base[i+1:])
		return n
	}
	sort.SliceStable(paths, func(a, b int) bool { return num(paths[a]) < num(paths[b]) })
}

// -------- sysfs metadata ----------

func le16(x int) int {
	return ((x & 0xFF) << 8) | ((x >> 8) & 0xFF)
}

// makeGUID builds the SDL joystick GUID for a USB device.
func makeGUID(vid, pid, version int) string {
	if vid == 0 || pid == 0 {
		return ""
	}
	return fmt.Sprintf("03000000%04x0000%04x0000%04x0000",
		le16(vid), le16(pid), le16(version))
}

func getJSMetadata(path string) (name string, vid, pid, ver int) {
	sysdir := filepath.Join(sysfsInputRoot, filepath.Base(path), "device")
	readHex := func(fname string) int {
		b, err := os.ReadFile(filepath.Join(sysdir, fname))
		if err != nil {
			return 0
		}
		v, _ := strconv.ParseInt(strings.TrimSpace(string(b)), 16, 32)
		return int(v)
	}
	if b, err := os.ReadFile(filepath.Join(sysdir, "name")); err == nil {
		name = strings.TrimSpace(string(b))
	}
	return name, readHex("id/vendor"), readHex("id/product"), readHex("id/version")
}

// -------- device ----------

// joystickDevice reads the legacy joystick API from a non-blocking fd.
type joystickDevice struct {
	info DeviceInfo
	fd   int

	// js axis number -> logical axis index; hat axes are absent
	axes map[int]int
	// js axis number -> ABS code, for hat axes only
	hatAxes map[int]int
	hats    hatState
	buf     []byte
}

func ioctlBytes(fd int, req uintptr, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

func openJoystickDevice(path string) (*joystickDevice, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ENODEV) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, path)
		}
		return nil, &DeviceInitError{Path: path, Err: err}
	}

	var naxes, nbuttons [1]byte
	if err := ioctlBytes(fd, jsiocgAxes, naxes[:]); err != nil {
		unix.Close(fd)
		return nil, &DeviceInitError{Path: path, Err: fmt.Errorf("JSIOCGAXES: %w", err)}
	}
	if err := ioctlBytes(fd, jsiocgButtons, nbuttons[:]); err != nil {
		unix.Close(fd)
		return nil, &DeviceInitError{Path: path, Err: fmt.Errorf("JSIOCGBUTTONS: %w", err)}
	}
	axmap := make([]byte, absCnt)
	if err := ioctlBytes(fd, jsiocgAxmap, axmap); err != nil {
		// Without the map every axis is a plain axis.
		for i := range axmap {
			axmap[i] = byte(i)
		}
	}

	sysName, vid, pid, ver := getJSMetadata(path)
	name := sysName
	nameBuf := make([]byte, jsNameLen)
	if err := ioctlBytes(fd, jsiocgName|uintptr(jsNameLen)<<16, nameBuf); err == nil {
		if s := strings.TrimRight(string(nameBuf), "\x00"); s != "" {
			name = s
		}
	}

	axes, hatAxes, hats := splitAxes(axmap[:naxes[0]])

	return &joystickDevice{
		info: DeviceInfo{
			Name:    name,
			Path:    path,
			GUID:    makeGUID(vid, pid, ver),
			Axes:    len(axes),
			Buttons: int(nbuttons[0]),
			Hats:    hats,
		},
		fd:      fd,
		axes:    axes,
		hatAxes: hatAxes,
		hats:    hatState{},
		buf:     make([]byte, jsEventSize*64),
	}, nil
}

// splitAxes separates hat axes from stick axes using the ABS code of each
// joystick axis, and numbers the stick axes consecutively.
func splitAxes(axmap []byte) (axes, hatAxes map[int]int, hats int) {
	axes = map[int]int{}
	hatAxes = map[int]int{}
	seenHats := map[int]bool{}
	for num, code := range axmap {
		if hat, _, ok := hatAxis(int(code)); ok {
			hatAxes[num] = int(code)
			seenHats[hat] = true
			continue
		}
		axes[num] = len(axes)
	}
	return axes, hatAxes, len(seenHats)
}

func (j *joystickDevice) Info() DeviceInfo { return j.info }

func (j *joystickDevice) Close() error {
	if j.fd < 0 {
		return nil
	}
	err := unix.Close(j.fd)
	j.fd = -1
	return err
}

func (j *joystickDevice) Poll() ([]Event, error) {
	if j.fd < 0 {
		return nil, ErrDeviceLost
	}
	var events []Event
	for {
		n, err := unix.Read(j.fd, j.buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				return events, nil
			}
			return events, fmt.Errorf("%w: %s: %v", ErrDeviceLost, j.info.Path, err)
		}
		if n == 0 {
			return events, fmt.Errorf("%w: %s", ErrDeviceLost, j.info.Path)
		}
		for off := 0; off+jsEventSize <= n; off += jsEventSize {
			if ev, ok := j.decode(j.buf[off : off+jsEventSize]); ok {
				events = append(events, ev)
			}
		}
		if n < len(j.buf) {
			return events, nil
		}
	}
}

// decode converts one js_event. Init events describe the state at open
// time and are dropped.
func (j *joystickDevice) decode(b []byte) (Event, bool) {
	value := int16(binary.NativeEndian.Uint16(b[4:6]))
	etype := b[6]
	num := int(b[7])

	if etype&jsEventInit != 0 {
		return nil, false
	}

	switch etype {
	case jsEventButton:
		return ButtonEvent{Button: num, Pressed: value != 0}, true
	case jsEventAxis:
		if code, ok := j.hatAxes[num]; ok {
			hat, isY, _ := hatAxis(code)
			return j.hats.update(hat, isY, int32(value))
		}
		idx, ok := j.axes[num]
		if !ok {
			return nil, false
		}
		return AxisEvent{Axis: idx, Value: normalizeAxis(int32(value), -32767, 32767)}, true
	}
	return nil, false
}
