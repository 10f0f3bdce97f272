package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synrais/padkeys/pkg/config"
	"github.com/synrais/padkeys/pkg/input"
	"github.com/synrais/padkeys/pkg/keys"
)

// listDriver reports a single fixed controller.
type listDriver struct{}

func (listDriver) WatchDir() string            { return "" }
func (listDriver) Discover() ([]string, error) { return []string{"pad0"}, nil }
func (listDriver) Open(path string) (input.Device, error) {
	return listDevice{path}, nil
}

type listDevice struct{ path string }

func (d listDevice) Info() input.DeviceInfo {
	return input.DeviceInfo{Name: "List Pad", Path: d.path, GUID: "0300", Axes: 2, Buttons: 6, Hats: 1}
}
func (listDevice) Poll() ([]input.Event, error) { return nil, nil }
func (listDevice) Close() error                 { return nil }

func init() {
	input.Register("listtest", listDriver{})
}

func withConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "padkeys.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	t.Setenv(config.UserConfigEnv, path)
	t.Setenv(config.UserAppPathEnv, filepath.Join(dir, "padkeys"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitNoDevice, exitCode(input.ErrDeviceNotFound))
	assert.Equal(t, exitNoDevice, exitCode(fmt.Errorf("open: %w", input.ErrDeviceNotFound)))
	assert.Equal(t, exitDeviceInit, exitCode(&input.DeviceInitError{Path: "/dev/input/js0", Err: fmt.Errorf("permission denied")}))
	assert.Equal(t, exitError, exitCode(input.ErrDeviceLost))
}

func TestBannerPlainWhenNotTerminal(t *testing.T) {
	var out bytes.Buffer
	info := input.DeviceInfo{Name: "Xbox 360 Pad", Path: "/dev/input/js0", GUID: "abc", Axes: 6, Buttons: 11, Hats: 1}

	printBanner(&out, info, keys.LayoutArrows)

	s := out.String()
	assert.Contains(t, s, "padkeys: arrows")
	assert.Contains(t, s, "Xbox 360 Pad")
	assert.Contains(t, s, "Axes: 6  Buttons: 11  Hats: 1")
	assert.Contains(t, s, "Up Arrow")
	assert.Contains(t, s, "Enter")
	assert.NotContains(t, s, "╭")
}

func TestBannerOmitsEmptyGUID(t *testing.T) {
	_, body := bannerText(input.DeviceInfo{Name: "pad"}, keys.LayoutWASD)
	assert.NotContains(t, body, "GUID")
	assert.Contains(t, body, "W A S D")
}

func TestConfigDumpIsPureJSON(t *testing.T) {
	withConfig(t, "[injector]\nbackend = telepathy\nlayout = arrows\n")
	var stdout, stderr bytes.Buffer

	require.Equal(t, exitOK, run([]string{"-config"}, &stdout, &stderr))

	var dump map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &dump), stdout.String())
	assert.Equal(t, "arrows", dump["injector"].(map[string]any)["layout"])
	assert.NotContains(t, stdout.String(), "[CONFIG]")
	assert.Contains(t, stderr.String(), "[CONFIG] Loaded config from")
}

func TestListIgnoresInjectorSettings(t *testing.T) {
	withConfig(t, "[device]\ndriver = listtest\n[injector]\nbackend = telepathy\nlayout = dvorak\n")
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitOK, run([]string{"-list"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "pad0  List Pad  [0300]  axes=2 buttons=6 hats=1")
	assert.NotContains(t, stderr.String(), "Invalid config")
}

func TestListRejectsUnknownDriver(t *testing.T) {
	withConfig(t, "[device]\ndriver = hidraw\n")
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitError, run([]string{"-list"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "driver")
}

func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitError, run([]string{"-bogus"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: padkeys")
}
