package input

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	settleDelay = 10 * time.Millisecond
}

func TestWaitForDevicePresent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "pad0"))
	registerDir(t, "waittest", dirDriver{dir: dir})

	path, err := WaitForDevice(context.Background(), "waittest", time.Second)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pad0"), path)
}

func TestWaitForDeviceHotplug(t *testing.T) {
	dir := t.TempDir()
	registerDir(t, "waittest", dirDriver{dir: dir})

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "pad3"), nil, 0o644)
	}()

	path, err := WaitForDevice(context.Background(), "waittest", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pad3"), path)
}

func TestWaitForDeviceTimeout(t *testing.T) {
	registerDir(t, "waittest", dirDriver{dir: t.TempDir()})

	_, err := WaitForDevice(context.Background(), "waittest", 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestWaitForDeviceCancelled(t *testing.T) {
	registerDir(t, "waittest", dirDriver{dir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WaitForDevice(ctx, "waittest", 0)
	assert.ErrorIs(t, err, context.Canceled)
}
