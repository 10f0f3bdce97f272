package input

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives udev time to fix permissions on a new device node.
var settleDelay = 250 * time.Millisecond

// WaitForDevice returns the first controller of driver, waiting for one to
// be plugged in when none is present. A zero timeout waits until ctx is
// done. It returns ErrDeviceNotFound when the timeout expires.
func WaitForDevice(ctx context.Context, driver string, timeout time.Duration) (string, error) {
	d, err := lookup(driver)
	if err != nil {
		return "", err
	}
	dir := d.WatchDir()
	if dir == "" {
		return first(d)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("hotplug watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return "", fmt.Errorf("hotplug watch %s: %w", dir, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Checked after the watch is in place so a device that appears in
	// between is not missed.
	if path, err := first(d); err == nil {
		return path, nil
	}

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", fmt.Errorf("%w after waiting %s", ErrDeviceNotFound, timeout)
			}
			return "", ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return "", ErrDeviceNotFound
			}
			if ev.Op&(fsnotify.Create|fsnotify.Chmod) != 0 && settle == nil {
				settle = time.After(settleDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return "", ErrDeviceNotFound
			}
			return "", fmt.Errorf("hotplug watch: %w", err)
		case <-settle:
			settle = nil
			if path, err := first(d); err == nil {
				return path, nil
			}
		}
	}
}

func first(d Driver) (string, error) {
	paths, err := d.Discover()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeviceNotFound, err)
	}
	if len(paths) == 0 {
		return "", ErrDeviceNotFound
	}
	return paths[0], nil
}
