// Package dispatch runs the polling loop that feeds controller events into
// the translator.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/synrais/padkeys/pkg/input"
	"github.com/synrais/padkeys/pkg/translate"
)

// PollInterval is one frame at 60 Hz.
const PollInterval = time.Second / 60

// Drainer releases every held key and reports how many are still held.
type Drainer interface {
	Drain() int
}

// Dispatcher owns the device for the lifetime of Run.
type Dispatcher struct {
	Device     input.Device
	Translator *translate.Translator
	Keys       Drainer
	Log        *log.Logger
	Interval   time.Duration
	// Events, when set, sees every event before it is routed.
	Events func(input.Event)
}

func New(dev input.Device, tr *translate.Translator, keys Drainer, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{
		Device:     dev,
		Translator: tr,
		Keys:       keys,
		Log:        logger,
		Interval:   PollInterval,
	}
}

// Run polls until a quit event, ctx cancellation or a device error. Held
// keys are drained and the device closed on every exit path, panics
// included. Only device errors are returned.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer func() {
		if cerr := d.Device.Close(); cerr != nil {
			d.Log.Printf("[INPUT] close device: %v", cerr)
		}
	}()
	defer func() {
		if n := d.Keys.Drain(); n > 0 {
			d.Log.Printf("[KEYS] %d key(s) still held after drain", n)
		}
	}()

	interval := d.Interval
	if interval <= 0 {
		interval = PollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			d.Log.Println("[PADKEYS] interrupted, shutting down")
			return nil
		}

		events, perr := d.Device.Poll()
		quit := false
		for _, ev := range events {
			if d.Events != nil {
				d.Events(ev)
			}
			if !d.route(ev) {
				quit = true
			}
		}
		// The rest of a batch is still routed after a quit event.
		if quit {
			d.Log.Println("[PADKEYS] quit requested")
			return nil
		}
		if perr != nil {
			return fmt.Errorf("poll %s: %w", d.Device.Info().Path, perr)
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}
}

// route forwards ev and reports false for a quit event.
func (d *Dispatcher) route(ev input.Event) bool {
	switch e := ev.(type) {
	case input.HatEvent:
		d.Translator.ProcessHat(e.X, e.Y)
	case input.AxisEvent:
		d.Translator.ProcessAxis(e.Axis, e.Value)
	case input.ButtonEvent:
		d.Translator.ProcessButton(e.Button, e.Pressed)
	case input.QuitEvent:
		return false
	}
	return true
}
