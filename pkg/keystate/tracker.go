// Package keystate keeps the set of virtual keys padkeys currently holds
// down and makes sure each transition reaches the injector exactly once.
package keystate

import (
	"io"
	"log"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/synrais/padkeys/pkg/keys"
)

// Injector performs the OS-level key transitions.
type Injector interface {
	Press(keys.VirtualKey) error
	Release(keys.VirtualKey) error
}

// Tracker owns the held-key set. It is not safe for concurrent use; the
// dispatcher goroutine is its only caller.
//
// The held set records what was successfully delivered: a failed press
// leaves the key unheld so the next request retries it, and a failed
// release leaves the key held so a later release or Drain retries it.
type Tracker struct {
	inj     Injector
	log     *log.Logger
	verbose bool
	held    map[keys.VirtualKey]bool
}

// NewTracker returns an empty tracker. A nil logger discards output.
func NewTracker(inj Injector, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Tracker{
		inj:  inj,
		log:  logger,
		held: make(map[keys.VirtualKey]bool),
	}
}

// SetVerbose logs every emitted transition when v is true.
func (t *Tracker) SetVerbose(v bool) {
	t.verbose = v
}

// RequestPress presses k unless it is already held. Confirm is never held
// and is tapped instead.
func (t *Tracker) RequestPress(k keys.VirtualKey) {
	if k == keys.Confirm {
		t.Tap(k)
		return
	}
	if !k.Holdable() || t.held[k] {
		return
	}
	if err := t.inj.Press(k); err != nil {
		t.log.Printf("[KEYS] press %s failed: %v", k, err)
		return
	}
	t.held[k] = true
	if t.verbose {
		t.log.Printf("[KEYS] down %s", k)
	}
}

// RequestRelease releases k if it is held.
func (t *Tracker) RequestRelease(k keys.VirtualKey) {
	if !t.held[k] {
		return
	}
	if err := t.inj.Release(k); err != nil {
		t.log.Printf("[KEYS] release %s failed: %v", k, err)
		return
	}
	delete(t.held, k)
	if t.verbose {
		t.log.Printf("[KEYS] up %s", k)
	}
}

// Tap presses and immediately releases k without touching the held set.
// The release is attempted even when the press fails.
func (t *Tracker) Tap(k keys.VirtualKey) {
	if err := t.inj.Press(k); err != nil {
		t.log.Printf("[KEYS] tap %s: press failed: %v", k, err)
	}
	if err := t.inj.Release(k); err != nil {
		t.log.Printf("[KEYS] tap %s: release failed: %v", k, err)
		return
	}
	if t.verbose {
		t.log.Printf("[KEYS] tap %s", k)
	}
}

// Drain releases every held key and returns how many are still held
// afterwards because their release failed.
func (t *Tracker) Drain() int {
	for _, k := range t.Held() {
		t.RequestRelease(k)
	}
	return len(t.held)
}

// IsHeld reports whether k is currently held.
func (t *Tracker) IsHeld(k keys.VirtualKey) bool {
	return t.held[k]
}

// Held returns the held keys in Up, Down, Left, Right order.
func (t *Tracker) Held() []keys.VirtualKey {
	out := maps.Keys(t.held)
	slices.Sort(out)
	return out
}
