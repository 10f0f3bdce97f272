// Package keystatetest provides an in-memory injector for tests.
package keystatetest

import (
	"fmt"

	"github.com/synrais/padkeys/pkg/keys"
)

// Call is one injector invocation.
type Call struct {
	Op  string // "press" or "release"
	Key keys.VirtualKey
}

func (c Call) String() string {
	return c.Op + " " + c.Key.String()
}

// Press and Release build expected calls.
func Press(k keys.VirtualKey) Call   { return Call{Op: "press", Key: k} }
func Release(k keys.VirtualKey) Call { return Call{Op: "release", Key: k} }

// Recorder records every call. Keys listed in FailPress or FailRelease
// return an error instead; failed calls are still recorded.
type Recorder struct {
	Calls       []Call
	FailPress   map[keys.VirtualKey]bool
	FailRelease map[keys.VirtualKey]bool
	Closed      bool
}

func (r *Recorder) Press(k keys.VirtualKey) error {
	r.Calls = append(r.Calls, Press(k))
	if r.FailPress[k] {
		return fmt.Errorf("press %s: injected failure", k)
	}
	return nil
}

func (r *Recorder) Release(k keys.VirtualKey) error {
	r.Calls = append(r.Calls, Release(k))
	if r.FailRelease[k] {
		return fmt.Errorf("release %s: injected failure", k)
	}
	return nil
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count returns how many calls match c.
func (r *Recorder) Count(c Call) int {
	n := 0
	for _, got := range r.Calls {
		if got == c {
			n++
		}
	}
	return n
}
