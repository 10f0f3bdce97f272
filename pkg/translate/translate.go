// Package translate turns controller readings into key requests.
//
// The hat and the analog stick drive the same four directional keys. Each
// event resolves its own channel completely, and the last event processed
// wins; there is no arbitration between the two sources.
package translate

import "github.com/synrais/padkeys/pkg/keys"

// Deadzone is the axis magnitude below which a stick counts as centred.
const Deadzone = 0.3

const (
	AxisHorizontal = 0
	AxisVertical   = 1
)

// KeyTracker receives the translated key requests.
type KeyTracker interface {
	RequestPress(keys.VirtualKey)
	RequestRelease(keys.VirtualKey)
	Tap(keys.VirtualKey)
}

// Translator routes hat, axis and button readings to a KeyTracker.
type Translator struct {
	tracker KeyTracker
}

func New(t KeyTracker) *Translator {
	return &Translator{tracker: t}
}

// ProcessHat treats the hat position as authoritative: every directional
// key is released, then the keys matching the signs of x and y are pressed.
// y = 1 is up.
func (t *Translator) ProcessHat(x, y int) {
	for _, k := range keys.Directional {
		t.tracker.RequestRelease(k)
	}

	switch sign(y) {
	case 1:
		t.tracker.RequestPress(keys.Up)
	case -1:
		t.tracker.RequestPress(keys.Down)
	}

	switch sign(x) {
	case -1:
		t.tracker.RequestPress(keys.Left)
	case 1:
		t.tracker.RequestPress(keys.Right)
	}
}

// ProcessAxis handles a stick reading in [-1, 1]. Negative vertical values
// point up. Axes other than 0 and 1 are ignored.
func (t *Translator) ProcessAxis(axis int, value float64) {
	var neg, pos keys.VirtualKey
	switch axis {
	case AxisVertical:
		neg, pos = keys.Up, keys.Down
	case AxisHorizontal:
		neg, pos = keys.Left, keys.Right
	default:
		return
	}

	switch {
	case value < -Deadzone:
		t.tracker.RequestPress(neg)
		t.tracker.RequestRelease(pos)
	case value > Deadzone:
		t.tracker.RequestPress(pos)
		t.tracker.RequestRelease(neg)
	default:
		t.tracker.RequestRelease(neg)
		t.tracker.RequestRelease(pos)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
