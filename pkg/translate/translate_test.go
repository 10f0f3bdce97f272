package translate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synrais/padkeys/pkg/keys"
	"github.com/synrais/padkeys/pkg/keystate"
	kt "github.com/synrais/padkeys/pkg/keystate/keystatetest"
)

func setup() (*Translator, *keystate.Tracker, *kt.Recorder) {
	rec := &kt.Recorder{}
	tr := keystate.NewTracker(rec, nil)
	return New(tr), tr, rec
}

func held(ks ...keys.VirtualKey) []keys.VirtualKey {
	if ks == nil {
		return []keys.VirtualKey{}
	}
	return ks
}

func TestHatUpThenRight(t *testing.T) {
	x, tr, rec := setup()

	x.ProcessHat(0, 1)
	assert.Equal(t, held(keys.Up), tr.Held())
	assert.Equal(t, []kt.Call{kt.Press(keys.Up)}, rec.Calls)

	rec.Reset()
	x.ProcessHat(1, 0)
	assert.Equal(t, held(keys.Right), tr.Held())
	assert.Equal(t, []kt.Call{kt.Release(keys.Up), kt.Press(keys.Right)}, rec.Calls)
}

func TestHatMatchesSignsFromAnyPriorState(t *testing.T) {
	positions := []int{-1, 0, 1}
	for _, px := range positions {
		for _, py := range positions {
			for _, x := range positions {
				for _, y := range positions {
					name := fmt.Sprintf("(%d,%d)->(%d,%d)", px, py, x, y)
					tx, tr, _ := setup()
					tx.ProcessAxis(AxisVertical, 0.9)
					tx.ProcessHat(px, py)
					tx.ProcessHat(x, y)

					var want []keys.VirtualKey
					switch y {
					case 1:
						want = append(want, keys.Up)
					case -1:
						want = append(want, keys.Down)
					}
					switch x {
					case -1:
						want = append(want, keys.Left)
					case 1:
						want = append(want, keys.Right)
					}
					assert.Equal(t, held(want...), tr.Held(), name)
				}
			}
		}
	}
}

func TestHatResetOverridesStick(t *testing.T) {
	x, tr, _ := setup()

	x.ProcessAxis(AxisHorizontal, -1)
	x.ProcessAxis(AxisVertical, 1)
	assert.Equal(t, held(keys.Down, keys.Left), tr.Held())

	x.ProcessHat(0, 0)
	assert.Empty(t, tr.Held())
}

func TestHatClampsOutOfRangeValues(t *testing.T) {
	x, tr, _ := setup()

	x.ProcessHat(5, -3)

	assert.Equal(t, held(keys.Down, keys.Right), tr.Held())
}

func TestAxisScenario(t *testing.T) {
	x, tr, rec := setup()

	x.ProcessAxis(AxisVertical, -0.5)
	assert.Equal(t, held(keys.Up), tr.Held())
	assert.Equal(t, []kt.Call{kt.Press(keys.Up)}, rec.Calls)

	rec.Reset()
	x.ProcessAxis(AxisVertical, 0.1)
	assert.Empty(t, tr.Held())
	assert.Equal(t, []kt.Call{kt.Release(keys.Up)}, rec.Calls)
}

func TestAxisDeadzoneReleasesBoth(t *testing.T) {
	for _, v := range []float64{-0.299, -0.1, 0, 0.1, 0.299} {
		for _, prior := range []float64{-1, 0, 1} {
			x, tr, _ := setup()
			x.ProcessAxis(AxisVertical, prior)
			x.ProcessAxis(AxisVertical, v)
			assert.False(t, tr.IsHeld(keys.Up), "prior %v value %v", prior, v)
			assert.False(t, tr.IsHeld(keys.Down), "prior %v value %v", prior, v)
		}
	}
}

func TestAxisThresholdIsExclusive(t *testing.T) {
	x, tr, _ := setup()

	x.ProcessAxis(AxisHorizontal, 0.3)
	assert.Empty(t, tr.Held())

	x.ProcessAxis(AxisHorizontal, -0.3)
	assert.Empty(t, tr.Held())
}

func TestAxisExclusivity(t *testing.T) {
	for _, v := range []float64{0.31, 0.5, 1} {
		x, tr, _ := setup()
		x.ProcessAxis(AxisVertical, -1)
		x.ProcessAxis(AxisVertical, v)
		assert.True(t, tr.IsHeld(keys.Down), "value %v", v)
		assert.False(t, tr.IsHeld(keys.Up), "value %v", v)
	}
}

func TestAxisHorizontalFlip(t *testing.T) {
	x, tr, rec := setup()

	x.ProcessAxis(AxisHorizontal, -0.8)
	x.ProcessAxis(AxisHorizontal, 0.8)

	assert.Equal(t, held(keys.Right), tr.Held())
	assert.Equal(t, []kt.Call{
		kt.Press(keys.Left),
		kt.Press(keys.Right),
		kt.Release(keys.Left),
	}, rec.Calls)
}

func TestAxisChannelsAreIndependent(t *testing.T) {
	x, tr, _ := setup()

	x.ProcessAxis(AxisHorizontal, 0.9)
	x.ProcessAxis(AxisVertical, -0.9)
	x.ProcessAxis(AxisVertical, 0)

	assert.Equal(t, held(keys.Right), tr.Held())
}

func TestOtherAxesIgnored(t *testing.T) {
	x, tr, rec := setup()
	x.ProcessAxis(AxisVertical, -1)
	rec.Reset()

	for _, axis := range []int{-1, 2, 3, 5} {
		x.ProcessAxis(axis, 1)
		x.ProcessAxis(axis, 0)
	}

	assert.Empty(t, rec.Calls)
	assert.Equal(t, held(keys.Up), tr.Held())
}

func TestButtonsHoldDirections(t *testing.T) {
	x, tr, rec := setup()

	for i, k := range keys.Directional {
		x.ProcessButton(i, true)
		assert.True(t, tr.IsHeld(k), k.String())
	}
	for i, k := range keys.Directional {
		x.ProcessButton(i, false)
		assert.False(t, tr.IsHeld(k), k.String())
	}
	assert.Len(t, rec.Calls, 8)
}

func TestConfirmButtonScenario(t *testing.T) {
	x, tr, rec := setup()

	x.ProcessButton(4, true)
	assert.Equal(t, []kt.Call{kt.Press(keys.Confirm), kt.Release(keys.Confirm)}, rec.Calls)
	assert.Empty(t, tr.Held())

	rec.Reset()
	x.ProcessButton(4, false)
	assert.Empty(t, rec.Calls)
}

func TestConfirmNeverPersists(t *testing.T) {
	x, tr, rec := setup()
	x.ProcessButton(0, true)

	for i := 0; i < 5; i++ {
		x.ProcessButton(4, true)
		x.ProcessButton(5, true)
		x.ProcessButton(5, false)
		assert.False(t, tr.IsHeld(keys.Confirm))
	}

	assert.Equal(t, 10, rec.Count(kt.Press(keys.Confirm)))
	assert.Equal(t, held(keys.Up), tr.Held())
}

func TestUnmappedButtonsIgnored(t *testing.T) {
	x, _, rec := setup()

	for _, b := range []int{-1, 6, 7, 15} {
		x.ProcessButton(b, true)
		x.ProcessButton(b, false)
	}

	assert.Empty(t, rec.Calls)
}

func TestButtonAndHatShareKeys(t *testing.T) {
	x, tr, _ := setup()

	x.ProcessButton(2, true)
	x.ProcessHat(0, 0)
	assert.False(t, tr.IsHeld(keys.Left))

	x.ProcessButton(2, false)
	assert.Empty(t, tr.Held())
}
