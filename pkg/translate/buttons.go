package translate

import "github.com/synrais/padkeys/pkg/keys"

// ButtonMap is the fixed button table.
var ButtonMap = map[int]keys.VirtualKey{
	0: keys.Up,
	1: keys.Down,
	2: keys.Left,
	3: keys.Right,
	4: keys.Confirm,
	5: keys.Confirm,
}

// ProcessButton handles a button transition. Confirm buttons tap on press
// and ignore the release; directional buttons hold their key while down.
func (t *Translator) ProcessButton(button int, pressed bool) {
	k, ok := ButtonMap[button]
	if !ok {
		return
	}

	if k == keys.Confirm {
		if pressed {
			t.tracker.Tap(k)
		}
		return
	}

	if pressed {
		t.tracker.RequestPress(k)
	} else {
		t.tracker.RequestRelease(k)
	}
}
