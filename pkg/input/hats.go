package input

// Linux ABS codes for the four possible hats.
const (
	absHat0X = 0x10
	absHat3Y = 0x17
)

// hatAxis identifies which half of which hat an absolute axis reports.
func hatAxis(absCode int) (hat int, isY bool, ok bool) {
	if absCode < absHat0X || absCode > absHat3Y {
		return 0, false, false
	}
	off := absCode - absHat0X
	return off / 2, off%2 == 1, true
}

// hatState assembles per-axis kernel hat reports into full positions.
type hatState map[int][2]int

// update records one half of a hat. Kernel hats report negative Y for up;
// the returned event uses Y = 1 for up. ok is false when the position did
// not change.
func (h hatState) update(hat int, isY bool, raw int32) (HatEvent, bool) {
	v := 0
	switch {
	case raw > 0:
		v = 1
	case raw < 0:
		v = -1
	}
	pos := h[hat]
	if isY {
		v = -v
		if pos[1] == v {
			return HatEvent{}, false
		}
		pos[1] = v
	} else {
		if pos[0] == v {
			return HatEvent{}, false
		}
		pos[0] = v
	}
	h[hat] = pos
	return HatEvent{Hat: hat, X: pos[0], Y: pos[1]}, true
}

// normalizeAxis maps raw in [min, max] onto [-1, 1].
func normalizeAxis(raw, min, max int32) float64 {
	if max <= min {
		return 0
	}
	v := 2*float64(raw-min)/float64(max-min) - 1
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
