package keys

import (
	"fmt"
	"strings"
)

// VirtualKey is one of the keys padkeys can emit.
type VirtualKey int

const (
	Up VirtualKey = iota
	Down
	Left
	Right
	Confirm
)

// Directional lists the keys that can be held, in drain order.
var Directional = [...]VirtualKey{Up, Down, Left, Right}

var keyNames = [...]string{
	Up:      "up",
	Down:    "down",
	Left:    "left",
	Right:   "right",
	Confirm: "confirm",
}

func (k VirtualKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("VirtualKey(%d)", int(k))
	}
	return keyNames[k]
}

// Valid reports whether k is a member of the closed key set.
func (k VirtualKey) Valid() bool {
	return k >= Up && k <= Confirm
}

// Holdable reports whether k may stay pressed between events. Confirm is
// always tapped.
func (k VirtualKey) Holdable() bool {
	return k.Valid() && k != Confirm
}

// Layout selects the fixed table that turns virtual keys into real keys.
type Layout int

const (
	LayoutWASD Layout = iota
	LayoutArrows
)

func (l Layout) String() string {
	switch l {
	case LayoutWASD:
		return "wasd"
	case LayoutArrows:
		return "arrows"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout accepts "wasd" or "arrows", case-insensitively. An empty
// string selects the WASD layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wasd":
		return LayoutWASD, nil
	case "arrows", "arrow":
		return LayoutArrows, nil
	}
	return LayoutWASD, fmt.Errorf("unknown key layout %q", s)
}

// Label is the human name of the real key k produces under layout l.
func (l Layout) Label(k VirtualKey) string {
	if k == Confirm {
		return "Enter"
	}
	if l == LayoutArrows {
		switch k {
		case Up:
			return "Up Arrow"
		case Down:
			return "Down Arrow"
		case Left:
			return "Left Arrow"
		case Right:
			return "Right Arrow"
		}
	}
	switch k {
	case Up:
		return "W"
	case Down:
		return "S"
	case Left:
		return "A"
	case Right:
		return "D"
	}
	return k.String()
}
