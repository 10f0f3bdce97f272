package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualKeyString(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "confirm", Confirm.String())
	assert.Equal(t, "VirtualKey(9)", VirtualKey(9).String())
}

func TestHoldable(t *testing.T) {
	for _, k := range Directional {
		assert.True(t, k.Holdable(), k.String())
	}
	assert.False(t, Confirm.Holdable())
	assert.False(t, VirtualKey(-1).Holdable())
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutWASD, l)

	l, err = ParseLayout(" Arrows ")
	require.NoError(t, err)
	assert.Equal(t, LayoutArrows, l)

	_, err = ParseLayout("ijkl")
	assert.Error(t, err)
}

func TestLayoutLabel(t *testing.T) {
	assert.Equal(t, "W", LayoutWASD.Label(Up))
	assert.Equal(t, "D", LayoutWASD.Label(Right))
	assert.Equal(t, "Left Arrow", LayoutArrows.Label(Left))
	assert.Equal(t, "Enter", LayoutArrows.Label(Confirm))
}
