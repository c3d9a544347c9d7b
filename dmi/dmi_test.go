package dmi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const huge = "# BEGIN DMI\nversion = 4.0\nstate = \"x\"\n\tdirs = 4294967295\n\tframes = 4294967295\n# END DMI\n"

func TestCount(t *testing.T) {
	tests := []struct {
		dirs, frames int
		want         int
	}{
		{4, 3, 12},
		{1, 0, 0},
		{0, 7, 0},
		{-1, 4, 0},
		{math.MaxUint32, math.MaxUint32, math.MaxInt},
		{math.MaxInt, 2, math.MaxInt},
	}

	for _, tt := range tests {
		s := State{Dirs: tt.dirs, Frames: tt.frames}
		assert.Equal(t, tt.want, s.Count(), "%d x %d", tt.dirs, tt.frames)
	}
}

func TestCountLargestParsed(t *testing.T) {
	m, err := Parse(huge)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, m.States[0].Count())
	assert.Equal(t, math.MaxInt, m.FrameCount())
}

func TestFrameCountSaturates(t *testing.T) {
	m := &Metadata{
		States: []State{
			{Name: "a", Dirs: 1, Frames: math.MaxInt - 1},
			{Name: "b", Dirs: 1, Frames: 1},
			{Name: "c", Dirs: 1, Frames: 1},
		},
	}
	assert.Equal(t, math.MaxInt, m.FrameCount())

	m.States = m.States[1:]
	assert.Equal(t, 2, m.FrameCount())
}

func TestIndex(t *testing.T) {
	m := &Metadata{
		States: []State{
			{Name: "idle"},
			{Name: "walk"},
			{Name: "idle"},
		},
	}
	assert.Equal(t, 0, m.Index("idle"))
	assert.Equal(t, 1, m.Index("walk"))
	assert.Equal(t, -1, m.Index("run"))
}
