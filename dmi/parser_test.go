package dmi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const idle = "# BEGIN DMI\nversion = 4.0\n\twidth = 32\n\theight = 32\nstate = \"idle\"\n\tdirs = 4\n\tframes = 1\n# END DMI\n"

func TestParse(t *testing.T) {
	m, err := Parse(idle)
	require.NoError(t, err)

	assert.Equal(t, Version{4, 0}, m.Version)
	assert.Equal(t, 32, m.Width)
	assert.Equal(t, 32, m.Height)
	require.Len(t, m.States, 1)
	assert.Equal(t, State{Name: "idle", Dirs: 4, Frames: 1}, m.States[0])
	assert.Equal(t, 4, m.FrameCount())
}

func TestParseOptionalProperties(t *testing.T) {
	text := "# BEGIN DMI\n" +
		"version = 4.0\n" +
		"\twidth = 16\n" +
		"\theight = 24\n" +
		"state = \"walk\"\n" +
		"\tdirs = 4\n" +
		"\tframes = 3\n" +
		"\tdelay = 1,2,1.5\n" +
		"\tloop = 2\n" +
		"\trewind = 1\n" +
		"\tmovement = 1\n" +
		"\thotspot = 8,8,1\n" +
		"state = \"\"\n" +
		"\tdirs = 1\n" +
		"\tframes = 1\n" +
		"# END DMI\n"

	m, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 16, m.Width)
	assert.Equal(t, 24, m.Height)
	require.Len(t, m.States, 2)

	walk := m.States[0]
	assert.Equal(t, []string{"1", "2", "1.5"}, walk.Delay)
	assert.Equal(t, []string{"8", "8", "1"}, walk.Hotspot)
	assert.Equal(t, "2", walk.Loop)
	assert.Equal(t, "1", walk.Rewind)
	assert.Equal(t, "1", walk.Movement)
	assert.Equal(t, 12, walk.Count())

	assert.Equal(t, "", m.States[1].Name)
	assert.Equal(t, 13, m.FrameCount())
}

func TestParseDefaults(t *testing.T) {
	text := "# BEGIN DMI\nversion = 4.0\nstate = \"a\"\n\tdirs = 1\n\tframes = 1\n# END DMI\n"

	m, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameSize, m.Width)
	assert.Equal(t, DefaultFrameSize, m.Height)

	m, err = Parser{DefaultWidth: 64, DefaultHeight: 48}.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, 64, m.Width)
	assert.Equal(t, 48, m.Height)

	m, err = Parse("# BEGIN DMI\nversion = 4.0\n\theight = 8\n# END DMI")
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameSize, m.Width)
	assert.Equal(t, 8, m.Height)
	assert.Empty(t, m.States)
}

func TestParseEscapedName(t *testing.T) {
	m, err := Parse("# BEGIN DMI\nversion = 4.0\nstate = \"say \\\"hi\\\" \\\\o/\"\n\tdirs = 1\n\tframes = 1\n# END DMI\n")
	require.NoError(t, err)
	assert.Equal(t, `say "hi" \o/`, m.States[0].Name)
}

func TestParseSurroundingWhitespace(t *testing.T) {
	_, err := Parse("\n\n  " + idle + "\n\t \n")
	assert.NoError(t, err)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := map[string]string{
		"missing begin":      "version = 4.0\n# END DMI\n",
		"missing end":        "# BEGIN DMI\nversion = 4.0\n",
		"bad version":        "# BEGIN DMI\nversion = 4\n# END DMI\n",
		"letters in version": "# BEGIN DMI\nversion = a.0\n# END DMI\n",
		"spaces for tabs":    "# BEGIN DMI\nversion = 4.0\n    width = 32\n# END DMI\n",
		"bad width":          "# BEGIN DMI\nversion = 4.0\n\twidth = 3x\n# END DMI\n",
		"unquoted name":      "# BEGIN DMI\nversion = 4.0\nstate = idle\n\tdirs = 1\n\tframes = 1\n# END DMI\n",
		"unterminated name":  "# BEGIN DMI\nversion = 4.0\nstate = \"idle\n\tdirs = 1\n# END DMI\n",
		"letters in dirs":    "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = four\n\tframes = 1\n# END DMI\n",
		"negative frames":    "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = 1\n\tframes = -1\n# END DMI\n",
		"dirs overflow":      "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = 4294967296\n\tframes = 1\n# END DMI\n",
		"empty value":        "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = \n\tframes = 1\n# END DMI\n",
		"no separator":       "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs=1\n\tframes = 1\n# END DMI\n",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.NotZero(t, se.Line)
		})
	}
}

func TestParseSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = x\n\tframes = 1\n# END DMI\n")

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Line)
	assert.Equal(t, 9, se.Column)
}

func TestParseTrailingInput(t *testing.T) {
	_, err := Parse(idle + "garbage\n")

	var te *TrailingInputError
	require.True(t, errors.As(err, &te), "got %v", err)
	assert.Equal(t, "garbage\n", te.Rest)
	assert.Equal(t, 9, te.Line)
}

func TestParseMissingField(t *testing.T) {
	tests := map[string]struct {
		text  string
		field string
	}{
		"dirs": {
			"# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tframes = 1\n# END DMI\n",
			"dirs",
		},
		"frames": {
			"# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = 1\n\tdelay = 1\n# END DMI\n",
			"frames",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tt.text)
			var me *MissingFieldError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Equal(t, "idle", me.State)
			assert.Equal(t, tt.field, me.Field)
		})
	}
}

func TestParseUnknownProperty(t *testing.T) {
	text := "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\tdirs = 4\n\tframes = 1\n\tcolour = red\n# END DMI\n"

	_, err := Parse(text)

	var ue *UnknownPropertyError
	require.True(t, errors.As(err, &ue), "got %v", err)
	assert.Equal(t, "idle", ue.State)
	assert.Equal(t, "colour", ue.Property)
	assert.Equal(t, 6, ue.Line)
}

func TestParseRecognisedProperties(t *testing.T) {
	for name := range properties {
		t.Run(name, func(t *testing.T) {
			text := "# BEGIN DMI\nversion = 4.0\nstate = \"idle\"\n\t" + name + " = 1\n\tdirs = 1\n\tframes = 1\n# END DMI\n"
			_, err := Parse(text)
			assert.NoError(t, err)
		})
	}
}
