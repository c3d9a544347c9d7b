package icontool

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bodgit/icontool/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `__dmi_path: icons/mob/neck.dmi
__image_width: 128
__image_height: 32
idle: |-
  AAAA
  BBBB
empty: ""
__dmi_metadata: |
  # BEGIN DMI
  version = 4.0
  # END DMI
`

func TestReadDocument(t *testing.T) {
	d, err := ReadDocument(strings.NewReader(testDocument))
	require.NoError(t, err)

	assert.Equal(t, "icons/mob/neck.dmi", d.Path)
	assert.Equal(t, 128, d.Width)
	assert.Equal(t, 32, d.Height)
	assert.Equal(t, "# BEGIN DMI\nversion = 4.0\n# END DMI\n", d.Metadata)
	assert.Equal(t, []sheet.StateFrames{
		{Name: "idle", Frames: []string{"AAAA", "BBBB"}},
		{Name: "empty", Frames: []string{}},
	}, d.States)
	assert.Equal(t, []string{"idle", "empty"}, d.Keys())
	assert.Equal(t, map[string][]string{
		"idle":  {"AAAA", "BBBB"},
		"empty": {},
	}, d.Frames())
}

func TestReadDocumentPathOptional(t *testing.T) {
	d, err := ReadDocument(strings.NewReader("__image_width: 32\n__image_height: 32\n__dmi_metadata: x\n"))
	require.NoError(t, err)
	assert.Empty(t, d.Path)
	assert.Empty(t, d.States)
}

func TestReadDocumentMissingKey(t *testing.T) {
	tests := map[string]string{
		keyWidth:    "__image_height: 32\n__dmi_metadata: x\n",
		keyHeight:   "__image_width: 32\n__dmi_metadata: x\n",
		keyMetadata: "__image_width: 32\n__image_height: 32\n",
	}

	for key, doc := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(doc))
			var me *MissingKeyError
			require.True(t, errors.As(err, &me), "got %v", err)
			assert.Equal(t, key, me.Key)
		})
	}

	_, err := ReadDocument(strings.NewReader(""))
	var me *MissingKeyError
	assert.True(t, errors.As(err, &me), "got %v", err)
}

func TestReadDocumentInvalidType(t *testing.T) {
	tests := map[string]struct {
		doc string
		key string
	}{
		"width not a number": {
			"__image_width: wide\n__image_height: 32\n__dmi_metadata: x\n",
			keyWidth,
		},
		"width too large": {
			"__image_width: 4294967296\n__image_height: 32\n__dmi_metadata: x\n",
			keyWidth,
		},
		"negative height": {
			"__image_width: 32\n__image_height: -1\n__dmi_metadata: x\n",
			keyHeight,
		},
		"metadata not a string": {
			"__image_width: 32\n__image_height: 32\n__dmi_metadata: 12\n",
			keyMetadata,
		},
		"state is a list": {
			"__image_width: 32\n__image_height: 32\nidle:\n  - AAAA\n__dmi_metadata: x\n",
			"idle",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.doc))
			var ie *InvalidTypeError
			require.True(t, errors.As(err, &ie), "got %v", err)
			assert.Equal(t, tt.key, ie.Key)
		})
	}
}

func TestReadDocumentNotMapping(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("- a\n- b\n"))
	assert.Equal(t, errNotMapping, err)
}

func TestReadDocumentDuplicateKey(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("__image_width: 32\n__image_height: 32\nidle: A\nidle: B\n__dmi_metadata: x\n"))
	assert.Error(t, err)
}

func TestWriteTo(t *testing.T) {
	d := &Document{
		Path:   "icons/mob/neck.dmi",
		Width:  64,
		Height: 32,
		States: []sheet.StateFrames{
			{Name: "idle", Frames: []string{"AAAA", "BBBB"}},
			{Name: "1", Frames: []string{"CCCC"}},
			{Name: "none", Frames: []string{}},
		},
		Metadata: "# BEGIN DMI\nversion = 4.0\n\twidth = 32\n\theight = 32\n# END DMI\n",
	}

	buf := new(bytes.Buffer)
	n, err := d.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "__dmi_path: icons/mob/neck.dmi\n__image_width: 64\n__image_height: 32\n"), out)
	assert.Contains(t, out, "idle: |-\n  AAAA\n  BBBB\n")

	// Keys are kept in order with the metadata last
	keys := []string{keyPath, keyWidth, keyHeight, "idle:", "none:", keyMetadata}
	last := -1
	for _, k := range keys {
		i := strings.Index(out, k)
		require.Greater(t, i, last, k)
		last = i
	}

	read, err := ReadDocument(buf)
	require.NoError(t, err)
	assert.Equal(t, d, read)
}

func TestWriteToReservedState(t *testing.T) {
	for _, states := range [][]sheet.StateFrames{
		{{Name: keyMetadata, Frames: []string{}}},
		{{Name: "a", Frames: []string{}}, {Name: "a", Frames: []string{}}},
	} {
		d := &Document{States: states}
		_, err := d.WriteTo(new(bytes.Buffer))
		var de *DuplicateKeyError
		assert.True(t, errors.As(err, &de), "got %v", err)
	}
}
