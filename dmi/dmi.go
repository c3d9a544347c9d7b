/*
Package dmi implements a parser and renderer for the text metadata carried in
a DreamMaker icon (.dmi) file.

A .dmi file is a PNG image with a zTXt chunk holding a block of text such as:

	# BEGIN DMI
	version = 4.0
		width = 32
		height = 32
	state = "idle"
		dirs = 4
		frames = 1
	# END DMI

Each state names an animation occupying dirs * frames consecutive frames of
the image, in the order the states are listed. Leading tabs are significant;
the width and height lines are optional and default to 32.
*/
package dmi

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	beginTag = "# BEGIN DMI"
	endTag   = "# END DMI"

	// DefaultFrameSize is the frame width and height used when the metadata
	// omits them
	DefaultFrameSize = 32
)

// Version is the format version declared by the metadata.
type Version struct {
	Major int `yaml:"major"`
	Minor int `yaml:"minor"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// State is a single named animation.
type State struct {
	Name   string `yaml:"name"`
	Dirs   int    `yaml:"dirs"`
	Frames int    `yaml:"frames"`

	// The remaining properties are kept as the raw tokens found in the
	// metadata, they are not validated
	Delay    []string `yaml:"delay,omitempty"`
	Hotspot  []string `yaml:"hotspot,omitempty"`
	Loop     string   `yaml:"loop,omitempty"`
	Movement string   `yaml:"movement,omitempty"`
	Rewind   string   `yaml:"rewind,omitempty"`
}

// Count returns the number of frames the state occupies in the image. A
// count too large for an int is returned as math.MaxInt and a negative
// property counts as zero.
func (s State) Count() int {
	if s.Dirs <= 0 || s.Frames <= 0 {
		return 0
	}
	hi, n := bits.Mul64(uint64(s.Dirs), uint64(s.Frames))
	if hi != 0 || n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// Metadata is the parsed metadata block. String renders it back into text.
type Metadata struct {
	Version Version `yaml:"version"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	States  []State `yaml:"states"`
}

// FrameCount returns the total number of frames needed by all states,
// saturating at math.MaxInt like Count
func (m *Metadata) FrameCount() int {
	var n int
	for _, s := range m.States {
		c := s.Count()
		if c > math.MaxInt-n {
			return math.MaxInt
		}
		n += c
	}
	return n
}

// Index returns the position of the first state with the given name, or -1
func (m *Metadata) Index(name string) int {
	for i, s := range m.States {
		if s.Name == name {
			return i
		}
	}
	return -1
}
