/*
Package sheet implements packing frames into, and unpacking frames from, the
image of a DreamMaker icon.

Frames are laid out left to right, top to bottom, in the order of the states
in the metadata and, within a state, in the order they are stored. A Layout
is the single source of frame positions and is shared by Pack and Unpack so
both directions always agree.
*/
package sheet

import (
	"fmt"

	"github.com/pkg/errors"
)

// Policy controls how Plan sizes a canvas.
type Policy struct {
	// MaxWidth and MaxHeight bound the canvas in pixels
	MaxWidth  int
	MaxHeight int

	// ExactFit keeps a canvas that has exactly as many frames as needed.
	// Otherwise such a canvas is grown, matching how existing tools size
	// their images
	ExactFit bool
}

// DefaultPolicy allows canvases up to 6144x6144 pixels.
var DefaultPolicy = Policy{
	MaxWidth:  6144,
	MaxHeight: 6144,
}

var (
	// ErrLayoutExhausted means the layout ran out of slots before every
	// frame was placed. Plan never produces such a layout so seeing this
	// is a bug
	ErrLayoutExhausted = errors.New("sheet: ran out of canvas to place frames")

	// ErrFrameSize is returned for a zero frame width or height
	ErrFrameSize = errors.New("sheet: frame width and height must be positive")
)

// CanvasTooLargeError is returned when the canvas would exceed the policy.
type CanvasTooLargeError struct {
	Width, Height       int
	MaxWidth, MaxHeight int
}

func (e *CanvasTooLargeError) Error() string {
	return fmt.Sprintf("sheet: canvas of %dx%d is larger than the allowed %dx%d", e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// CapacityError is returned when an image has fewer frame slots than the
// metadata needs.
type CapacityError struct {
	Needed, Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("sheet: metadata needs %d frame(s) but the image only has room for %d", e.Needed, e.Available)
}

// FrameCountError is returned when the number of frames supplied for a state
// differs from what the metadata declares.
type FrameCountError struct {
	State            string
	Expected, Actual int
}

func (e *FrameCountError) Error() string {
	return fmt.Sprintf("sheet: state %q has a mismatched number of frames, expected %d from the metadata, found %d", e.State, e.Expected, e.Actual)
}

// MissingStateError is returned when no frames are supplied for a state.
type MissingStateError struct {
	State string
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("sheet: no frames for state %q", e.State)
}

// DuplicateStateError is returned when the metadata names a state more than
// once.
type DuplicateStateError struct {
	State string
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("sheet: state %q is declared more than once", e.State)
}
