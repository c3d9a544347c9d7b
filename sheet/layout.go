package sheet

import (
	"image"
	"math"
	"math/bits"

	"github.com/bodgit/icontool/dmi"
)

// Layout assigns every frame of every state a position on a canvas of a
// fixed size.
type Layout struct {
	Width, Height           int
	FrameWidth, FrameHeight int

	counts []int
	needed int
}

// NewLayout returns the layout of the frames described by m on a canvas of
// the given size. The canvas isn't checked for being large enough, see
// CheckCapacity.
func NewLayout(m *dmi.Metadata, width, height int) *Layout {
	counts := make([]int, len(m.States))
	for i, s := range m.States {
		counts[i] = s.Count()
	}
	return &Layout{
		Width:       width,
		Height:      height,
		FrameWidth:  m.Width,
		FrameHeight: m.Height,
		counts:      counts,
		needed:      m.FrameCount(),
	}
}

// Needed returns the number of frames placed by the layout, saturating at
// math.MaxInt
func (l *Layout) Needed() int {
	return l.needed
}

// Capacity returns the number of whole frames that fit on the canvas,
// saturating at math.MaxInt
func (l *Layout) Capacity() int {
	if l.FrameWidth <= 0 || l.FrameHeight <= 0 || l.Width <= 0 || l.Height <= 0 {
		return 0
	}
	hi, n := bits.Mul64(uint64(l.Width/l.FrameWidth), uint64(l.Height/l.FrameHeight))
	if hi != 0 || n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// CheckCapacity returns a *CapacityError if the canvas has fewer slots than
// the layout places frames.
func (l *Layout) CheckCapacity() error {
	if needed, available := l.Needed(), l.Capacity(); needed > available {
		return &CapacityError{
			Needed:    needed,
			Available: available,
		}
	}
	return nil
}

// Slots returns the top-left corner of each frame, grouped by state in the
// order of the metadata. The cursor moves right one frame at a time and
// wraps to the next row when the frame would cross the right edge. Slots
// stop once the canvas is full, so a state that doesn't fit gets fewer
// slots than it has frames.
func (l *Layout) Slots() [][]image.Point {
	slots := make([][]image.Point, len(l.counts))
	remaining := l.Capacity()

	var x, y int
	for i, n := range l.counts {
		if n > remaining {
			n = remaining
		}
		remaining -= n

		slots[i] = make([]image.Point, n)
		for j := range slots[i] {
			if x > 0 && x+l.FrameWidth > l.Width {
				x = 0
				y += l.FrameHeight
			}
			slots[i][j] = image.Pt(x, y)
			x += l.FrameWidth
		}
	}

	return slots
}

func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}

func clamp(u uint64) int {
	if u > math.MaxInt {
		return math.MaxInt
	}
	return int(u)
}

// grow returns canvas dimensions, in frames, with room for more than needed
// frames and roughly square in pixels
func grow(frameWidth, frameHeight, needed uint64) (perRow, rows uint64, ok bool) {
	hi, area := bits.Mul64(frameWidth*frameHeight, needed)
	if hi != 0 {
		return 0, 0, false
	}
	perRow = isqrt(area)/frameWidth + 1
	rows = needed/perRow + 1
	return perRow, rows, true
}

// Plan sizes a canvas for the frames described by m, starting from the
// given width and height. If the canvas doesn't have room for more frames
// than needed it is replaced by a larger one, which is reported by the
// returned bool. Both the starting and the grown sizes are subject to the
// policy limits.
func Plan(m *dmi.Metadata, width, height int, p Policy) (*Layout, bool, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return nil, false, ErrFrameSize
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	fw, fh := uint64(m.Width), uint64(m.Height)

	l := NewLayout(m, width, height)
	needed, available := uint64(l.Needed()), uint64(l.Capacity())

	var grown bool
	if needed > available || needed == available && !p.ExactFit {
		perRow, rows, ok := grow(fw, fh, needed)
		hiW, w := bits.Mul64(perRow, fw)
		hiH, h := bits.Mul64(rows, fh)
		if !ok || hiW != 0 || hiH != 0 {
			return nil, false, &CanvasTooLargeError{
				Width:     math.MaxInt,
				Height:    math.MaxInt,
				MaxWidth:  p.MaxWidth,
				MaxHeight: p.MaxHeight,
			}
		}
		l, grown = NewLayout(m, clamp(w), clamp(h)), true
	}

	if l.Width > p.MaxWidth || l.Height > p.MaxHeight {
		return nil, false, &CanvasTooLargeError{
			Width:     l.Width,
			Height:    l.Height,
			MaxWidth:  p.MaxWidth,
			MaxHeight: p.MaxHeight,
		}
	}

	return l, grown, nil
}

// Unreferenced returns the keys that don't name any state in m, in the order
// given.
func Unreferenced(m *dmi.Metadata, keys []string) []string {
	names := make(map[string]struct{}, len(m.States))
	for _, s := range m.States {
		names[s.Name] = struct{}{}
	}

	var unused []string
	for _, k := range keys {
		if _, ok := names[k]; !ok {
			unused = append(unused, k)
		}
	}
	return unused
}

func checkUnique(m *dmi.Metadata) error {
	seen := make(map[string]struct{}, len(m.States))
	for _, s := range m.States {
		if _, ok := seen[s.Name]; ok {
			return &DuplicateStateError{State: s.Name}
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
