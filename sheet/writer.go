package sheet

import (
	"image"

	"github.com/bodgit/icontool/dmi"
	"github.com/bodgit/icontool/frame"
	"github.com/pkg/errors"
)

// Pack decodes the frames of every state in m and paints them onto a new
// canvas at the positions given by l, which must have been created from m.
// frames holds the transport strings of each state keyed by state name.
func Pack(l *Layout, m *dmi.Metadata, frames map[string][]string) (*image.NRGBA, error) {
	if l.FrameWidth <= 0 || l.FrameHeight <= 0 {
		return nil, ErrFrameSize
	}
	if err := checkUnique(m); err != nil {
		return nil, err
	}

	// Check all of the counts before decoding anything
	for _, s := range m.States {
		f, ok := frames[s.Name]
		if !ok {
			return nil, &MissingStateError{State: s.Name}
		}
		if len(f) != s.Count() {
			return nil, &FrameCountError{
				State:    s.Name,
				Expected: s.Count(),
				Actual:   len(f),
			}
		}
	}

	slots := l.Slots()
	if len(slots) != len(m.States) {
		return nil, ErrLayoutExhausted
	}
	for i, s := range m.States {
		if len(slots[i]) != s.Count() {
			return nil, ErrLayoutExhausted
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, l.Width, l.Height))
	size := frame.Size(l.FrameWidth, l.FrameHeight)

	for i, state := range slots {
		name := m.States[i].Name
		for j, pt := range state {
			pix, err := frame.Decode(frames[name][j], size)
			if err != nil {
				return nil, errors.Wrapf(err, "state %q frame %d", name, j)
			}

			stride := l.FrameWidth * 4
			for y := 0; y < l.FrameHeight; y++ {
				o := img.PixOffset(pt.X, pt.Y+y)
				copy(img.Pix[o:o+stride], pix[y*stride:(y+1)*stride])
			}
		}
	}

	return img, nil
}
