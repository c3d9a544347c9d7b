package sheet

import (
	"image"
	"image/draw"

	"github.com/bodgit/icontool/dmi"
	"github.com/bodgit/icontool/frame"
	"github.com/pkg/errors"
)

// StateFrames holds the transport strings of each frame of a state.
type StateFrames struct {
	Name   string
	Frames []string
}

func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	b := img.Bounds()
	m := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), img, b.Min, draw.Src)
	return m
}

// Unpack reads every frame of every state in m from img at the positions
// given by l, which must have been created from m, and encodes them. The
// result is in the same order as the states in m.
func Unpack(l *Layout, m *dmi.Metadata, img image.Image) ([]StateFrames, error) {
	if l.FrameWidth <= 0 || l.FrameHeight <= 0 {
		return nil, ErrFrameSize
	}
	if err := checkUnique(m); err != nil {
		return nil, err
	}
	if err := l.CheckCapacity(); err != nil {
		return nil, err
	}

	if b := img.Bounds(); l.Width > b.Dx() || l.Height > b.Dy() {
		return nil, errors.Errorf("sheet: layout of %dx%d is larger than the %dx%d image", l.Width, l.Height, b.Dx(), b.Dy())
	}

	src := toNRGBA(img)
	stride := l.FrameWidth * 4
	pix := make([]byte, frame.Size(l.FrameWidth, l.FrameHeight))

	all := l.Slots()
	if len(all) != len(m.States) {
		return nil, ErrLayoutExhausted
	}

	states := make([]StateFrames, 0, len(m.States))
	for i, slots := range all {
		name := m.States[i].Name
		frames := make([]string, 0, len(slots))
		for j, pt := range slots {
			for y := 0; y < l.FrameHeight; y++ {
				o := src.PixOffset(pt.X, pt.Y+y)
				copy(pix[y*stride:(y+1)*stride], src.Pix[o:o+stride])
			}

			s, err := frame.Encode(pix)
			if err != nil {
				return nil, errors.Wrapf(err, "state %q frame %d", name, j)
			}
			frames = append(frames, s)
		}
		states = append(states, StateFrames{
			Name:   name,
			Frames: frames,
		})
	}

	return states, nil
}
