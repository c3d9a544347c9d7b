package icontool

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strconv"

	"github.com/bodgit/icontool/dmi"
	"github.com/bodgit/icontool/sheet"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

const (
	// BYOND delays are in ticks of 1/10 s, GIF delays in 1/100 s
	gifDelayPerTick = 10

	maxColors = 256
)

// gifLoopCount converts the loop property of a state, the number of times
// to play the animation with 0 or no value meaning forever
func gifLoopCount(loop string) int {
	n, err := strconv.Atoi(loop)
	switch {
	case err != nil, n <= 0:
		return 0
	case n == 1:
		return -1
	default:
		return n - 1
	}
}

// gifDelay returns the delay of frame i of s
func gifDelay(s dmi.State, i int) int {
	ticks := 1.0
	if i < len(s.Delay) {
		d, err := strconv.ParseFloat(s.Delay[i], 64)
		if err != nil || d < 0 {
			glog.Warningf("state %q has an invalid delay %q for frame %d, using 1 tick", s.Name, s.Delay[i], i)
		} else {
			ticks = d
		}
	}
	return int(math.Round(ticks * gifDelayPerTick))
}

func paletted(m image.Image) *image.Paletted {
	b := m.Bounds()

	// Index 0 is reserved for fully transparent pixels
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(append(make(color.Palette, 0, maxColors), color.Transparent), m)

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func (t *IconTool) animate(img image.Image, m *dmi.Metadata, state string, dir, scale int) (*gif.GIF, error) {
	idx := m.Index(state)
	if idx < 0 {
		return nil, errors.Errorf("icontool: no state %q", state)
	}
	s := m.States[idx]

	if dir < 0 || dir >= s.Dirs {
		return nil, errors.Errorf("icontool: state %q has %d direction(s), %d is out of range", state, s.Dirs, dir)
	}
	if s.Frames <= 0 {
		return nil, errors.Errorf("icontool: state %q has no frames", state)
	}
	if scale < 1 {
		return nil, errors.Errorf("icontool: invalid scale %d", scale)
	}

	b := img.Bounds()
	l := sheet.NewLayout(m, b.Dx(), b.Dy())
	if err := l.CheckCapacity(); err != nil {
		return nil, err
	}
	slots := l.Slots()[idx]

	g := &gif.GIF{
		LoopCount: gifLoopCount(s.Loop),
	}

	for f := 0; f < s.Frames; f++ {
		// Directions are interleaved within each frame
		pt := slots[f*s.Dirs+dir]

		src := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
		draw.Draw(src, src.Bounds(), img, b.Min.Add(pt), draw.Src)

		var frame image.Image = src
		if scale > 1 {
			frame = resize.Resize(uint(m.Width*scale), uint(m.Height*scale), src, resize.NearestNeighbor)
		}

		g.Image = append(g.Image, paletted(frame))
		g.Delay = append(g.Delay, gifDelay(s, f))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}

	return g, nil
}

// Preview renders one direction of a state of the icon in as an animated GIF
// written to out, each frame enlarged by scale.
func (t *IconTool) Preview(in, out, state string, dir, scale int) error {
	img, _, m, err := t.readIcon(in)
	if err != nil {
		return err
	}

	g, err := t.animate(img, m, state, dir, scale)
	if err != nil {
		return errors.Wrap(err, in)
	}

	if err := writeFile(out, func(w io.Writer) error {
		return gif.EncodeAll(w, g)
	}); err != nil {
		return errors.Wrap(err, out)
	}

	glog.V(1).Infof("rendered %d frame(s) of %s state %q to %s", len(g.Image), in, state, out)

	return nil
}
