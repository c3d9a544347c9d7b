package pngtext

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

// Encode writes img to w as a PNG image with text stored in a zTXt chunk
// using Keyword, placed directly after the image header.
func Encode(w io.Writer, img image.Image, text string) error {
	ztxt, err := deflate(Keyword, text)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(buf, img); err != nil {
		return errors.Wrap(err, "pngtext")
	}

	cr, err := newChunkReader(buf)
	if err != nil {
		return err
	}

	cw := &chunkWriter{w: w}
	cw.write([]byte(pngHeader))

	for cw.err == nil {
		typ, data, err := cr.next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}

		cw.writeChunk(typ, data)
		if typ == typeIHDR {
			cw.writeChunk(typeZTXt, ztxt)
		}
	}

	return cw.err
}
