package pngtext

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

// ReadText returns the text of the first tEXt or zTXt chunk in the PNG stream
// r whose keyword is Keyword.
func ReadText(r io.Reader) (string, error) {
	cr, err := newChunkReader(r)
	if err != nil {
		return "", err
	}

	for {
		typ, data, err := cr.next()
		if err != nil {
			if err == io.EOF {
				return "", ErrNoMetadata
			}
			return "", err
		}

		switch typ {
		case typeIEND:
			return "", ErrNoMetadata
		case typeTEXt, typeZTXt:
			keyword, rest, err := splitKeyword(data)
			if err != nil {
				return "", err
			}
			if keyword != Keyword {
				continue
			}
			if typ == typeTEXt {
				return string(rest), nil
			}
			return inflate(rest)
		}
	}
}

// Decode reads a PNG image from r and returns it along with its metadata
// text.
func Decode(r io.Reader) (image.Image, string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	text, err := ReadText(bytes.NewReader(b))
	if err != nil {
		return nil, "", err
	}

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", errors.Wrap(err, "pngtext")
	}

	return img, text, nil
}
