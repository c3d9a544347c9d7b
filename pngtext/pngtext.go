/*
Package pngtext implements reading and writing PNG images that carry a block
of text in a zTXt chunk, which is how a DreamMaker icon stores its metadata
alongside the image.
*/
package pngtext

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// Keyword is the keyword of the text chunk holding the metadata.
const Keyword = "Description"

const (
	pngHeader = "\x89PNG\r\n\x1a\n"

	typeIHDR = "IHDR"
	typeIEND = "IEND"
	typeTEXt = "tEXt"
	typeZTXt = "zTXt"

	// The only compression method defined for zTXt
	methodDeflate = 0
)

var (
	// ErrNoMetadata is returned when the image has no text chunk with the
	// expected keyword
	ErrNoMetadata = errors.New("pngtext: no metadata chunk")

	errNoSeparator = errors.New("pngtext: text chunk has no keyword separator")
	errBadMethod   = errors.New("pngtext: unknown compression method")
)

// splitKeyword separates the keyword of a tEXt or zTXt chunk from the rest
func splitKeyword(b []byte) (string, []byte, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", nil, errNoSeparator
	}
	return string(b[:i]), b[i+1:], nil
}

func inflate(b []byte) (string, error) {
	if len(b) == 0 {
		return "", io.ErrUnexpectedEOF
	}
	if b[0] != methodDeflate {
		return "", errBadMethod
	}

	zr, err := zlib.NewReader(bytes.NewReader(b[1:]))
	if err != nil {
		return "", errors.Wrap(err, "pngtext")
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return "", errors.Wrap(err, "pngtext")
	}
	return string(text), nil
}

func deflate(keyword, text string) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteString(keyword)
	buf.WriteByte(0)
	buf.WriteByte(methodDeflate)

	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(zw, text); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
