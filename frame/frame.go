/*
Package frame implements the transport encoding of a single frame of pixels.

A frame is width * height * 4 bytes of straight RGBA. It is compressed as an
LZ4 block prefixed with its uncompressed length as a 32-bit little endian
integer, and the result is encoded as standard base64 without line breaks.
Several frames are joined with a newline.
*/
package frame

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

const sizePrefix = 4

// Stages of decoding reported by CorruptError
const (
	StageBase64 = "base64"
	StageLZ4    = "lz4"
	StageSize   = "size"
)

// CorruptError is returned when a transport string can't be turned back into
// a frame of the expected size.
type CorruptError struct {
	Stage string
	Err   error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("frame: corrupt %s data: %v", e.Stage, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Size returns the number of bytes in a frame of the given dimensions
func Size(width, height int) int {
	return width * height * 4
}

// Encode compresses and encodes the frame pixels.
func Encode(pix []byte) (string, error) {
	b := make([]byte, sizePrefix+lz4.CompressBlockBound(len(pix)))
	binary.LittleEndian.PutUint32(b, uint32(len(pix)))

	var c lz4.Compressor
	n, err := c.CompressBlock(pix, b[sizePrefix:])
	if err != nil {
		return "", errors.Wrap(err, "frame: compressing")
	}

	return base64.StdEncoding.EncodeToString(b[:sizePrefix+n]), nil
}

// Decode decodes and decompresses s which must yield exactly size bytes.
func Decode(s string, size int) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &CorruptError{StageBase64, err}
	}

	if len(b) < sizePrefix {
		return nil, &CorruptError{StageLZ4, io.ErrUnexpectedEOF}
	}

	// Check the prefix before allocating anything based on it
	if n := binary.LittleEndian.Uint32(b); uint64(n) != uint64(size) {
		return nil, &CorruptError{StageSize, fmt.Errorf("got %d bytes, want %d", n, size)}
	}

	pix := make([]byte, size)
	n, err := lz4.UncompressBlock(b[sizePrefix:], pix)
	if err != nil {
		return nil, &CorruptError{StageLZ4, err}
	}
	if n != size {
		return nil, &CorruptError{StageSize, fmt.Errorf("decompressed %d bytes, want %d", n, size)}
	}

	return pix, nil
}

// Join combines the transport strings of several frames into one value.
func Join(frames []string) string {
	return strings.Join(frames, "\n")
}

// Split separates a value created by Join. Trailing newlines are dropped
// first, a YAML literal block value keeps its final newline unless it is
// written with the strip indicator. An empty value holds no frames rather
// than a single empty one.
func Split(value string) []string {
	value = strings.TrimRight(value, "\n")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, "\n")
}
