package pngtext

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/pkg/errors"
)

const maxChunkLength = 0x7fffffff

var (
	errNotPNG      = errors.New("pngtext: not a PNG file")
	errBadChecksum = errors.New("pngtext: invalid checksum")
	errBadLength   = errors.New("pngtext: invalid chunk length")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type chunkReader struct {
	r   io.Reader
	tmp [8]byte
}

func newChunkReader(r io.Reader) (*chunkReader, error) {
	cr := &chunkReader{r: r}
	if err := readFull(r, cr.tmp[:len(pngHeader)]); err != nil {
		return nil, err
	}
	if string(cr.tmp[:len(pngHeader)]) != pngHeader {
		return nil, errNotPNG
	}
	return cr, nil
}

// next returns the type and data of the next chunk after checking its CRC. It
// returns io.EOF when there are no more chunks
func (cr *chunkReader) next() (string, []byte, error) {
	if _, err := io.ReadFull(cr.r, cr.tmp[:8]); err != nil {
		if err == io.EOF {
			return "", nil, io.EOF
		}
		return "", nil, err
	}

	length := binary.BigEndian.Uint32(cr.tmp[:4])
	if length > maxChunkLength {
		return "", nil, errBadLength
	}
	typ := string(cr.tmp[4:8])

	crc := crc32.NewIEEE()
	crc.Write(cr.tmp[4:8])

	data, err := io.ReadAll(io.LimitReader(cr.r, int64(length)))
	if err != nil {
		return "", nil, err
	}
	if len(data) != int(length) {
		return "", nil, io.ErrUnexpectedEOF
	}
	crc.Write(data)

	if err := readFull(cr.r, cr.tmp[:4]); err != nil {
		return "", nil, err
	}
	if binary.BigEndian.Uint32(cr.tmp[:4]) != crc.Sum32() {
		return "", nil, errBadChecksum
	}

	return typ, data, nil
}

type chunkWriter struct {
	w   io.Writer
	err error
	tmp [8]byte
}

func (cw *chunkWriter) write(b []byte) {
	if cw.err != nil {
		return
	}
	_, cw.err = cw.w.Write(b)
}

// writeChunk writes the length, type, data and CRC of a single chunk
func (cw *chunkWriter) writeChunk(typ string, data []byte) {
	if cw.err != nil {
		return
	}
	if uint64(len(data)) > maxChunkLength {
		cw.err = errors.Errorf("pngtext: %s chunk is too large", typ)
		return
	}

	binary.BigEndian.PutUint32(cw.tmp[:4], uint32(len(data)))
	copy(cw.tmp[4:], typ)

	crc := crc32.NewIEEE()
	crc.Write(cw.tmp[4:8])
	crc.Write(data)

	cw.write(cw.tmp[:8])
	cw.write(data)

	binary.BigEndian.PutUint32(cw.tmp[:4], crc.Sum32())
	cw.write(cw.tmp[:4])
}
