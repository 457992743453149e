package ase

// This file contains the bounds-checked cursor every decoder in the package
// reads through.

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// reader is a cursor over one region of the file: the whole buffer, a frame,
// or a single chunk. Offsets reported in errors are absolute file offsets.
type reader struct {
	buf  []byte
	base int // file offset of buf[0]
	pos  int
}

func newReader(buf []byte, base int) *reader {
	return &reader{buf: buf, base: base}
}

// offset returns the absolute file offset of the cursor.
func (r *reader) offset() int {
	return r.base + r.pos
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) boundsError(n int) error {
	return &BoundsError{Offset: r.offset(), Want: n, End: r.base + len(r.buf)}
}

// peek returns the next n bytes without consuming them.
func (r *reader) peek(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, r.boundsError(n)
	}
	return r.buf[r.pos : r.pos+n], nil
}

// next consumes n bytes and returns them. The returned slice aliases the
// underlying buffer.
func (r *reader) next(n int) ([]byte, error) {
	b, err := r.peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

func (r *reader) skip(n int) error {
	_, err := r.next(n)
	return err
}

// bytes consumes n bytes and returns a copy of them, so that decoded values
// never share memory with the caller's buffer.
func (r *reader) bytes(n int) ([]byte, error) {
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// rest consumes everything up to the end of the region.
func (r *reader) rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}

// sub consumes n bytes and returns a reader restricted to them.
func (r *reader) sub(n int) (*reader, error) {
	at := r.offset()
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	return newReader(b, at), nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// read decodes a fixed-size little-endian structure, such as a header. Blank
// (_) fields of v are skipped, which is how reserved bytes are expressed.
func (r *reader) read(v interface{}) error {
	n := binary.Size(v)
	if n < 0 {
		return errors.Errorf("ase: %T has no fixed wire size", v)
	}
	b, err := r.next(n)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, v)
}

// string reads a WORD byte length followed by that many UTF-8 bytes. There
// is no terminator.
func (r *reader) string() (string, error) {
	n, err := r.u16()
	if err != nil {
		return "", errors.Wrap(err, "reading string length")
	}
	b, err := r.next(int(n))
	if err != nil {
		return "", errors.Wrap(err, "reading string")
	}
	return string(b), nil
}

// MaxInflatedSize bounds the output of any single zlib stream in a file.
const MaxInflatedSize = 1 << 28

// inflateLimit returns the size of a w by h grid of elements of the passed
// width in bits, or -1 when the width is unknown.
func inflateLimit(w, h int64, bits int) int64 {
	if bits <= 0 {
		return -1
	}
	if w != 0 && h > MaxInflatedSize/w {
		return MaxInflatedSize
	}
	return (w*h*int64(bits) + 7) / 8
}

// inflate zlib-decompresses the next n bytes, keeping no more than limit
// bytes of output. A negative limit, or one past MaxInflatedSize, means
// MaxInflatedSize.
func (r *reader) inflate(n int, limit int64) ([]byte, error) {
	at := r.offset()
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	return inflate(b, at, limit)
}

func inflate(b []byte, at int, limit int64) ([]byte, error) {
	if limit < 0 || limit > MaxInflatedSize {
		limit = MaxInflatedSize
	}
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "ase: opening zlib stream at offset %d", at)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, limit))
	if err != nil {
		return nil, errors.Wrapf(err, "ase: inflating zlib stream at offset %d", at)
	}
	return out, nil
}
