package ttesting

// This file contains helpers for assembling synthetic sprite files in tests,
// so that decoders can be tested without checking in binary fixtures.

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"
)

// LE encodes the passed fixed-size values back to back, little endian.
// Strings are not fixed size; use Str for them.
func LE(values ...interface{}) []byte {
	buf := &bytes.Buffer{}
	for _, v := range values {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

// Str encodes a WORD-length-prefixed string.
func Str(s string) []byte {
	return append(LE(uint16(len(s))), s...)
}

// Zlib compresses b.
func Zlib(b []byte) []byte {
	buf := &bytes.Buffer{}
	w := zlib.NewWriter(buf)
	if _, err := w.Write(b); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Cat concatenates byte slices.
func Cat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// Sprite is a sprite file under construction.
type Sprite struct {
	Width, Height uint16
	Depth         uint16
	Flags         uint32
	NumColors     uint16
	Magic         uint16 // defaults to 0xA5E0

	frames []*SpriteFrame
}

// SpriteFrame is a frame under construction.
type SpriteFrame struct {
	Duration uint16
	Magic    uint16 // defaults to 0xF1FA
	// Padding is the number of zero bytes written after the last chunk and
	// counted in the frame's declared size.
	Padding int
	// Reserved is written to the last four header bytes in place of the
	// 32-bit chunk count when the 16-bit count is not saturated.
	Reserved uint32

	chunks [][]byte
}

// NewSprite starts a sprite with the passed canvas size and color depth.
func NewSprite(w, h, depth uint16) *Sprite {
	return &Sprite{Width: w, Height: h, Depth: depth}
}

// Frame appends a new frame.
func (s *Sprite) Frame(durationMS uint16) *SpriteFrame {
	f := &SpriteFrame{Duration: durationMS}
	s.frames = append(s.frames, f)
	return f
}

// Chunk appends a chunk of the passed type; the preamble is computed from
// the payload.
func (f *SpriteFrame) Chunk(typ uint16, payload ...[]byte) *SpriteFrame {
	body := Cat(payload...)
	f.chunks = append(f.chunks, Cat(LE(uint32(6+len(body)), typ), body))
	return f
}

// SizedChunk appends a chunk declaring the passed size regardless of its
// payload length. The payload is padded with zeros, or truncated, to fit.
func (f *SpriteFrame) SizedChunk(size uint32, typ uint16, payload ...[]byte) *SpriteFrame {
	body := Cat(payload...)
	n := int(size) - 6
	if n < 0 {
		n = 0
	}
	for len(body) < n {
		body = append(body, 0)
	}
	f.chunks = append(f.chunks, Cat(LE(size, typ), body[:n]))
	return f
}

// Raw appends bytes as they are, preamble included.
func (f *SpriteFrame) Raw(b []byte) *SpriteFrame {
	f.chunks = append(f.chunks, b)
	return f
}

// Bytes encodes the frame.
func (f *SpriteFrame) Bytes() []byte {
	body := Cat(Cat(f.chunks...), make([]byte, f.Padding))
	magic := f.Magic
	if magic == 0 {
		magic = 0xF1FA
	}
	n := len(f.chunks)
	old, count := uint16(n), uint32(n)
	if n >= 0xFFFF {
		old = 0xFFFF
	} else if f.Reserved != 0 {
		count = f.Reserved
	}
	hdr := LE(uint32(16+len(body)), magic, old, f.Duration, [2]byte{}, count)
	return Cat(hdr, body)
}

// Bytes encodes the whole file.
func (s *Sprite) Bytes() []byte {
	var frames [][]byte
	for _, f := range s.frames {
		frames = append(frames, f.Bytes())
	}
	body := Cat(frames...)
	magic := s.Magic
	if magic == 0 {
		magic = 0xA5E0
	}
	hdr := Cat(
		LE(uint32(128+len(body)), magic, uint16(len(s.frames)), s.Width, s.Height, s.Depth),
		LE(s.Flags, uint16(100), [8]byte{}),
		LE(uint8(0), [3]byte{}, s.NumColors, uint8(1), uint8(1)),
		LE(int16(0), int16(0), uint16(16), uint16(16), [84]byte{}),
	)
	return Cat(hdr, body)
}

// LayerPayload encodes a layer chunk payload without tileset index or UUID.
func LayerPayload(flags, kind, depth uint16, name string) []byte {
	return Cat(LE(flags, kind, depth, uint16(0), uint16(0), uint16(0), uint8(255), [3]byte{}), Str(name))
}

// CelHeader encodes the fixed part of a cel chunk payload.
func CelHeader(layer uint16, x, y int16, opacity uint8, typ uint16) []byte {
	return LE(layer, x, y, opacity, typ, int16(0), [5]byte{})
}
