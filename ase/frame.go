package ase

import (
	"time"
)

const (
	// FrameHeaderSize is the size of the record preceding each frame's
	// chunks, in bytes.
	FrameHeaderSize = 16
	// FrameMagic is the magic number stored in every frame header.
	FrameMagic = 0xF1FA
)

// FrameHeader is the fixed 16-byte record at the start of every frame.
type FrameHeader struct {
	Size      uint32 // whole frame, including this header
	Magic     uint16
	OldChunks uint16 // 0xFFFF when NewChunks must be used instead
	Duration  uint16 // milliseconds
	_         [2]byte
	NewChunks uint32 // reserved unless OldChunks is 0xFFFF
}

// NumChunks returns the number of chunks declared for the frame. The 32-bit
// count is only consulted when the 16-bit one is saturated; older writers
// leave arbitrary bytes there.
func (h *FrameHeader) NumChunks() int {
	if h.OldChunks == 0xFFFF {
		return int(h.NewChunks)
	}
	return int(h.OldChunks)
}

// Frame is one frame of the animation and the chunks it contains, in the
// order they appear in the file.
type Frame struct {
	FrameHeader
	Index  int
	Offset int // file offset of the frame header
	Chunks []Chunk
}

// Length returns how long the frame is displayed.
func (f *Frame) Length() time.Duration {
	return time.Duration(f.Duration) * time.Millisecond
}

// Cels returns the cel chunks of the frame.
func (f *Frame) Cels() []*Cel {
	var cels []*Cel
	for _, c := range f.Chunks {
		if cel, ok := c.(*Cel); ok {
			cels = append(cels, cel)
		}
	}
	return cels
}

// Cel returns the cel placed on the layer with the passed index, or nil.
func (f *Frame) Cel(layer int) *Cel {
	for _, c := range f.Chunks {
		if cel, ok := c.(*Cel); ok && int(cel.LayerIndex) == layer {
			return cel
		}
	}
	return nil
}
