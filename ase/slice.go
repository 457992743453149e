package ase

import (
	"image"
)

// SliceFlags says which optional parts every key of a slice carries.
type SliceFlags uint32

const (
	SliceNinePatch SliceFlags = 1 << iota // keys have a center rectangle
	SlicePivot                            // keys have a pivot point
)

// Rect is a rectangle as stored in slice keys.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// Rectangle converts r into an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// SliceKey is the state of a slice from Frame onwards.
type SliceKey struct {
	Frame  uint32
	Bounds Rect
	// Center is relative to Bounds, and set only for nine-patch slices.
	Center *Rect
	// Pivot is relative to Bounds' origin, and set only for slices with a
	// pivot.
	Pivot *image.Point
}

// SliceChunk is a named rectangle over the canvas, keyed by frame.
type SliceChunk struct {
	ChunkHeader
	Name     string
	Flags    SliceFlags
	Reserved uint32
	Keys     []SliceKey
}

// KeyAt returns the key in effect at the passed frame: the last key which
// starts at or before it.
func (s *SliceChunk) KeyAt(frame int) (SliceKey, bool) {
	var key SliceKey
	found := false
	for _, k := range s.Keys {
		if int(k.Frame) <= frame {
			key, found = k, true
		}
	}
	return key, found
}

type sliceWire struct {
	Count    uint32
	Flags    SliceFlags
	Reserved uint32
}

type sliceKeyWire struct {
	Frame uint32
	Rect
}

func decodeSlice(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w sliceWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	name, err := r.string()
	if err != nil {
		return nil, err
	}

	var keys []SliceKey
	for i := uint32(0); i < w.Count; i++ {
		var kw sliceKeyWire
		if err := r.read(&kw); err != nil {
			return nil, err
		}
		var center *Rect
		if w.Flags&SliceNinePatch != 0 {
			center = &Rect{}
			if err := r.read(center); err != nil {
				return nil, err
			}
		}
		var pivot *image.Point
		if w.Flags&SlicePivot != 0 {
			var pw struct{ X, Y int32 }
			if err := r.read(&pw); err != nil {
				return nil, err
			}
			pivot = &image.Point{X: int(pw.X), Y: int(pw.Y)}
		}
		keys = append(keys, SliceKey{Frame: kw.Frame, Bounds: kw.Rect, Center: center, Pivot: pivot})
	}

	return &SliceChunk{
		ChunkHeader: h,
		Name:        name,
		Flags:       w.Flags,
		Reserved:    w.Reserved,
		Keys:        keys,
	}, nil
}
