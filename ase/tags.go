package ase

import (
	"fmt"
	"image/color"
)

// LoopDirection is how an animation tag is played.
type LoopDirection uint8

const (
	LoopForward LoopDirection = iota
	LoopReverse
	LoopPingPong
	LoopPingPongReverse
)

func (l LoopDirection) String() string {
	switch l {
	case LoopForward:
		return "forward"
	case LoopReverse:
		return "reverse"
	case LoopPingPong:
		return "ping-pong"
	case LoopPingPongReverse:
		return "ping-pong reverse"
	}
	return fmt.Sprintf("loop direction %d unknown", uint8(l))
}

// Tag names the inclusive frame range [From, To].
type Tag struct {
	From, To  uint16
	Direction LoopDirection
	Repeat    uint16 // 0 repeats forever
	Color     color.RGBA
	Name      string
}

// Contains reports whether the tag spans the frame with the passed index.
func (t *Tag) Contains(frame int) bool {
	return frame >= int(t.From) && frame <= int(t.To)
}

// TagsChunk holds every animation tag of the sprite.
type TagsChunk struct {
	ChunkHeader
	Tags []Tag
}

type tagWire struct {
	From, To  uint16
	Direction LoopDirection
	Repeat    uint16
	_         [6]byte
	RGB       [3]uint8
	_         uint8
}

func decodeTags(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w struct {
		Count uint16
		_     [8]byte
	}
	if err := r.read(&w); err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, w.Count)
	for i := 0; i < int(w.Count); i++ {
		var tw tagWire
		if err := r.read(&tw); err != nil {
			return nil, err
		}
		name, err := r.string()
		if err != nil {
			return nil, err
		}
		tags = append(tags, Tag{
			From:      tw.From,
			To:        tw.To,
			Direction: tw.Direction,
			Repeat:    tw.Repeat,
			Color:     color.RGBA{R: tw.RGB[0], G: tw.RGB[1], B: tw.RGB[2], A: 0xFF},
			Name:      name,
		})
	}
	return &TagsChunk{ChunkHeader: h, Tags: tags}, nil
}
