package ase

import (
	"image/color"
)

// UserDataFlags says which fields a user data chunk carries.
type UserDataFlags uint32

const (
	UserDataText UserDataFlags = 1 << iota
	UserDataColor
	UserDataProperties
)

// UserDataChunk attaches text and a color to the chunk right before it in
// the same frame; see Document.UserData.
type UserDataChunk struct {
	ChunkHeader
	Flags    UserDataFlags
	Text     string
	HasText  bool
	Color    color.RGBA
	HasColor bool
	// HasProperties is set when the chunk carries a property map. Property
	// maps are not decoded.
	HasProperties bool
}

func decodeUserData(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	f, err := r.u32()
	if err != nil {
		return nil, err
	}
	flags := UserDataFlags(f)

	var text string
	if flags&UserDataText != 0 {
		if text, err = r.string(); err != nil {
			return nil, err
		}
	}
	var c color.RGBA
	if flags&UserDataColor != 0 {
		var rgba [4]uint8
		if err := r.read(&rgba); err != nil {
			return nil, err
		}
		c = color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	}
	if flags&UserDataProperties != 0 {
		d.note(KindPropertyMap, h, "property map not decoded")
	}

	return &UserDataChunk{
		ChunkHeader:   h,
		Flags:         flags,
		Text:          text,
		HasText:       flags&UserDataText != 0,
		Color:         c,
		HasColor:      flags&UserDataColor != 0,
		HasProperties: flags&UserDataProperties != 0,
	}, nil
}
