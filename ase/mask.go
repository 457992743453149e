package ase

// MaskChunk is a deprecated selection mask.
type MaskChunk struct {
	ChunkHeader
	X, Y          int16
	Width, Height uint16
	Name          string
	// Bitmap holds one bit per pixel, each row padded to a whole byte.
	Bitmap []byte
}

type maskWire struct {
	X, Y          int16
	Width, Height uint16
	_             [8]byte
}

func decodeMask(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w maskWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	name, err := r.string()
	if err != nil {
		return nil, err
	}
	bitmap, err := r.bytes(int(w.Height) * ((int(w.Width) + 7) / 8))
	if err != nil {
		return nil, err
	}
	return &MaskChunk{
		ChunkHeader: h,
		X:           w.X,
		Y:           w.Y,
		Width:       w.Width,
		Height:      w.Height,
		Name:        name,
		Bitmap:      bitmap,
	}, nil
}

// PathChunk is reserved by the format and never written. Its payload, if
// any, is ignored.
type PathChunk struct {
	ChunkHeader
}

func decodePath(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	return &PathChunk{ChunkHeader: h}, nil
}
