package ase

import (
	"fmt"
)

// ColorProfileType is the kind of color profile stored in the file.
type ColorProfileType uint16

const (
	ProfileNone ColorProfileType = iota
	ProfileSRGB
	ProfileICC
)

func (t ColorProfileType) String() string {
	switch t {
	case ProfileNone:
		return "none"
	case ProfileSRGB:
		return "sRGB"
	case ProfileICC:
		return "ICC"
	}
	return fmt.Sprintf("color profile type %d unknown", uint16(t))
}

// ColorProfileChunk describes the color space of the sprite.
type ColorProfileChunk struct {
	ChunkHeader
	Type  ColorProfileType
	Flags uint16 // bit 0: use Gamma
	Gamma Fixed  // 1.0 is linear
	ICC   []byte // only for ProfileICC
}

// HasFixedGamma reports whether Gamma should be applied.
func (c *ColorProfileChunk) HasFixedGamma() bool {
	return c.Flags&1 != 0
}

type colorProfileWire struct {
	Type  ColorProfileType
	Flags uint16
	Gamma Fixed
	_     [8]byte
}

func decodeColorProfile(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w colorProfileWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	var icc []byte
	if w.Type == ProfileICC {
		n, err := r.u32()
		if err != nil {
			return nil, err
		}
		if icc, err = r.bytes(int(n)); err != nil {
			return nil, err
		}
	}
	return &ColorProfileChunk{
		ChunkHeader: h,
		Type:        w.Type,
		Flags:       w.Flags,
		Gamma:       w.Gamma,
		ICC:         icc,
	}, nil
}

// ExternalFileType says what an external file is used for.
type ExternalFileType uint8

const (
	ExternalFilePalette ExternalFileType = iota
	ExternalFileTileset
	ExternalFilePropertiesName
	ExternalFileTileManagementPlugin
)

// ExternalFile is a file referenced by tilesets or other chunks by ID.
type ExternalFile struct {
	ID   uint32
	Type ExternalFileType
	Name string // file name or extension ID
}

// ExternalFilesChunk lists the external files referenced by the sprite.
type ExternalFilesChunk struct {
	ChunkHeader
	Files []ExternalFile
}

// File returns the external file with the passed ID.
func (c *ExternalFilesChunk) File(id uint32) (ExternalFile, bool) {
	for _, f := range c.Files {
		if f.ID == id {
			return f, true
		}
	}
	return ExternalFile{}, false
}

func decodeExternalFiles(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w struct {
		Count uint32
		_     [8]byte
	}
	if err := r.read(&w); err != nil {
		return nil, err
	}
	var files []ExternalFile
	for i := uint32(0); i < w.Count; i++ {
		var ew struct {
			ID   uint32
			Type ExternalFileType
			_    [7]byte
		}
		if err := r.read(&ew); err != nil {
			return nil, err
		}
		name, err := r.string()
		if err != nil {
			return nil, err
		}
		files = append(files, ExternalFile{ID: ew.ID, Type: ew.Type, Name: name})
	}
	return &ExternalFilesChunk{ChunkHeader: h, Files: files}, nil
}
