package ase

import (
	"fmt"
)

// ChunkType identifies the layout of a chunk's payload.
type ChunkType uint16

// Chunk types recognized by the decoder. Anything else is skipped.
const (
	ChunkOldPalette    ChunkType = 0x0004 // 8 bits per channel
	ChunkOldPalette64  ChunkType = 0x0011 // 6 bits per channel, 0..63
	ChunkLayer         ChunkType = 0x2004
	ChunkCel           ChunkType = 0x2005
	ChunkCelExtra      ChunkType = 0x2006
	ChunkColorProfile  ChunkType = 0x2007
	ChunkExternalFiles ChunkType = 0x2008
	ChunkMask          ChunkType = 0x2016 // deprecated
	ChunkPath          ChunkType = 0x2017 // never used
	ChunkTags          ChunkType = 0x2018
	ChunkPalette       ChunkType = 0x2019
	ChunkUserData      ChunkType = 0x2020
	ChunkSlice         ChunkType = 0x2022
	ChunkTileset       ChunkType = 0x2023
)

func (t ChunkType) String() string {
	switch t {
	case ChunkOldPalette:
		return "old palette"
	case ChunkOldPalette64:
		return "old palette (6-bit)"
	case ChunkLayer:
		return "layer"
	case ChunkCel:
		return "cel"
	case ChunkCelExtra:
		return "cel extra"
	case ChunkColorProfile:
		return "color profile"
	case ChunkExternalFiles:
		return "external files"
	case ChunkMask:
		return "mask"
	case ChunkPath:
		return "path"
	case ChunkTags:
		return "tags"
	case ChunkPalette:
		return "palette"
	case ChunkUserData:
		return "user data"
	case ChunkSlice:
		return "slice"
	case ChunkTileset:
		return "tileset"
	}
	return fmt.Sprintf("chunk type 0x%04x unknown", uint16(t))
}

// chunkHeaderSize is the size of the preamble in front of every chunk: a
// DWORD size (which includes the preamble) and a WORD type.
const chunkHeaderSize = 6

// ChunkHeader is the preamble common to every chunk.
type ChunkHeader struct {
	Size   uint32 // declared size, including the preamble
	Type   ChunkType
	Offset int // file offset of the preamble
}

// Header returns the chunk's preamble.
func (h ChunkHeader) Header() ChunkHeader {
	return h
}

func (ChunkHeader) chunk() {}

// Chunk is implemented by every decoded chunk type in this package:
// *OldPaletteChunk, *Layer, *Cel, *CelExtraChunk, *ColorProfileChunk,
// *ExternalFilesChunk, *MaskChunk, *PathChunk, *TagsChunk, *PaletteChunk,
// *UserDataChunk, *SliceChunk and *TilesetChunk.
//
// Use a type switch to tell them apart.
type Chunk interface {
	Header() ChunkHeader
	chunk()
}

// codec decodes a chunk payload. The reader is restricted to the chunk and
// positioned just past its preamble.
type codec func(d *decoder, h ChunkHeader, r *reader) (Chunk, error)

var codecs = map[ChunkType]codec{
	ChunkOldPalette:    decodeOldPalette,
	ChunkOldPalette64:  decodeOldPalette,
	ChunkLayer:         decodeLayer,
	ChunkCel:           decodeCel,
	ChunkCelExtra:      decodeCelExtra,
	ChunkColorProfile:  decodeColorProfile,
	ChunkExternalFiles: decodeExternalFiles,
	ChunkMask:          decodeMask,
	ChunkPath:          decodePath,
	ChunkTags:          decodeTags,
	ChunkPalette:       decodePalette,
	ChunkUserData:      decodeUserData,
	ChunkSlice:         decodeSlice,
	ChunkTileset:       decodeTileset,
}

// Fixed is a signed 16.16 fixed point number.
type Fixed int32

// Float returns the value as a float64.
func (f Fixed) Float() float64 {
	return float64(f) / 65536
}

func (f Fixed) String() string {
	return fmt.Sprintf("%g", f.Float())
}
