package ase

import (
	"encoding/binary"
	"fmt"
)

// CelType selects the payload layout of a cel chunk.
type CelType uint16

const (
	CelRaw CelType = iota
	CelLinked
	CelCompressed
	CelCompressedTilemap
)

func (t CelType) String() string {
	switch t {
	case CelRaw:
		return "raw image"
	case CelLinked:
		return "linked"
	case CelCompressed:
		return "compressed image"
	case CelCompressedTilemap:
		return "compressed tilemap"
	}
	return fmt.Sprintf("cel type %d unknown", uint16(t))
}

// Cel is the content of one layer in one frame.
type Cel struct {
	ChunkHeader
	LayerIndex uint16
	X, Y       int16
	Opacity    uint8
	Type       CelType
	ZIndex     int16 // render order offset relative to the layer

	// Payload is one of *RawCel, *LinkedCel, *CompressedCel or *TilemapCel.
	// It is nil for cel types this package does not support.
	Payload CelPayload
}

// CelPayload is implemented by the payload types of a cel.
type CelPayload interface {
	celType() CelType
}

// RawCel holds uncompressed pixels, row by row.
type RawCel struct {
	Width, Height uint16
	Pixels        []byte
}

// LinkedCel reuses the cel of the same layer in another frame.
type LinkedCel struct {
	Frame uint16
}

// CompressedCel holds pixels which were zlib-compressed in the file. Pixels
// holds them inflated, in the same layout as RawCel.
type CompressedCel struct {
	Width, Height uint16
	Pixels        []byte
}

// TilemapCel holds a grid of tile references, inflated.
type TilemapCel struct {
	Width, Height    uint16 // in tiles
	BitsPerTile      uint16
	TileIDMask       uint32
	XFlipMask        uint32
	YFlipMask        uint32
	DiagonalFlipMask uint32
	Data             []byte
}

func (*RawCel) celType() CelType        { return CelRaw }
func (*LinkedCel) celType() CelType     { return CelLinked }
func (*CompressedCel) celType() CelType { return CelCompressed }
func (*TilemapCel) celType() CelType    { return CelCompressedTilemap }

// Image returns the cel's size and pixels if it holds an image, either raw
// or compressed.
func (c *Cel) Image() (w, h int, pixels []byte, ok bool) {
	switch p := c.Payload.(type) {
	case *RawCel:
		return int(p.Width), int(p.Height), p.Pixels, true
	case *CompressedCel:
		return int(p.Width), int(p.Height), p.Pixels, true
	}
	return 0, 0, nil, false
}

// Tiles unpacks Data into one value per tile. Only 8, 16 and 32 bits per
// tile are supported; for any other width ok is false.
func (t *TilemapCel) Tiles() (tiles []uint32, ok bool) {
	switch t.BitsPerTile {
	case 8:
		tiles = make([]uint32, len(t.Data))
		for i, b := range t.Data {
			tiles[i] = uint32(b)
		}
	case 16:
		tiles = make([]uint32, len(t.Data)/2)
		for i := range tiles {
			tiles[i] = uint32(binary.LittleEndian.Uint16(t.Data[2*i:]))
		}
	case 32:
		tiles = make([]uint32, len(t.Data)/4)
		for i := range tiles {
			tiles[i] = binary.LittleEndian.Uint32(t.Data[4*i:])
		}
	default:
		return nil, false
	}
	return tiles, true
}

// Split separates a tile value returned by Tiles into the tile ID and its
// flip bits.
func (t *TilemapCel) Split(v uint32) (id uint32, xflip, yflip, dflip bool) {
	return v & t.TileIDMask, v&t.XFlipMask != 0, v&t.YFlipMask != 0, v&t.DiagonalFlipMask != 0
}

type celWire struct {
	LayerIndex uint16
	X, Y       int16
	Opacity    uint8
	Type       CelType
	ZIndex     int16
	_          [5]byte
}

type tilemapWire struct {
	Width, Height    uint16
	BitsPerTile      uint16
	TileIDMask       uint32
	XFlipMask        uint32
	YFlipMask        uint32
	DiagonalFlipMask uint32
	_                [10]byte
}

func decodeCel(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w celWire
	if err := r.read(&w); err != nil {
		return nil, err
	}

	var payload CelPayload
	var err error
	switch w.Type {
	case CelRaw:
		payload, err = decodeRawCel(d, r)
	case CelLinked:
		var frame uint16
		frame, err = r.u16()
		payload = &LinkedCel{Frame: frame}
	case CelCompressed:
		payload, err = decodeCompressedCel(d, r)
	case CelCompressedTilemap:
		var t *TilemapCel
		t, err = decodeTilemapCel(r)
		if err == nil {
			switch t.BitsPerTile {
			case 8, 16, 32:
			default:
				d.note(KindUnsupportedBitsPerTile, h, "tilemap cel on layer %d uses %d bits per tile", w.LayerIndex, t.BitsPerTile)
			}
		}
		payload = t
	default:
		d.note(KindUnsupportedCel, h, "cel on layer %d has type %d", w.LayerIndex, uint16(w.Type))
	}
	if err != nil {
		return nil, err
	}

	return &Cel{
		ChunkHeader: h,
		LayerIndex:  w.LayerIndex,
		X:           w.X,
		Y:           w.Y,
		Opacity:     w.Opacity,
		Type:        w.Type,
		ZIndex:      w.ZIndex,
		Payload:     payload,
	}, nil
}

// decodeRawCel reads width*height pixels of the sprite's color depth. With
// an unknown depth, the rest of the chunk is taken as pixel data.
func decodeRawCel(d *decoder, r *reader) (*RawCel, error) {
	var size struct{ Width, Height uint16 }
	if err := r.read(&size); err != nil {
		return nil, err
	}
	n := r.remaining()
	if bpp := d.header.BytesPerPixel(); bpp != 0 {
		n = int(size.Width) * int(size.Height) * bpp
	}
	pixels, err := r.bytes(n)
	if err != nil {
		return nil, err
	}
	return &RawCel{Width: size.Width, Height: size.Height, Pixels: pixels}, nil
}

func decodeCompressedCel(d *decoder, r *reader) (*CompressedCel, error) {
	var size struct{ Width, Height uint16 }
	if err := r.read(&size); err != nil {
		return nil, err
	}
	limit := inflateLimit(int64(size.Width), int64(size.Height), 8*d.header.BytesPerPixel())
	pixels, err := r.inflate(r.remaining(), limit)
	if err != nil {
		return nil, err
	}
	return &CompressedCel{Width: size.Width, Height: size.Height, Pixels: pixels}, nil
}

func decodeTilemapCel(r *reader) (*TilemapCel, error) {
	var w tilemapWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	limit := inflateLimit(int64(w.Width), int64(w.Height), int(w.BitsPerTile))
	data, err := r.inflate(r.remaining(), limit)
	if err != nil {
		return nil, err
	}
	return &TilemapCel{
		Width:            w.Width,
		Height:           w.Height,
		BitsPerTile:      w.BitsPerTile,
		TileIDMask:       w.TileIDMask,
		XFlipMask:        w.XFlipMask,
		YFlipMask:        w.YFlipMask,
		DiagonalFlipMask: w.DiagonalFlipMask,
		Data:             data,
	}, nil
}

// CelExtraChunk holds precise bounds for the cel chunk it follows.
type CelExtraChunk struct {
	ChunkHeader
	Flags  uint32 // bit 0: precise bounds are set
	X, Y   Fixed
	Width  Fixed
	Height Fixed
}

type celExtraWire struct {
	Flags         uint32
	X, Y          Fixed
	Width, Height Fixed
	_             [16]byte
}

func decodeCelExtra(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w celExtraWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	return &CelExtraChunk{
		ChunkHeader: h,
		Flags:       w.Flags,
		X:           w.X,
		Y:           w.Y,
		Width:       w.Width,
		Height:      w.Height,
	}, nil
}
