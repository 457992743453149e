package ase

// TilesetFlags is the bitmask of a tileset chunk.
type TilesetFlags uint32

const (
	TilesetExternal   TilesetFlags = 1 << iota // links to a tileset in an external file
	TilesetEmbedded                            // tiles are stored in this chunk
	TilesetZeroIsEmpty                         // tile ID 0 is the empty tile
	TilesetMatchXFlip
	TilesetMatchYFlip
	TilesetMatchDiagonalFlip
)

// ExternalTileset points at a tileset inside another file, listed in an
// ExternalFilesChunk.
type ExternalTileset struct {
	FileID    uint32
	TilesetID uint32
}

// TilesetChunk is a set of equally sized tiles used by tilemap layers.
type TilesetChunk struct {
	ChunkHeader
	ID         uint32
	Flags      TilesetFlags
	NumTiles   uint32
	TileWidth  uint16
	TileHeight uint16
	BaseIndex  int16 // number shown for the first tile in the editor
	Name       string

	// External is set only for TilesetExternal.
	External *ExternalTileset
	// Tiles is set only for TilesetEmbedded. It holds the inflated atlas:
	// NumTiles tiles stacked vertically, TileWidth pixels wide.
	Tiles []byte
}

type tilesetWire struct {
	ID         uint32
	Flags      TilesetFlags
	NumTiles   uint32
	TileWidth  uint16
	TileHeight uint16
	BaseIndex  int16
	_          [14]byte
}

func decodeTileset(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w tilesetWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	name, err := r.string()
	if err != nil {
		return nil, err
	}

	var ext *ExternalTileset
	if w.Flags&TilesetExternal != 0 {
		ext = &ExternalTileset{}
		if err := r.read(ext); err != nil {
			return nil, err
		}
	}

	var tiles []byte
	if w.Flags&TilesetEmbedded != 0 {
		n, err := r.u32()
		if err != nil {
			return nil, err
		}
		limit := inflateLimit(int64(w.TileWidth), int64(w.TileHeight)*int64(w.NumTiles), 8*d.header.BytesPerPixel())
		if tiles, err = r.inflate(int(n), limit); err != nil {
			return nil, err
		}
	}

	return &TilesetChunk{
		ChunkHeader: h,
		ID:          w.ID,
		Flags:       w.Flags,
		NumTiles:    w.NumTiles,
		TileWidth:   w.TileWidth,
		TileHeight:  w.TileHeight,
		BaseIndex:   w.BaseIndex,
		Name:        name,
		External:    ext,
		Tiles:       tiles,
	}, nil
}
