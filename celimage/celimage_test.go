package celimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-aseprite/ase"
	"badc0de.net/pkg/go-aseprite/ttesting"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

func decode(t *testing.T, s *ttesting.Sprite) *ase.Document {
	t.Helper()
	doc, err := ase.Decode(s.Bytes())
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	return doc
}

func addLayer(f *ttesting.SpriteFrame, flags uint16, kind ase.LayerKind, name string, extra ...[]byte) {
	f.Chunk(uint16(ase.ChunkLayer), append([][]byte{ttesting.LayerPayload(flags, uint16(kind), 0, name)}, extra...)...)
}

func rawCel(f *ttesting.SpriteFrame, layer uint16, x, y int16, w, h uint16, pix []byte) {
	f.Chunk(uint16(ase.ChunkCel), ttesting.CelHeader(layer, x, y, 255, uint16(ase.CelRaw)), ttesting.LE(w, h), pix)
}

func assertColor(t *testing.T, img image.Image, x, y int, want color.Color) {
	t.Helper()
	gr, gg, gb, ga := img.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA()
	if gr != wr || gg != wg || gb != wb || ga != wa {
		t.Errorf("at %d,%d: got %v; want %v", x, y, img.At(x, y), want)
	}
}

func TestFromCelRGBA(t *testing.T) {
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthRGBA))
	f := s.Frame(100)
	addLayer(f, 1, ase.LayerNormal, "l")
	rawCel(f, 0, 1, 2, 2, 1, []byte{255, 0, 0, 255, 0, 255, 0, 128})
	doc := decode(t, s)

	img, err := FromCel(doc, doc.Cel(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(1, 2, 3, 3) {
		t.Errorf("got bounds %v", img.Bounds())
	}
	if _, ok := img.(*image.NRGBA); !ok {
		t.Errorf("got %T; want *image.NRGBA", img)
	}
	assertColor(t, img, 1, 2, red)
	assertColor(t, img, 2, 2, color.NRGBA{0, 255, 0, 128})
}

func TestFromCelGrayscale(t *testing.T) {
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthGrayscale))
	f := s.Frame(100)
	addLayer(f, 1, ase.LayerNormal, "l")
	rawCel(f, 0, 0, 0, 2, 1, []byte{200, 255, 10, 0})
	doc := decode(t, s)

	img, err := FromCel(doc, doc.Cel(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	assertColor(t, img, 0, 0, color.NRGBA{200, 200, 200, 255})
	assertColor(t, img, 1, 0, color.NRGBA{10, 10, 10, 0})
}

func indexedSprite(layerFlags uint16) *ttesting.Sprite {
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthIndexed))
	s.NumColors = 3
	f := s.Frame(100)
	f.Chunk(uint16(ase.ChunkPalette),
		ttesting.LE(uint32(3), uint32(0), uint32(2), [8]byte{}),
		ttesting.LE(uint16(0), [4]uint8{0, 0, 0, 255}),
		ttesting.LE(uint16(0), [4]uint8{0, 0, 255, 255}),
		ttesting.LE(uint16(0), [4]uint8{255, 0, 0, 255}),
	)
	addLayer(f, layerFlags, ase.LayerNormal, "l")
	rawCel(f, 0, 0, 0, 4, 1, []byte{0, 1, 2, 200})
	return s
}

func TestFromCelIndexed(t *testing.T) {
	doc := decode(t, indexedSprite(1))

	img, err := FromCel(doc, doc.Cel(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		t.Fatalf("got %T; want *image.Paletted", img)
	}
	ttesting.AssertEqualInt(t, "palette padded", len(p.Palette), 256)
	assertColor(t, img, 0, 0, color.Transparent)
	assertColor(t, img, 1, 0, blue)
	assertColor(t, img, 2, 0, red)
	assertColor(t, img, 3, 0, color.Black)
}

func TestFromCelIndexedBackground(t *testing.T) {
	doc := decode(t, indexedSprite(uint16(ase.LayerVisible|ase.LayerBackground)))

	img, err := FromCel(doc, doc.Cel(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	assertColor(t, img, 0, 0, color.Black)
}

func TestFromCelLinked(t *testing.T) {
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthRGBA))
	f := s.Frame(100)
	addLayer(f, 1, ase.LayerNormal, "l")
	rawCel(f, 0, 3, 3, 1, 1, []byte{0, 0, 255, 255})
	s.Frame(100).Chunk(uint16(ase.ChunkCel), ttesting.CelHeader(0, 0, 0, 255, uint16(ase.CelLinked)), ttesting.LE(uint16(0)))
	doc := decode(t, s)

	img, err := FromCel(doc, doc.Frames[1].Cel(0))
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertTrue(t, "placed like the target", img.Bounds().Min == image.Pt(3, 3))
	assertColor(t, img, 3, 3, blue)
}

func TestFromCelUnsupported(t *testing.T) {
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthRGBA))
	f := s.Frame(100)
	addLayer(f, 1, ase.LayerNormal, "l")
	f.Chunk(uint16(ase.ChunkCel), ttesting.CelHeader(0, 0, 0, 255, 9))
	doc := decode(t, s)

	if _, err := FromCel(doc, doc.Cel(0, 0)); !errors.Is(err, ErrNoImage) {
		t.Errorf("got error %v; want ErrNoImage", err)
	}
}

func TestFromCelShortPixels(t *testing.T) {
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthRGBA))
	f := s.Frame(100)
	addLayer(f, 1, ase.LayerNormal, "l")
	f.Chunk(uint16(ase.ChunkCel), ttesting.CelHeader(0, 0, 0, 255, uint16(ase.CelCompressed)), ttesting.LE(uint16(4), uint16(4)), ttesting.Zlib([]byte{1, 2, 3, 4}))
	doc := decode(t, s)

	if _, err := FromCel(doc, doc.Cel(0, 0)); !errors.Is(err, ErrShortPixels) {
		t.Errorf("got error %v; want ErrShortPixels", err)
	}
}

// tilemapSprite has a tileset of two 2x2 tiles; tile 0 is empty and tile 1
// is red, green / blue, white.
func tilemapSprite(tiles ...uint32) *ttesting.Sprite {
	atlas := ttesting.Cat(
		make([]byte, 16),
		[]byte{255, 0, 0, 255, 0, 255, 0, 255},
		[]byte{0, 0, 255, 255, 255, 255, 255, 255},
	)
	z := ttesting.Zlib(atlas)
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthRGBA))
	f := s.Frame(100)
	f.Chunk(uint16(ase.ChunkTileset),
		ttesting.LE(uint32(0), uint32(ase.TilesetEmbedded|ase.TilesetZeroIsEmpty), uint32(2), uint16(2), uint16(2), int16(1), [14]byte{}), ttesting.Str("tiles"),
		ttesting.LE(uint32(len(z))), z,
	)
	addLayer(f, 1, ase.LayerTilemap, "map", ttesting.LE(uint32(0)))
	f.Chunk(uint16(ase.ChunkCel),
		ttesting.CelHeader(0, 0, 0, 255, uint16(ase.CelCompressedTilemap)),
		ttesting.LE(uint16(len(tiles)), uint16(1), uint16(32), uint32(0x1FFFFFFF), uint32(0x20000000), uint32(0x40000000), uint32(0x80000000), [10]byte{}),
		ttesting.Zlib(ttesting.LE(tiles)),
	)
	return s
}

func TestFromTileset(t *testing.T) {
	doc := decode(t, tilemapSprite(1))

	img, err := FromTileset(doc, doc.Tileset(0))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 4) {
		t.Errorf("got bounds %v", img.Bounds())
	}
	assertColor(t, img, 1, 2, green)
}

func TestFromCelTilemap(t *testing.T) {
	doc := decode(t, tilemapSprite(1, 1|0x20000000, 0, 1|0x40000000|0x80000000))

	img, err := FromCel(doc, doc.Cel(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 2) {
		t.Fatalf("got bounds %v", img.Bounds())
	}
	// Plain tile.
	assertColor(t, img, 0, 0, red)
	assertColor(t, img, 1, 1, white)
	// Flipped horizontally.
	assertColor(t, img, 2, 0, green)
	assertColor(t, img, 3, 1, blue)
	// Empty tile.
	assertColor(t, img, 4, 0, color.Transparent)
	// Transposed, then flipped vertically.
	assertColor(t, img, 6, 0, blue)
	assertColor(t, img, 7, 0, red)
	assertColor(t, img, 7, 1, green)
}

func TestFromTilesetExternal(t *testing.T) {
	ts := &ase.TilesetChunk{ID: 1, Flags: ase.TilesetExternal, Name: "elsewhere"}
	if _, err := FromTileset(&ase.Document{}, ts); !errors.Is(err, ErrNoImage) {
		t.Errorf("got error %v; want ErrNoImage", err)
	}
}

func TestFromCelTilemapTooLarge(t *testing.T) {
	atlas := make([]byte, 256*256*4)
	z := ttesting.Zlib(atlas)
	s := ttesting.NewSprite(8, 8, uint16(ase.DepthRGBA))
	f := s.Frame(100)
	f.Chunk(uint16(ase.ChunkTileset),
		ttesting.LE(uint32(0), uint32(ase.TilesetEmbedded), uint32(1), uint16(256), uint16(256), int16(1), [14]byte{}), ttesting.Str("big"),
		ttesting.LE(uint32(len(z))), z,
	)
	addLayer(f, 1, ase.LayerTilemap, "map", ttesting.LE(uint32(0)))
	f.Chunk(uint16(ase.ChunkCel),
		ttesting.CelHeader(0, 0, 0, 255, uint16(ase.CelCompressedTilemap)),
		ttesting.LE(uint16(2048), uint16(1), uint16(8), uint32(0xFF), uint32(0), uint32(0), uint32(0), [10]byte{}),
		ttesting.Zlib(make([]byte, 2048)),
	)
	doc := decode(t, s)

	if _, err := FromCel(doc, doc.Cel(0, 0)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("got error %v; want ErrTooLarge", err)
	}
}
