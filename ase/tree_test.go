package ase

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-aseprite/ttesting"
)

type layerSpec struct {
	kind  LayerKind
	depth int
	name  string
}

func spriteWithLayers(layers ...layerSpec) *ttesting.Sprite {
	s := newSprite()
	f := s.Frame(100)
	for _, l := range layers {
		layerChunk(f, l.kind, l.depth, l.name)
	}
	return s
}

func treeString(roots []*Layer) string {
	var parts []string
	Walk(roots, func(l *Layer, depth int) bool {
		parts = append(parts, strings.Repeat(">", depth)+l.Name)
		return true
	})
	return strings.Join(parts, " ")
}

func TestLayerTree(t *testing.T) {
	s := spriteWithLayers(
		layerSpec{LayerGroup, 0, "g1"},
		layerSpec{LayerNormal, 1, "a"},
		layerSpec{LayerNormal, 1, "b"},
		layerSpec{LayerGroup, 0, "g2"},
		layerSpec{LayerNormal, 1, "c"},
	)
	doc := decodeForTest(t, s.Bytes())

	ttesting.AssertEqualInt(t, "roots", len(doc.Tree), 2)
	ttesting.AssertEqualInt(t, "children of g1", len(doc.Tree[0].Children), 2)
	ttesting.AssertEqualInt(t, "children of g2", len(doc.Tree[1].Children), 1)
	ttesting.AssertEqualString(t, "walk", treeString(doc.Tree), "g1 >a >b g2 >c")
	ttesting.AssertEqualInt(t, "diagnostics", len(doc.Diagnostics), 0)
}

func TestLayerTreeNested(t *testing.T) {
	s := spriteWithLayers(
		layerSpec{LayerNormal, 0, "bg"},
		layerSpec{LayerGroup, 0, "outer"},
		layerSpec{LayerGroup, 1, "inner"},
		layerSpec{LayerNormal, 2, "deep"},
		layerSpec{LayerNormal, 1, "shallow"},
		layerSpec{LayerNormal, 0, "top"},
	)
	doc := decodeForTest(t, s.Bytes())

	ttesting.AssertEqualString(t, "walk", treeString(doc.Tree), "bg outer >inner >>deep >shallow top")
	if doc.Layers[0].Children != nil {
		t.Errorf("normal layer has a children slice")
	}
	for i, l := range doc.Layers {
		ttesting.AssertEqualInt(t, "index of "+l.Name, l.Index, i)
	}
}

func TestLayerTreeEmptyGroup(t *testing.T) {
	s := spriteWithLayers(layerSpec{LayerGroup, 0, "empty"}, layerSpec{LayerNormal, 0, "after"})
	doc := decodeForTest(t, s.Bytes())

	if doc.Tree[0].Children == nil {
		t.Errorf("empty group has a nil children slice")
	}
	ttesting.AssertEqualInt(t, "children", len(doc.Tree[0].Children), 0)
	ttesting.AssertEqualInt(t, "roots", len(doc.Tree), 2)
}

func TestLayerTreeDepthJump(t *testing.T) {
	layers := []layerSpec{
		{LayerGroup, 0, "g"},
		{LayerNormal, 3, "lost"},
		{LayerNormal, 0, "top"},
	}

	doc := decodeForTest(t, spriteWithLayers(layers...).Bytes())
	ttesting.AssertEqualString(t, "walk", treeString(doc.Tree), "g >lost top")
	ttesting.AssertEqualInt(t, "diagnostics", countDiagnostics(doc, KindLayerDepthJump), 1)

	_, err := DecodeWithOptions(spriteWithLayers(layers...).Bytes(), Options{Strict: true})
	if !errors.Is(err, ErrLayerTree) {
		t.Errorf("strict: got error %v; want ErrLayerTree", err)
	}
	if !errors.Is(err, ErrFormat) {
		t.Errorf("strict: got error %v; want it to be a format error too", err)
	}
}

func TestLayerTreeJumpAtRoot(t *testing.T) {
	doc := decodeForTest(t, spriteWithLayers(layerSpec{LayerNormal, 1, "orphan"}).Bytes())
	ttesting.AssertEqualInt(t, "roots", len(doc.Tree), 1)
	ttesting.AssertEqualInt(t, "diagnostics", countDiagnostics(doc, KindLayerDepthJump), 1)
}

func TestWalkStops(t *testing.T) {
	s := spriteWithLayers(
		layerSpec{LayerGroup, 0, "g"},
		layerSpec{LayerNormal, 1, "a"},
		layerSpec{LayerNormal, 1, "b"},
		layerSpec{LayerNormal, 0, "c"},
	)
	doc := decodeForTest(t, s.Bytes())

	var seen []string
	Walk(doc.Tree, func(l *Layer, depth int) bool {
		seen = append(seen, l.Name)
		return l.Name != "a"
	})
	ttesting.AssertEqualString(t, "visited", strings.Join(seen, ","), "g,a")
}

func TestTilemapLayer(t *testing.T) {
	s := newSprite()
	s.Frame(100).Chunk(uint16(ChunkLayer), ttesting.LayerPayload(1, uint16(LayerTilemap), 0, "map"), le(uint32(7)))

	doc := decodeForTest(t, s.Bytes())
	l := doc.Layers[0]
	ttesting.AssertEqualString(t, "kind", l.Kind.String(), "tilemap")
	ttesting.AssertEqualUint32(t, "tileset", l.TilesetIndex, 7)
	ttesting.AssertTrue(t, "visible", l.Visible())
}

func TestLayerUUID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	s := newSprite()
	s.Flags = uint32(FlagLayerUUID)
	f := s.Frame(100)
	f.Chunk(uint16(ChunkLayer), ttesting.LayerPayload(1, uint16(LayerNormal), 0, "a"), id[:])
	f.Chunk(uint16(ChunkLayer), ttesting.LayerPayload(1, uint16(LayerTilemap), 0, "b"), le(uint32(2)), id[:])

	doc := decodeForTest(t, s.Bytes())
	for _, l := range doc.Layers {
		ttesting.AssertTrue(t, l.Name+" has uuid", l.HasUUID)
		ttesting.AssertEqualString(t, l.Name+" uuid", l.UUID.String(), id.String())
	}
	ttesting.AssertEqualUint32(t, "tileset before uuid", doc.Layers[1].TilesetIndex, 2)
}

func TestUnsupportedLayerKeepsIndex(t *testing.T) {
	s := newSprite()
	f := s.Frame(100)
	layerChunk(f, LayerNormal, 0, "a")
	f.Chunk(uint16(ChunkLayer), ttesting.LayerPayload(1, 9, 0, "future"))
	layerChunk(f, LayerNormal, 0, "b")

	doc := decodeForTest(t, s.Bytes())
	ttesting.AssertEqualInt(t, "layers", len(doc.Layers), 2)
	ttesting.AssertEqualInt(t, "index after unsupported layer", doc.Layers[1].Index, 2)
	ttesting.AssertEqualInt(t, "diagnostics", countDiagnostics(doc, KindUnsupportedLayer), 1)
	if doc.LayerByIndex(1) != nil {
		t.Errorf("unsupported layer can be looked up")
	}
	if l := doc.LayerByIndex(2); l == nil || l.Name != "b" {
		t.Errorf("got %v for index 2; want layer b", l)
	}
}

func TestMisplacedLayer(t *testing.T) {
	build := func() []byte {
		s := newSprite()
		layerChunk(s.Frame(100), LayerNormal, 0, "first")
		layerChunk(s.Frame(100), LayerNormal, 0, "late")
		return s.Bytes()
	}

	doc := decodeForTest(t, build())
	ttesting.AssertEqualInt(t, "layers", len(doc.Layers), 1)
	ttesting.AssertEqualInt(t, "roots", len(doc.Tree), 1)
	ttesting.AssertEqualInt(t, "diagnostics", countDiagnostics(doc, KindMisplacedLayer), 1)
	ttesting.AssertEqualInt(t, "diagnostic frame", doc.Diagnostics[0].Frame, 1)
	ttesting.AssertEqualInt(t, "still a chunk of frame 1", len(doc.Frames[1].Chunks), 1)

	if _, err := DecodeWithOptions(build(), Options{Strict: true}); !errors.Is(err, ErrFormat) {
		t.Errorf("strict: got error %v; want ErrFormat", err)
	}
}
