package ase

import (
	"testing"

	"badc0de.net/pkg/go-aseprite/ttesting"
)

// le and friends are shorthands for the fixture encoders in ttesting.
var (
	le  = ttesting.LE
	str = ttesting.Str
	cat = ttesting.Cat
)

func newSprite() *ttesting.Sprite {
	return ttesting.NewSprite(4, 4, uint16(DepthRGBA))
}

func decodeForTest(t *testing.T, buf []byte) *Document {
	t.Helper()
	doc, err := Decode(buf)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	return doc
}

func countDiagnostics(doc *Document, kind DiagnosticKind) int {
	n := 0
	for _, d := range doc.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func layerChunk(s *ttesting.SpriteFrame, kind LayerKind, depth int, name string) {
	s.Chunk(uint16(ChunkLayer), ttesting.LayerPayload(uint16(LayerVisible), uint16(kind), uint16(depth), name))
}
