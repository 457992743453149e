package ase

import (
	"image/color"
)

// Document is a decoded sprite file. It is not modified after Decode
// returns, and may be read from several goroutines.
type Document struct {
	Header Header
	Frames []*Frame

	// Layers lists the layers of the first frame in file order.
	Layers []*Layer
	// Tree holds the top level layers; groups hold their children.
	Tree []*Layer

	// Diagnostics lists what was skipped or worked around while decoding.
	Diagnostics []Diagnostic

	// BytesRead is the header size plus the declared size of every frame.
	BytesRead int

	userData map[Chunk]*UserDataChunk
}

// LayerByIndex returns the layer cels with this LayerIndex are placed on.
func (doc *Document) LayerByIndex(idx int) *Layer {
	for _, l := range doc.Layers {
		if l.Index == idx {
			return l
		}
	}
	return nil
}

// Cel returns the cel of the passed layer in the passed frame, following
// linked cels to the cel holding the actual data. It returns nil if the
// layer has no cel in that frame.
func (doc *Document) Cel(frame, layer int) *Cel {
	// A link can only point to another frame; bound the walk anyway in case
	// a malformed file links frames in a cycle.
	for hops := 0; hops <= len(doc.Frames); hops++ {
		if frame < 0 || frame >= len(doc.Frames) {
			return nil
		}
		cel := doc.Frames[frame].Cel(layer)
		if cel == nil {
			return nil
		}
		link, ok := cel.Payload.(*LinkedCel)
		if !ok {
			return cel
		}
		frame = int(link.Frame)
	}
	return nil
}

// UserData returns the user data chunk which immediately followed c in its
// frame, if any.
func (doc *Document) UserData(c Chunk) *UserDataChunk {
	return doc.userData[c]
}

// Tags returns every animation tag, in file order.
func (doc *Document) Tags() []Tag {
	var tags []Tag
	doc.each(func(c Chunk) {
		if t, ok := c.(*TagsChunk); ok {
			tags = append(tags, t.Tags...)
		}
	})
	return tags
}

// Slices returns every slice chunk, in file order.
func (doc *Document) Slices() []*SliceChunk {
	var slices []*SliceChunk
	doc.each(func(c Chunk) {
		if s, ok := c.(*SliceChunk); ok {
			slices = append(slices, s)
		}
	})
	return slices
}

// Tileset returns the tileset chunk with the passed ID.
func (doc *Document) Tileset(id uint32) *TilesetChunk {
	var ts *TilesetChunk
	doc.each(func(c Chunk) {
		if t, ok := c.(*TilesetChunk); ok && t.ID == id && ts == nil {
			ts = t
		}
	})
	return ts
}

// Tilesets returns every tileset chunk, in file order.
func (doc *Document) Tilesets() []*TilesetChunk {
	var tilesets []*TilesetChunk
	doc.each(func(c Chunk) {
		if t, ok := c.(*TilesetChunk); ok {
			tilesets = append(tilesets, t)
		}
	})
	return tilesets
}

// maxPaletteSize bounds palettes built by Document.Palette.
const maxPaletteSize = 1 << 16

// Palette returns the sprite palette as set up by the first frame. Palette
// chunks take precedence; old palette chunks are only used in files that
// have no palette chunk. Unset entries are opaque black.
func (doc *Document) Palette() color.Palette {
	var pal color.Palette
	grow := func(n int) {
		if n > maxPaletteSize {
			n = maxPaletteSize
		}
		for len(pal) < n {
			pal = append(pal, color.RGBA{A: 0xFF})
		}
	}
	set := func(e PaletteEntry) {
		if e.Index >= maxPaletteSize {
			return
		}
		grow(e.Index + 1)
		pal[e.Index] = e.Color
	}
	grow(doc.Header.Colors())
	if len(doc.Frames) == 0 {
		return pal
	}

	current := false
	for _, c := range doc.Frames[0].Chunks {
		if p, ok := c.(*PaletteChunk); ok {
			current = true
			grow(int(p.Size))
			for _, e := range p.Entries {
				set(e)
			}
		}
	}
	if current {
		return pal
	}
	for _, c := range doc.Frames[0].Chunks {
		if p, ok := c.(*OldPaletteChunk); ok {
			for _, e := range p.Entries() {
				set(e)
			}
		}
	}
	return pal
}

func (doc *Document) each(fn func(Chunk)) {
	for _, f := range doc.Frames {
		for _, c := range f.Chunks {
			fn(c)
		}
	}
}
