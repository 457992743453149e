package main

import (
	"fmt"
	"io"
	"strings"

	"badc0de.net/pkg/go-aseprite/ase"
)

func printSummary(w io.Writer, path string, doc *ase.Document) {
	h := doc.Header
	pw, ph := h.PixelRatio()
	fmt.Fprintf(w, "%s: %dx%d %s, %d frames, %d layers, %d colors\n", path, h.Width, h.Height, h.ColorDepth, len(doc.Frames), len(doc.Layers), h.Colors())
	fmt.Fprintf(w, "  pixel ratio %d:%d, transparent index %d, flags %#x\n", pw, ph, h.PaletteMask, uint32(h.Flags))
	if h.GridWidth != 0 && h.GridHeight != 0 {
		fmt.Fprintf(w, "  grid %dx%d at %d,%d\n", h.GridWidth, h.GridHeight, h.GridX, h.GridY)
	}
	for _, t := range doc.Tags() {
		fmt.Fprintf(w, "  tag %q: frames %d-%d, %s\n", t.Name, t.From, t.To, t.Direction)
	}
	for _, s := range doc.Slices() {
		fmt.Fprintf(w, "  slice %q: %d keys\n", s.Name, len(s.Keys))
	}
	for _, ts := range doc.Tilesets() {
		fmt.Fprintf(w, "  tileset %d %q: %d tiles of %dx%d\n", ts.ID, ts.Name, ts.NumTiles, ts.TileWidth, ts.TileHeight)
	}
}

func printTree(w io.Writer, doc *ase.Document) {
	ase.Walk(doc.Tree, func(l *ase.Layer, depth int) bool {
		vis := " "
		if !l.Visible() {
			vis = "-"
		}
		fmt.Fprintf(w, "  %s%s%d %s %q", vis, strings.Repeat("  ", depth), l.Index, l.Kind, l.Name)
		if l.BlendMode != ase.BlendNormal {
			fmt.Fprintf(w, " (%s)", l.BlendMode)
		}
		if ud := doc.UserData(l); ud != nil && ud.HasText {
			fmt.Fprintf(w, " %q", ud.Text)
		}
		fmt.Fprintf(w, "\n")
		return true
	})
}

func printChunks(w io.Writer, doc *ase.Document) {
	for _, f := range doc.Frames {
		fmt.Fprintf(w, "  frame %d at %d: %d bytes, %v\n", f.Index, f.Offset, f.Size, f.Length())
		for _, c := range f.Chunks {
			h := c.Header()
			fmt.Fprintf(w, "    0x%04x %-16s at %d, %d bytes%s\n", uint16(h.Type), h.Type, h.Offset, h.Size, chunkDetail(c))
		}
	}
}

func chunkDetail(c ase.Chunk) string {
	switch c := c.(type) {
	case *ase.Layer:
		return fmt.Sprintf(": %s", c)
	case *ase.Cel:
		return fmt.Sprintf(": layer %d at %d,%d, %s", c.LayerIndex, c.X, c.Y, c.Type)
	case *ase.PaletteChunk:
		return fmt.Sprintf(": entries %d-%d of %d", c.First, c.Last, c.Size)
	case *ase.TagsChunk:
		return fmt.Sprintf(": %d tags", len(c.Tags))
	case *ase.ColorProfileChunk:
		return fmt.Sprintf(": %s", c.Type)
	case *ase.UserDataChunk:
		if c.HasText {
			return fmt.Sprintf(": %q", c.Text)
		}
	}
	return ""
}

func printDiagnostics(w io.Writer, doc *ase.Document) {
	for _, d := range doc.Diagnostics {
		fmt.Fprintf(w, "  ! %s\n", d)
	}
}
