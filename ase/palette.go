package ase

import (
	"image/color"
)

// PaletteEntry is one resolved palette color.
type PaletteEntry struct {
	Index   int
	Color   color.RGBA
	Name    string
	HasName bool
}

// OldPalettePacket is a run of colors following Skip untouched entries.
type OldPalettePacket struct {
	Skip   uint8
	Colors []color.RGBA // as stored; see OldPaletteChunk.Entries
}

// OldPaletteChunk is one of the two palette chunks written by old versions
// of the editor. Header.Type tells them apart: ChunkOldPalette stores 8-bit
// channels, ChunkOldPalette64 stores channels in the 0..63 range.
type OldPaletteChunk struct {
	ChunkHeader
	Packets []OldPalettePacket
}

// Entries resolves the packets into indexed colors, scaling 6-bit channels
// to 8 bits.
func (p *OldPaletteChunk) Entries() []PaletteEntry {
	var entries []PaletteEntry
	idx := 0
	for _, pk := range p.Packets {
		idx += int(pk.Skip)
		for _, c := range pk.Colors {
			if p.Type == ChunkOldPalette64 {
				c = color.RGBA{R: scale6(c.R), G: scale6(c.G), B: scale6(c.B), A: 0xFF}
			}
			entries = append(entries, PaletteEntry{Index: idx, Color: c})
			idx++
		}
	}
	return entries
}

func scale6(v uint8) uint8 {
	v &= 0x3F
	return v<<2 | v>>4
}

func decodeOldPalette(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	packets := make([]OldPalettePacket, 0, n)
	for i := 0; i < int(n); i++ {
		var ph struct{ Skip, Count uint8 }
		if err := r.read(&ph); err != nil {
			return nil, err
		}
		count := int(ph.Count)
		if count == 0 {
			count = 256
		}
		rgb, err := r.next(3 * count)
		if err != nil {
			return nil, err
		}
		colors := make([]color.RGBA, count)
		for j := range colors {
			colors[j] = color.RGBA{R: rgb[3*j], G: rgb[3*j+1], B: rgb[3*j+2], A: 0xFF}
		}
		packets = append(packets, OldPalettePacket{Skip: ph.Skip, Colors: colors})
	}
	return &OldPaletteChunk{ChunkHeader: h, Packets: packets}, nil
}

// PaletteChunk sets the colors in the index range [First, Last].
type PaletteChunk struct {
	ChunkHeader
	Size    uint32 // new palette size, in entries
	First   uint32
	Last    uint32
	Entries []PaletteEntry
}

type paletteWire struct {
	Size, First, Last uint32
	_                 [8]byte
}

type paletteEntryWire struct {
	Flags      uint16 // bit 0: has name
	R, G, B, A uint8
}

const paletteEntryWireSize = 6

func decodePalette(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w paletteWire
	if err := r.read(&w); err != nil {
		return nil, err
	}

	var entries []PaletteEntry
	if w.Last >= w.First {
		n := int64(w.Last) - int64(w.First) + 1
		// Preallocate no more than the chunk can hold.
		if fit := int64(r.remaining() / paletteEntryWireSize); n > fit {
			n = fit
		}
		entries = make([]PaletteEntry, 0, n)
		for idx := int64(w.First); idx <= int64(w.Last); idx++ {
			var ew paletteEntryWire
			if err := r.read(&ew); err != nil {
				return nil, err
			}
			e := PaletteEntry{
				Index: int(idx),
				Color: color.RGBA{R: ew.R, G: ew.G, B: ew.B, A: ew.A},
			}
			if ew.Flags&1 != 0 {
				name, err := r.string()
				if err != nil {
					return nil, err
				}
				e.Name, e.HasName = name, true
			}
			entries = append(entries, e)
		}
	}

	return &PaletteChunk{
		ChunkHeader: h,
		Size:        w.Size,
		First:       w.First,
		Last:        w.Last,
		Entries:     entries,
	}, nil
}
