// Package celimage turns decoded cels and tileset atlases into images.
//
// Each call converts exactly one cel; layers are never composited.
package celimage

import (
	"image"
	"image/color"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-aseprite/ase"
)

var (
	// ErrNoImage is returned for cels and tilesets without pixel data, such
	// as cels of unsupported types or external tilesets.
	ErrNoImage = errors.New("celimage: no pixel data")
	// ErrShortPixels is returned when a cel holds fewer pixels than its size
	// calls for.
	ErrShortPixels = errors.New("celimage: pixel data shorter than the image")
	// ErrTooLarge is returned for images with more than MaxPixels pixels.
	ErrTooLarge = errors.New("celimage: image too large")
)

// MaxPixels bounds the size of any image built by this package.
const MaxPixels = 1 << 26

func checkSize(w, h int64) error {
	if w*h > MaxPixels {
		return errors.Wrapf(ErrTooLarge, "%dx%d pixels", w, h)
	}
	return nil
}

// FromCel returns the image held by cel, placed on the canvas: the image's
// bounds start at the cel's position. Linked cels are resolved through doc.
//
// RGBA and grayscale sprites yield *image.NRGBA. Indexed sprites yield
// *image.Paletted, with the transparent index made transparent unless the
// cel is on the background layer. Tilemap cels are rendered from their
// tileset into *image.NRGBA.
func FromCel(doc *ase.Document, cel *ase.Cel) (image.Image, error) {
	if link, ok := cel.Payload.(*ase.LinkedCel); ok {
		target := doc.Cel(int(link.Frame), int(cel.LayerIndex))
		if target == nil {
			return nil, errors.Errorf("celimage: cel on layer %d links to frame %d, which has none", cel.LayerIndex, link.Frame)
		}
		cel = target
	}
	at := image.Pt(int(cel.X), int(cel.Y))
	layer := doc.LayerByIndex(int(cel.LayerIndex))

	if tm, ok := cel.Payload.(*ase.TilemapCel); ok {
		if layer == nil || layer.Kind != ase.LayerTilemap {
			return nil, errors.Errorf("celimage: tilemap cel on layer %d, which is not a tilemap layer", cel.LayerIndex)
		}
		ts := doc.Tileset(layer.TilesetIndex)
		if ts == nil {
			return nil, errors.Errorf("celimage: layer %q uses missing tileset %d", layer.Name, layer.TilesetIndex)
		}
		return renderTilemap(doc, tm, ts, at)
	}

	w, h, pix, ok := cel.Image()
	if !ok {
		return nil, errors.Wrapf(ErrNoImage, "cel on layer %d (%s)", cel.LayerIndex, cel.Type)
	}
	opaque := layer != nil && layer.Flags&ase.LayerBackground != 0
	return convert(doc, image.Rect(at.X, at.Y, at.X+w, at.Y+h), pix, opaque)
}

// FromTileset returns the atlas of an embedded tileset: every tile stacked
// vertically, tile 0 at the top.
func FromTileset(doc *ase.Document, ts *ase.TilesetChunk) (image.Image, error) {
	if ts.Tiles == nil {
		return nil, errors.Wrapf(ErrNoImage, "tileset %d %q is not embedded", ts.ID, ts.Name)
	}
	r := image.Rect(0, 0, int(ts.TileWidth), int(ts.TileHeight)*int(ts.NumTiles))
	return convert(doc, r, ts.Tiles, false)
}

// convert wraps pix, laid out in the document's color depth, into an image
// with bounds r. pix is copied.
func convert(doc *ase.Document, r image.Rectangle, pix []byte, opaque bool) (image.Image, error) {
	depth := doc.Header.ColorDepth
	bpp := depth.BytesPerPixel()
	if bpp == 0 {
		return nil, errors.Errorf("celimage: unsupported color depth %d", uint16(depth))
	}
	if err := checkSize(int64(r.Dx()), int64(r.Dy())); err != nil {
		return nil, err
	}
	n := r.Dx() * r.Dy()
	if len(pix) < n*bpp {
		return nil, errors.Wrapf(ErrShortPixels, "%d bytes for %dx%d %s pixels", len(pix), r.Dx(), r.Dy(), depth)
	}

	switch depth {
	case ase.DepthRGBA:
		img := image.NewNRGBA(r)
		copy(img.Pix, pix[:n*4])
		return img, nil

	case ase.DepthGrayscale:
		img := image.NewNRGBA(r)
		for i := range iter.N(n) {
			v, a := pix[2*i], pix[2*i+1]
			img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2], img.Pix[4*i+3] = v, v, v, a
		}
		return img, nil

	default:
		img := image.NewPaletted(r, Palette(doc, opaque))
		copy(img.Pix, pix[:n])
		return img, nil
	}
}

// Palette returns the document palette for use with indexed cels, padded to
// 256 entries so that every pixel value is in range. Unless opaque is set,
// the header's transparent index is made transparent.
func Palette(doc *ase.Document, opaque bool) color.Palette {
	pal := doc.Palette()
	for len(pal) < 256 {
		pal = append(pal, color.RGBA{A: 0xFF})
	}
	if idx := int(doc.Header.PaletteMask); !opaque && idx < len(pal) {
		pal[idx] = color.Transparent
	}
	return pal
}
