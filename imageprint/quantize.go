package imageprint

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/andybons/gogif"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
)

// Quantizer reduces an image to a paletted one, as needed for sixel output.
type Quantizer interface {
	Paletted(i image.Image) *image.Paletted
}

// GogifQuantizer quantizes with gogif's median cut.
type GogifQuantizer struct {
	NumColor int
}

func (q GogifQuantizer) Paletted(i image.Image) *image.Paletted {
	p := image.NewPaletted(i.Bounds(), nil)
	mc := gogif.MedianCutQuantizer{NumColor: q.NumColor}
	mc.Quantize(p, i.Bounds(), i, i.Bounds().Min)
	return p
}

// MedianCutQuantizer quantizes with go-quantize and dithers the result with
// Floyd-Steinberg error diffusion.
type MedianCutQuantizer struct {
	NumColor int
}

func (q MedianCutQuantizer) Paletted(i image.Image) *image.Paletted {
	mc := quantize.MedianCutQuantizer{}
	pal := mc.Quantize(make(color.Palette, 0, q.NumColor), i)
	p := image.NewPaletted(i.Bounds(), pal)
	draw.FloydSteinberg.Draw(p, i.Bounds(), i, i.Bounds().Min)
	return p
}

// NewQuantizer returns the quantizer with the passed name: "gogif" or
// "mediancut".
func NewQuantizer(name string, numColor int) (Quantizer, error) {
	switch name {
	case "gogif":
		return GogifQuantizer{NumColor: numColor}, nil
	case "mediancut":
		return MedianCutQuantizer{NumColor: numColor}, nil
	}
	return nil, errors.Errorf("imageprint: unknown quantizer %q", name)
}
