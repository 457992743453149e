//go:build go1.13 && !windows
// +build go1.13,!windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/pkg/errors"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image using the RasTerm library: kitty graphics,
// iTerm2 inline images, or sixels quantized with q, whichever the terminal
// supports first.
func PrintRasTerm(w io.Writer, i image.Image, q Quantizer) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		capable, cerr := rasterm.IsSixelCapable()
		if cerr != nil || !capable {
			return errors.New("imageprint: terminal supports no raster graphics")
		}
		err = rasterm.Settings{}.SixelWriteImage(w, q.Paletted(i))
	}
	if err != nil {
		return errors.Wrap(err, "imageprint: rasterm")
	}
	fmt.Fprintf(w, "\n")
	return nil
}
