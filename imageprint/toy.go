// Package imageprint prints images on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how pixels are drawn as text.
type Mode int

const (
	// TrueColor changes the background with 24-bit escape sequences.
	TrueColor Mode = iota
	// Color256 lets gookit/color pick the escape sequence the terminal
	// supports.
	Color256
	// NoColor prints shading characters only.
	NoColor
)

type dumper interface {
	Printf(s string, arg ...interface{})
}

type writerDumper struct {
	w io.Writer
}

func (d writerDumper) Printf(s string, arg ...interface{}) {
	fmt.Fprintf(d.w, s, arg...)
}

type colorDumper struct {
	w io.Writer
	c color.RGBColor
}

func (d colorDumper) Printf(s string, arg ...interface{}) {
	io.WriteString(d.w, d.c.Sprintf(s, arg...))
}

func shade(w io.Writer, col ic.Color, mode Mode, blanks bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Fprintf(w, "\x1b[0m  ")
		return
	}

	// Shading and escapes use the unpremultiplied color.
	nc := ic.NRGBAModel.Convert(col).(ic.NRGBA)
	var d dumper
	switch mode {
	case NoColor:
		d = writerDumper{w}
	case TrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", nc.R, nc.G, nc.B)
		d = writerDumper{w}
	default:
		d = colorDumper{w, color.RGB(nc.R, nc.G, nc.B, true)}
	}
	if blanks {
		d.Printf("  ")
	} else {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			d.Printf("..")
		case a < 64:
			d.Printf("--")
		case a < 128:
			d.Printf("==")
		default:
			d.Printf("##")
		}
	}
	if mode == TrueColor {
		fmt.Fprintf(w, "\x1b[0m")
	}
}

// Print draws an image as text, two characters per pixel.
func Print(w io.Writer, i image.Image, mode Mode, blanks bool) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			shade(w, i.At(x, y), mode, blanks)
		}
		if mode != NoColor {
			fmt.Fprintf(w, "\x1b[0m")
		}
		fmt.Fprintf(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	Print(w, i, Color256, blanks)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	Print(w, i, TrueColor, blanks)
}

// PrintNoColor draws an image without using color escape sequences. Only makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	Print(w, i, NoColor, blanks)
}

// WriteITerm writes an image using iTerm2's inline image escape sequence,
// whatever the terminal.
//
// https://www.iterm2.com/documentation-images.html
func WriteITerm(w io.Writer, i image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "imageprint: encoding png")
	}
	if err := bEnc.Close(); err != nil {
		return errors.Wrap(err, "imageprint: encoding base64")
	}
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
	return err
}

// PrintITerm draws an image using iTerm2's escape sequences, if the
// terminal looks like it supports them.
func PrintITerm(w io.Writer, i image.Image, fn string) error {
	if !isTermItermWez() {
		return nil
	}
	return WriteITerm(w, i, fn)
}
