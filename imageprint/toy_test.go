package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badc0de.net/pkg/go-aseprite/ttesting"
)

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{255, 255, 255, 255})
	img.Set(1, 0, color.NRGBA{0, 0, 0, 255})
	return img
}

func TestPrintNoColor(t *testing.T) {
	b := &bytes.Buffer{}
	PrintNoColor(b, testImage(), false)
	ttesting.AssertEqualString(t, "output", b.String(), "##..\x1b[0m  \n")
}

func TestPrint24bit(t *testing.T) {
	b := &bytes.Buffer{}
	Print24bit(b, testImage(), true)
	want := "\x1b[48;2;255;255;255m  \x1b[0m" +
		"\x1b[48;2;0;0;0m  \x1b[0m" +
		"\x1b[0m  " +
		"\x1b[0m\n"
	ttesting.AssertEqualString(t, "output", b.String(), want)
}

func TestPrintRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 5, 4, 9))
	b := &bytes.Buffer{}
	Print256Color(b, img, true)
	ttesting.AssertEqualInt(t, "lines", strings.Count(b.String(), "\n"), 4)
}

func TestWriteITerm(t *testing.T) {
	b := &bytes.Buffer{}
	if err := WriteITerm(b, testImage(), "cel.png"); err != nil {
		t.Fatal(err)
	}
	ttesting.AssertTrue(t, "escape", strings.HasPrefix(b.String(), "\n\033]1337;File=name=Y2VsLnBuZw==;inline=1;"))
	ttesting.AssertTrue(t, "size", strings.Contains(b.String(), "width=3px;height=1px:"))
	ttesting.AssertTrue(t, "terminator", strings.HasSuffix(b.String(), "\a\n"))
}

func TestQuantizers(t *testing.T) {
	for _, name := range []string{"gogif", "mediancut"} {
		q, err := NewQuantizer(name, 16)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		p := q.Paletted(testImage())
		if p.Bounds() != testImage().Bounds() {
			t.Errorf("%s: got bounds %v", name, p.Bounds())
		}
		if len(p.Palette) > 16 {
			t.Errorf("%s: got %d palette entries", name, len(p.Palette))
		}
	}
	if _, err := NewQuantizer("octree", 16); err == nil {
		t.Errorf("unknown quantizer accepted")
	}
}
