package main

import (
	"image"
	"io"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-aseprite/imageprint"
)

func out(w io.Writer, img image.Image, name string) {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Prefer printing out in native size if there's a chance we print out an image rather than pixels.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.NearestNeighbor)
			} else {
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
			}
		} else {
			glog.V(1).Infof("not downsizing: %v", err)
		}
	}

	var err error
	switch {
	case *rasterm:
		q, qerr := imageprint.NewQuantizer(*quantizer, 64)
		if qerr != nil {
			glog.Error(qerr)
			return
		}
		err = imageprint.PrintRasTerm(w, img, q)
	case !*col:
		imageprint.PrintNoColor(w, img, *blanks)
	case *iterm:
		err = imageprint.PrintITerm(w, img, name)
	case *col256:
		imageprint.Print256Color(w, img, *blanks)
	default:
		imageprint.Print24bit(w, img, *blanks)
	}
	if err != nil {
		glog.Errorf("printing %s: %v", name, err)
	}
}
