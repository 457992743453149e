// Command asedump prints what is inside Aseprite sprite files: header
// fields, the layer tree, chunks, decoder diagnostics, and optionally a cel
// or tileset drawn on the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-aseprite/ase"
	"badc0de.net/pkg/go-aseprite/celimage"
	"badc0de.net/pkg/go-aseprite/imageprint"
)

var (
	showTree   = flag.Bool("tree", true, "whether to print the layer tree")
	showChunks = flag.Bool("chunks", false, "whether to list every chunk of every frame")
	showDiag   = flag.Bool("diag", true, "whether to print decoder diagnostics")
	celSpec    = flag.String("cel", "", "frame:layer of a cel to print, e.g. 0:2")
	tilesetID  = flag.Int("tileset", -1, "ID of a tileset whose atlas to print")
	strict     = flag.Bool("strict", false, "whether to reject malformed layer trees and layers outside the first frame")
	jobs       = flag.Int("jobs", runtime.NumCPU(), "how many files to decode at once")

	col       = flag.Bool("col", true, "whether to use color; if false, prints ascii art")
	col256    = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm     = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm   = flag.Bool("rasterm", false, "whether to print with rasterm (kitty, iterm or sixel)")
	blanks    = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize  = flag.Bool("downsize", false, "whether to shrink images to fit the terminal")
	quantizer = flag.String("quantizer", "gogif", "quantizer for sixel output: gogif or mediancut")
)

type result struct {
	doc *ase.Document
	err error
}

// decodeAll decodes every file, at most jobs at a time. Failures are
// reported per file.
func decodeAll(paths []string, opts ase.Options, jobs int) []result {
	results := make([]result, len(paths))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			doc, err := decodeFile(path, opts)
			results[i] = result{doc, err}
			return nil
		})
	}
	g.Wait()
	return results
}

func decodeFile(path string, opts ase.Options) (*ase.Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("decoding %s, %d bytes", path, len(buf))
	return ase.DecodeWithOptions(buf, opts)
}

// parseCelSpec parses "frame:layer".
func parseCelSpec(s string) (frame, layer int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("cel %q is not frame:layer", s)
	}
	if frame, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, errors.Wrapf(err, "cel %q frame", s)
	}
	if layer, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, errors.Wrapf(err, "cel %q layer", s)
	}
	return frame, layer, nil
}

func dump(w io.Writer, path string, doc *ase.Document) {
	printSummary(w, path, doc)
	if *showTree {
		printTree(w, doc)
	}
	if *showChunks {
		printChunks(w, doc)
	}
	if *showDiag {
		printDiagnostics(w, doc)
	}

	if *celSpec != "" {
		frame, layer, err := parseCelSpec(*celSpec)
		if err != nil {
			glog.Errorf("%s: %v", path, err)
		} else if cel := doc.Cel(frame, layer); cel == nil {
			glog.Errorf("%s: no cel on layer %d in frame %d", path, layer, frame)
		} else if img, err := celimage.FromCel(doc, cel); err != nil {
			glog.Errorf("%s: %v", path, err)
		} else {
			out(w, img, fmt.Sprintf("cel-%d-%d.png", frame, layer))
		}
	}

	if *tilesetID >= 0 {
		if ts := doc.Tileset(uint32(*tilesetID)); ts == nil {
			glog.Errorf("%s: no tileset %d", path, *tilesetID)
		} else if img, err := celimage.FromTileset(doc, ts); err != nil {
			glog.Errorf("%s: %v", path, err)
		} else {
			out(w, img, fmt.Sprintf("tileset-%d.png", ts.ID))
		}
	}
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if _, err := imageprint.NewQuantizer(*quantizer, 64); err != nil {
		glog.Exit(err)
	}
	if flag.NArg() == 0 {
		glog.Exit("usage: asedump [flags] file.aseprite...")
	}

	failed := false
	results := decodeAll(flag.Args(), ase.Options{Strict: *strict}, *jobs)
	for i, res := range results {
		path := flag.Arg(i)
		if res.err != nil {
			glog.Errorf("%s: %v", path, res.err)
			failed = true
			continue
		}
		dump(os.Stdout, path, res.doc)
	}
	glog.Flush()
	if failed {
		os.Exit(1)
	}
}
