package celimage

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-aseprite/ase"
)

// renderTilemap draws every tile of tm, taken from the atlas of ts, into a
// new image whose top left corner is at.
func renderTilemap(doc *ase.Document, tm *ase.TilemapCel, ts *ase.TilesetChunk, at image.Point) (image.Image, error) {
	tiles, ok := tm.Tiles()
	if !ok {
		return nil, errors.Errorf("celimage: %d bits per tile not supported", tm.BitsPerTile)
	}
	atlas, err := FromTileset(doc, ts)
	if err != nil {
		return nil, err
	}
	tw, th := int(ts.TileWidth), int(ts.TileHeight)
	cols, rows := int(tm.Width), int(tm.Height)
	if len(tiles) < cols*rows {
		return nil, errors.Wrapf(ErrShortPixels, "%d tiles for a %dx%d tilemap", len(tiles), cols, rows)
	}
	if err := checkSize(int64(cols)*int64(tw), int64(rows)*int64(th)); err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(at.X, at.Y, at.X+cols*tw, at.Y+rows*th))
	for i := range iter.N(cols * rows) {
		id, xflip, yflip, dflip := tm.Split(tiles[i])
		if id == 0 && ts.Flags&ase.TilesetZeroIsEmpty != 0 {
			continue
		}
		if id >= ts.NumTiles {
			glog.V(2).Infof("celimage: tile %d at %d out of tileset %q with %d tiles", id, i, ts.Name, ts.NumTiles)
			continue
		}
		origin := dst.Rect.Min.Add(image.Pt((i%cols)*tw, (i/cols)*th))
		src := image.Pt(0, int(id)*th)
		if !xflip && !yflip && !dflip {
			draw.Draw(dst, image.Rect(origin.X, origin.Y, origin.X+tw, origin.Y+th), atlas, src, draw.Src)
			continue
		}
		if dflip && tw != th {
			dflip = false
		}
		for y := range iter.N(th) {
			for x := range iter.N(tw) {
				sx, sy := x, y
				if dflip {
					sx, sy = sy, sx
				}
				if xflip {
					sx = tw - 1 - sx
				}
				if yflip {
					sy = th - 1 - sy
				}
				dst.Set(origin.X+x, origin.Y+y, color.NRGBAModel.Convert(atlas.At(src.X+sx, src.Y+sy)))
			}
		}
	}
	return dst, nil
}
