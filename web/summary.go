package web

import (
	"encoding/json"
	"net/http"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-aseprite/ase"
)

type docSummary struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	ColorDepth  string         `json:"color_depth"`
	Colors      int            `json:"colors"`
	Frames      []frameSummary `json:"frames"`
	Layers      []layerSummary `json:"layers"`
	Tags        []tagSummary   `json:"tags,omitempty"`
	Slices      []string       `json:"slices,omitempty"`
	Tilesets    []tileset      `json:"tilesets,omitempty"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
	BytesRead   int            `json:"bytes_read"`
}

type frameSummary struct {
	Index      int   `json:"index"`
	DurationMS int   `json:"duration_ms"`
	Chunks     int   `json:"chunks"`
	Cels       []int `json:"cels"` // layer indices
}

type layerSummary struct {
	Index     int            `json:"index"`
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Visible   bool           `json:"visible"`
	BlendMode string         `json:"blend_mode"`
	Opacity   int            `json:"opacity"`
	Text      string         `json:"text,omitempty"`
	Children  []layerSummary `json:"children,omitempty"`
}

type tagSummary struct {
	Name      string `json:"name"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Direction string `json:"direction"`
	Repeat    int    `json:"repeat"`
}

type tileset struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	NumTiles uint32 `json:"num_tiles"`
	Embedded bool   `json:"embedded"`
}

func summarize(doc *ase.Document) docSummary {
	s := docSummary{
		Width:      int(doc.Header.Width),
		Height:     int(doc.Header.Height),
		ColorDepth: doc.Header.ColorDepth.String(),
		Colors:     doc.Header.Colors(),
		Layers:     summarizeLayers(doc, doc.Tree),
		BytesRead:  doc.BytesRead,
	}
	for _, f := range doc.Frames {
		fs := frameSummary{Index: f.Index, DurationMS: int(f.Duration), Chunks: len(f.Chunks), Cels: []int{}}
		for _, c := range f.Cels() {
			fs.Cels = append(fs.Cels, int(c.LayerIndex))
		}
		s.Frames = append(s.Frames, fs)
	}
	for _, t := range doc.Tags() {
		s.Tags = append(s.Tags, tagSummary{Name: t.Name, From: int(t.From), To: int(t.To), Direction: t.Direction.String(), Repeat: int(t.Repeat)})
	}
	for _, sl := range doc.Slices() {
		s.Slices = append(s.Slices, sl.Name)
	}
	for _, ts := range doc.Tilesets() {
		s.Tilesets = append(s.Tilesets, tileset{ID: ts.ID, Name: ts.Name, NumTiles: ts.NumTiles, Embedded: ts.Tiles != nil})
	}
	for _, d := range doc.Diagnostics {
		s.Diagnostics = append(s.Diagnostics, d.String())
	}
	return s
}

func summarizeLayers(doc *ase.Document, layers []*ase.Layer) []layerSummary {
	out := []layerSummary{}
	for _, l := range layers {
		ls := layerSummary{
			Index:     l.Index,
			Name:      l.Name,
			Kind:      l.Kind.String(),
			Visible:   l.Visible(),
			BlendMode: l.BlendMode.String(),
			Opacity:   int(l.Opacity),
		}
		if ud := doc.UserData(l); ud != nil && ud.HasText {
			ls.Text = ud.Text
		}
		if len(l.Children) > 0 {
			ls.Children = summarizeLayers(doc, l.Children)
		}
		out = append(out, ls)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		glog.Errorf("web: encoding json: %v", err)
	}
}
