// Package web serves decoded sprite files over HTTP: document summaries as
// JSON, single cels and tileset atlases as PNG, and a frame preview page.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-aseprite/ase"
	"badc0de.net/pkg/go-aseprite/celimage"
)

type Handler struct {
	root string
	opts ase.Options
	docs *lru.Cache[string, *ase.Document]
}

// NewHandler constructs a web handler serving the sprite files under root.
// Up to cacheSize decoded documents are kept in memory.
func NewHandler(root string, cacheSize int, opts ase.Options) (*Handler, error) {
	docs, err := lru.New[string, *ase.Document](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "web: creating document cache")
	}
	return &Handler{root: root, opts: opts, docs: docs}, nil
}

// statusError carries the HTTP status a handler should reply with.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func withStatus(code int, err error) error {
	return &statusError{code: code, err: err}
}

func replyError(w http.ResponseWriter, tr trace.Trace, err error) {
	tr.LazyPrintf("%v", err)
	tr.SetError()
	code := http.StatusInternalServerError
	var se *statusError
	if errors.As(err, &se) {
		code = se.code
	}
	if code == http.StatusInternalServerError {
		glog.Errorf("web: %v", err)
	}
	http.Error(w, err.Error(), code)
}

// resolve maps a request path onto a file below the root. Paths are
// cleaned as if rooted, so they cannot climb out of it.
func (h *Handler) resolve(p string) string {
	return filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+p)))
}

// document returns the decoded file at the request path p, decoding it
// unless a cached copy with the same modification time and size exists.
func (h *Handler) document(tr trace.Trace, p string) (*ase.Document, error) {
	fn := h.resolve(p)
	st, err := os.Stat(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, withStatus(http.StatusNotFound, errors.Errorf("%s not found", p))
		}
		return nil, err
	}
	if st.IsDir() {
		return nil, withStatus(http.StatusNotFound, errors.Errorf("%s is a directory", p))
	}

	key := fmt.Sprintf("%s:%d:%d", fn, st.ModTime().UnixNano(), st.Size())
	if doc, ok := h.docs.Get(key); ok {
		tr.LazyPrintf("cache hit for %s", key)
		return doc, nil
	}

	buf, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	doc, err := ase.DecodeWithOptions(buf, h.opts)
	if err != nil {
		return nil, withStatus(http.StatusUnprocessableEntity, errors.Wrapf(err, "decoding %s", p))
	}
	tr.LazyPrintf("decoded %s: %d bytes, %d diagnostics", p, doc.BytesRead, len(doc.Diagnostics))
	h.docs.Add(key, doc)
	return doc, nil
}

func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, withStatus(http.StatusBadRequest, errors.Errorf("%s not a number", name))
	}
	return v, nil
}

func writePNG(w http.ResponseWriter, img image.Image) {
	b := &bytes.Buffer{}
	if err := png.Encode(b, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(b.Bytes())
}

func (h *Handler) docHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("aseweb.doc", r.URL.Path)
	defer tr.Finish()

	doc, err := h.document(tr, mux.Vars(r)["path"])
	if err != nil {
		replyError(w, tr, err)
		return
	}
	writeJSON(w, summarize(doc))
}

func (h *Handler) celHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("aseweb.cel", r.URL.Path)
	defer tr.Finish()

	img, err := h.cel(tr, r)
	if err != nil {
		replyError(w, tr, err)
		return
	}
	writePNG(w, img)
}

func (h *Handler) cel(tr trace.Trace, r *http.Request) (image.Image, error) {
	frame, err := intVar(r, "frame")
	if err != nil {
		return nil, err
	}
	layer, err := intVar(r, "layer")
	if err != nil {
		return nil, err
	}
	doc, err := h.document(tr, mux.Vars(r)["path"])
	if err != nil {
		return nil, err
	}
	cel := doc.Cel(frame, layer)
	if cel == nil {
		return nil, withStatus(http.StatusNotFound, errors.Errorf("no cel on layer %d in frame %d", layer, frame))
	}
	img, err := celimage.FromCel(doc, cel)
	return img, imageError(err)
}

// imageError sets the reply status for a failure to build an image out of
// a decoded file.
func imageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, celimage.ErrNoImage):
		return withStatus(http.StatusNotFound, err)
	}
	return withStatus(http.StatusUnprocessableEntity, err)
}

func (h *Handler) tilesetHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("aseweb.tileset", r.URL.Path)
	defer tr.Finish()

	idx, err := intVar(r, "idx")
	if err != nil {
		replyError(w, tr, err)
		return
	}
	doc, err := h.document(tr, mux.Vars(r)["path"])
	if err != nil {
		replyError(w, tr, err)
		return
	}
	ts := doc.Tileset(uint32(idx))
	if ts == nil {
		replyError(w, tr, withStatus(http.StatusNotFound, errors.Errorf("no tileset %d", idx)))
		return
	}
	img, err := celimage.FromTileset(doc, ts)
	if err = imageError(err); err != nil {
		replyError(w, tr, err)
		return
	}
	writePNG(w, img)
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html><head><title>{{.Path}} frame {{.Frame}}</title></head>
<body style="background: #888">
<h1>{{.Path}} frame {{.Frame}} ({{.Duration}})</h1>
{{range .Cels}}<figure>
<img src="{{.Src}}" style="image-rendering: pixelated; width: {{.Width}}px">
<figcaption>layer {{.Layer}} {{.Name}} at {{.X}},{{.Y}}</figcaption>
</figure>
{{else}}<p>No cels.</p>
{{end}}</body></html>
`))

type previewCel struct {
	Layer int
	Name  string
	X, Y  int
	Width int
	Src   template.URL
}

func (h *Handler) previewHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("aseweb.preview", r.URL.Path)
	defer tr.Finish()

	frame, err := intVar(r, "frame")
	if err != nil {
		replyError(w, tr, err)
		return
	}
	p := mux.Vars(r)["path"]
	doc, err := h.document(tr, p)
	if err != nil {
		replyError(w, tr, err)
		return
	}
	if frame >= len(doc.Frames) {
		replyError(w, tr, withStatus(http.StatusNotFound, errors.Errorf("no frame %d", frame)))
		return
	}

	var cels []previewCel
	for _, l := range doc.Layers {
		cel := doc.Cel(frame, l.Index)
		if cel == nil {
			continue
		}
		img, err := celimage.FromCel(doc, cel)
		if err != nil {
			tr.LazyPrintf("layer %d: %v", l.Index, err)
			continue
		}
		b := &bytes.Buffer{}
		if err := png.Encode(b, img); err != nil {
			replyError(w, tr, err)
			return
		}
		cels = append(cels, previewCel{
			Layer: l.Index,
			Name:  l.Name,
			X:     img.Bounds().Min.X,
			Y:     img.Bounds().Min.Y,
			Width: 4 * img.Bounds().Dx(),
			Src:   template.URL(dataurl.New(b.Bytes(), "image/png").String()),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = previewTemplate.Execute(w, struct {
		Path     string
		Frame    int
		Duration string
		Cels     []previewCel
	}{p, frame, doc.Frames[frame].Length().String(), cels})
	if err != nil {
		glog.Errorf("web: rendering preview: %v", err)
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/doc/{path:.+}", h.docHandler)
	r.HandleFunc("/cel/{frame:[0-9]+}/{layer:[0-9]+}/{path:.+}", h.celHandler)
	r.HandleFunc("/tileset/{idx:[0-9]+}/{path:.+}", h.tilesetHandler)
	r.HandleFunc("/preview/{frame:[0-9]+}/{path:.+}", h.previewHandler)
	r.HandleFunc("/debug/requests", trace.Traces)
}
