package ase

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Options configures a decode.
type Options struct {
	// Strict turns two tolerated irregularities into format errors: a layer
	// whose depth skips past the currently open group, and a layer chunk in
	// any frame but the first.
	Strict bool
}

// Decode decodes a complete sprite file held in buf.
//
// The returned document does not share memory with buf. Decode has no
// global state and may be called concurrently.
func Decode(buf []byte) (*Document, error) {
	return DecodeWithOptions(buf, Options{})
}

// DecodeWithOptions is like Decode, with the passed options.
func DecodeWithOptions(buf []byte, opts Options) (*Document, error) {
	d := &decoder{
		buf:      buf,
		opts:     opts,
		userData: make(map[Chunk]*UserDataChunk),
	}
	return d.decode()
}

// Read reads r to the end and decodes what it read.
func Read(r io.Reader) (*Document, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ase: reading sprite")
	}
	return Decode(buf)
}

// decoder holds the state of a single decode. It is never shared.
type decoder struct {
	buf  []byte
	opts Options

	header     Header
	frame      int // index of the frame being decoded
	layerIndex int // index the next layer chunk will get

	diagnostics []Diagnostic
	userData    map[Chunk]*UserDataChunk
}

// note records a diagnostic for the chunk described by h.
func (d *decoder) note(kind DiagnosticKind, h ChunkHeader, format string, args ...interface{}) {
	diag := Diagnostic{
		Kind:      kind,
		Frame:     d.frame,
		Offset:    h.Offset,
		ChunkType: h.Type,
		Message:   fmt.Sprintf(format, args...),
	}
	glog.V(1).Infof("ase: %s", diag)
	d.diagnostics = append(d.diagnostics, diag)
}

func (d *decoder) decode() (*Document, error) {
	r := newReader(d.buf, 0)
	header, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	d.header = header

	frames := make([]*Frame, 0, header.Frames)
	pos := HeaderSize
	for i := 0; i < int(header.Frames); i++ {
		d.frame = i
		f, err := d.decodeFrame(pos)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}
		frames = append(frames, f)
		pos += int(f.Size)
	}

	layers, err := d.collectLayers(frames)
	if err != nil {
		return nil, err
	}
	tree, err := d.buildTree(layers)
	if err != nil {
		return nil, err
	}

	return &Document{
		Header:      header,
		Frames:      frames,
		Layers:      layers,
		Tree:        tree,
		Diagnostics: d.diagnostics,
		BytesRead:   pos,
		userData:    d.userData,
	}, nil
}

// decodeFrame decodes the frame whose header starts at file offset start.
func (d *decoder) decodeFrame(start int) (*Frame, error) {
	r := newReader(d.buf, 0)
	if err := r.skip(start); err != nil {
		return nil, err
	}

	var fh FrameHeader
	if err := newReader(r.buf[r.pos:], start).read(&fh); err != nil {
		return nil, err
	}
	if fh.Magic != FrameMagic {
		return nil, magicError("frame", start+4, fh.Magic, FrameMagic)
	}
	if fh.Size < FrameHeaderSize {
		return nil, &FormatError{Offset: start, Msg: fmt.Sprintf("frame size %d smaller than its header", fh.Size)}
	}

	// The frame's declared size bounds every chunk inside it.
	fr, err := r.sub(int(fh.Size))
	if err != nil {
		return nil, err
	}
	fr.skip(FrameHeaderSize)

	// Every chunk takes at least its preamble.
	prealloc := fh.NumChunks()
	if fit := fr.remaining() / chunkHeaderSize; prealloc > fit {
		prealloc = fit
	}
	f := &Frame{
		FrameHeader: fh,
		Index:       d.frame,
		Offset:      start,
		Chunks:      make([]Chunk, 0, prealloc),
	}
	glog.V(2).Infof("ase: frame %d at offset %d, %d bytes, %d chunks", d.frame, start, fh.Size, fh.NumChunks())

	var prev Chunk
	for i := 0; i < fh.NumChunks(); i++ {
		c, err := d.decodeChunk(fr)
		if err != nil {
			return nil, errors.Wrapf(err, "chunk %d", i)
		}
		if ud, ok := c.(*UserDataChunk); ok && prev != nil {
			d.userData[prev] = ud
		}
		prev = c
		if c != nil {
			f.Chunks = append(f.Chunks, c)
		}
	}

	if fr.remaining() != 0 {
		d.note(KindFrameSize, ChunkHeader{Offset: start}, "%d bytes after the last chunk", fr.remaining())
	}
	return f, nil
}

// decodeChunk decodes the chunk at the cursor, and always leaves the cursor
// just past the chunk's declared size, whatever its codec consumed.
//
// It returns a nil chunk for chunks that were skipped.
func (d *decoder) decodeChunk(fr *reader) (Chunk, error) {
	at := fr.offset()
	pre, err := fr.peek(chunkHeaderSize)
	if err != nil {
		return nil, err
	}
	h := ChunkHeader{
		Size:   binary.LittleEndian.Uint32(pre[0:4]),
		Type:   ChunkType(binary.LittleEndian.Uint16(pre[4:6])),
		Offset: at,
	}
	if h.Size < chunkHeaderSize {
		return nil, &FormatError{Offset: at, Msg: fmt.Sprintf("chunk size %d smaller than its preamble", h.Size)}
	}
	cr, err := fr.sub(int(h.Size))
	if err != nil {
		return nil, err
	}
	cr.skip(chunkHeaderSize)

	dec, ok := codecs[h.Type]
	if !ok {
		d.note(KindUnknownChunk, h, "skipped %d bytes of chunk type 0x%04x", h.Size, uint16(h.Type))
		return nil, nil
	}
	glog.V(3).Infof("ase: %s chunk at offset %d, %d bytes", h.Type, at, h.Size)

	c, err := dec(d, h, cr)
	if h.Type == ChunkLayer {
		d.layerIndex++
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s chunk at offset %d", h.Type, at)
	}
	return c, nil
}

// collectLayers returns the layers of the first frame. Layers are expected
// to be declared only there.
func (d *decoder) collectLayers(frames []*Frame) ([]*Layer, error) {
	var layers []*Layer
	for _, f := range frames {
		for _, c := range f.Chunks {
			l, ok := c.(*Layer)
			if !ok {
				continue
			}
			if f.Index == 0 {
				layers = append(layers, l)
				continue
			}
			if d.opts.Strict {
				return nil, &FormatError{Offset: l.Offset, Msg: fmt.Sprintf("layer %q declared in frame %d", l.Name, f.Index)}
			}
			d.frame = f.Index
			d.note(KindMisplacedLayer, l.ChunkHeader, "layer %q left out of the layer tree", l.Name)
		}
	}
	return layers, nil
}

func (d *decoder) buildTree(layers []*Layer) ([]*Layer, error) {
	roots, jumps := buildLayerTree(layers)
	for _, j := range jumps {
		if d.opts.Strict {
			return nil, errors.Wrapf(ErrLayerTree, "layer %q at depth %d with %d open groups", j.layer.Name, j.layer.Depth, j.open)
		}
		d.frame = 0
		d.note(KindLayerDepthJump, j.layer.ChunkHeader, "layer %q at depth %d attached at depth %d", j.layer.Name, j.layer.Depth, j.open)
	}
	return roots, nil
}
