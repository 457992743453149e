package ase

import (
	"fmt"
)

// DiagnosticKind classifies something the decoder skipped or worked around
// without failing.
type DiagnosticKind int

const (
	KindUnknownChunk DiagnosticKind = iota + 1
	KindUnsupportedLayer
	KindUnsupportedCel
	KindUnsupportedBitsPerTile
	KindPropertyMap
	KindLayerDepthJump
	KindMisplacedLayer
	KindFrameSize
)

func (k DiagnosticKind) String() string {
	switch k {
	case KindUnknownChunk:
		return "unknown chunk"
	case KindUnsupportedLayer:
		return "unsupported layer type"
	case KindUnsupportedCel:
		return "unsupported cel type"
	case KindUnsupportedBitsPerTile:
		return "unsupported bits per tile"
	case KindPropertyMap:
		return "unsupported property map"
	case KindLayerDepthJump:
		return "layer depth jump"
	case KindMisplacedLayer:
		return "layer outside first frame"
	case KindFrameSize:
		return "frame size mismatch"
	}
	return fmt.Sprintf("diagnostic kind %d unknown", int(k))
}

// Diagnostic records a non-fatal problem found while decoding.
type Diagnostic struct {
	Kind      DiagnosticKind
	Frame     int // -1 when not tied to a frame
	Offset    int // file offset of the offending chunk, or -1
	ChunkType ChunkType
	Message   string
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Frame >= 0 {
		s += fmt.Sprintf(" in frame %d", d.Frame)
	}
	if d.Offset >= 0 {
		s += fmt.Sprintf(" at offset %d", d.Offset)
	}
	if d.Message != "" {
		s += ": " + d.Message
	}
	return s
}
