package ase

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrFormat is matched (via errors.Is) by every error caused by bytes
	// that are not a valid sprite file, such as a bad magic number.
	ErrFormat = errors.New("ase: invalid format")

	// ErrBounds is matched by every error caused by a read past the end of
	// the buffer, or past the end of the chunk being decoded.
	ErrBounds = errors.New("ase: read out of bounds")

	// ErrLayerTree is returned in strict mode when the layer depths do not
	// describe a well-formed tree. It also matches ErrFormat.
	ErrLayerTree = fmt.Errorf("%w: malformed layer tree", ErrFormat)
)

// FormatError describes bytes which cannot be part of a valid file.
type FormatError struct {
	Offset int // absolute file offset, or -1 if not tied to one place
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return "ase: " + e.Msg
	}
	return fmt.Sprintf("ase: %s at offset %d", e.Msg, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

func magicError(what string, offset int, got, want uint16) error {
	return &FormatError{
		Offset: offset,
		Msg:    fmt.Sprintf("bad %s magic number: got 0x%04x, want 0x%04x", what, got, want),
	}
}

// BoundsError reports a read that would have gone past the end of the
// region being decoded.
type BoundsError struct {
	Offset int // absolute offset where the read started
	Want   int // bytes requested
	End    int // absolute offset where the region ends
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("ase: reading %d bytes at offset %d overruns region ending at %d", e.Want, e.Offset, e.End)
}

func (e *BoundsError) Unwrap() error {
	return ErrBounds
}
