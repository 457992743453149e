package ase

import (
	"fmt"

	"github.com/golang/glog"
)

const (
	// HeaderSize is the size of the file header, in bytes.
	HeaderSize = 128
	// HeaderMagic is the magic number stored in every file header.
	HeaderMagic = 0xA5E0
)

// HeaderFlags is the bitmask found in the file header.
type HeaderFlags uint32

const (
	// FlagLayerOpacity means the opacity stored in layer chunks is valid.
	FlagLayerOpacity HeaderFlags = 1 << iota
	// FlagGroupOpacity means groups carry a valid blend mode and opacity.
	FlagGroupOpacity
	// FlagLayerUUID means every layer chunk ends with a 16-byte UUID.
	FlagLayerUUID
)

// ColorDepth is the number of bits per pixel of the whole sprite.
type ColorDepth uint16

const (
	DepthIndexed   ColorDepth = 8
	DepthGrayscale ColorDepth = 16
	DepthRGBA      ColorDepth = 32
)

func (d ColorDepth) String() string {
	switch d {
	case DepthIndexed:
		return "indexed"
	case DepthGrayscale:
		return "grayscale"
	case DepthRGBA:
		return "rgba"
	}
	return fmt.Sprintf("color depth %d unknown", uint16(d))
}

// BytesPerPixel returns how many bytes a single pixel of this depth uses, or
// 0 for unknown depths.
func (d ColorDepth) BytesPerPixel() int {
	switch d {
	case DepthIndexed:
		return 1
	case DepthGrayscale:
		return 2
	case DepthRGBA:
		return 4
	}
	return 0
}

// Header is the fixed 128-byte record at the start of every file.
type Header struct {
	FileSize    uint32
	Magic       uint16
	Frames      uint16
	Width       uint16
	Height      uint16
	ColorDepth  ColorDepth
	Flags       HeaderFlags
	Speed       uint16 // deprecated; frames carry their own duration
	_           [8]byte
	PaletteMask uint8 // transparent color index, indexed sprites only
	_           [3]byte
	NumColors   uint16
	PixelWidth  uint8
	PixelHeight uint8
	GridX       int16
	GridY       int16
	GridWidth   uint16 // 0 if there is no grid
	GridHeight  uint16
	_           [84]byte
}

// Colors returns the number of palette colors. Old files store 0 for 256.
func (h *Header) Colors() int {
	if h.NumColors == 0 {
		return 256
	}
	return int(h.NumColors)
}

// LayerOpacityValid reports whether layer opacities should be honored.
func (h *Header) LayerOpacityValid() bool {
	return h.Flags&FlagLayerOpacity != 0
}

// LayerUUIDs reports whether every layer chunk carries a UUID.
func (h *Header) LayerUUIDs() bool {
	return h.Flags&FlagLayerUUID != 0
}

// BytesPerPixel returns the size of one pixel of the sprite's color depth.
func (h *Header) BytesPerPixel() int {
	return h.ColorDepth.BytesPerPixel()
}

// PixelRatio returns the pixel aspect ratio. A zero in either component
// means 1:1.
func (h *Header) PixelRatio() (int, int) {
	if h.PixelWidth == 0 || h.PixelHeight == 0 {
		return 1, 1
	}
	return int(h.PixelWidth), int(h.PixelHeight)
}

func decodeHeader(r *reader) (Header, error) {
	var h Header
	if err := r.read(&h); err != nil {
		return Header{}, err
	}
	if h.Magic != HeaderMagic {
		return Header{}, magicError("header", r.base+4, h.Magic, HeaderMagic)
	}
	glog.V(2).Infof("ase header: %dx%d, %s, %d frames, flags %#x", h.Width, h.Height, h.ColorDepth, h.Frames, uint32(h.Flags))
	return h, nil
}
