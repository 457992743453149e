package ase

import (
	"fmt"

	"github.com/google/uuid"
)

// LayerFlags is the bitmask stored in a layer chunk.
type LayerFlags uint16

const (
	LayerVisible LayerFlags = 1 << iota
	LayerEditable
	LayerLockMovement
	LayerBackground
	LayerPreferLinkedCels
	LayerCollapsed // groups only; shown collapsed in the editor
	LayerReference
)

// LayerKind tells regular layers, groups and tilemap layers apart.
type LayerKind uint16

const (
	LayerNormal LayerKind = iota
	LayerGroup
	LayerTilemap
)

func (k LayerKind) String() string {
	switch k {
	case LayerNormal:
		return "normal"
	case LayerGroup:
		return "group"
	case LayerTilemap:
		return "tilemap"
	}
	return fmt.Sprintf("layer kind %d unknown", uint16(k))
}

// BlendMode is how a layer's pixels are blended onto the layers below.
type BlendMode uint16

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendAddition
	BlendSubtract
	BlendDivide
)

var blendModeNames = [...]string{
	"normal", "multiply", "screen", "overlay", "darken", "lighten",
	"color dodge", "color burn", "hard light", "soft light", "difference",
	"exclusion", "hue", "saturation", "color", "luminosity", "addition",
	"subtract", "divide",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("blend mode %d unknown", uint16(m))
}

// Layer is a decoded layer chunk.
//
// Groups are layers whose Kind is LayerGroup. Only groups have a non-nil
// Children slice; it is filled in from the depth of the layers that follow
// the group in the file.
type Layer struct {
	ChunkHeader
	Flags         LayerFlags
	Kind          LayerKind
	Depth         int    // nesting level; 0 for top level layers
	DefaultWidth  uint16 // ignored by the editor
	DefaultHeight uint16
	BlendMode     BlendMode
	Opacity       uint8 // valid only if the header says so
	Name          string

	// Index is the position of this layer among all layer chunks in the
	// file. Cels refer to layers by this index.
	Index int

	// TilesetIndex is valid only for LayerTilemap layers.
	TilesetIndex uint32

	// UUID is valid only if HasUUID is set.
	UUID    uuid.UUID
	HasUUID bool

	Children []*Layer
}

// IsGroup reports whether the layer can contain other layers.
func (l *Layer) IsGroup() bool {
	return l.Kind == LayerGroup
}

// Visible reports whether the layer is visible in the editor.
func (l *Layer) Visible() bool {
	return l.Flags&LayerVisible != 0
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s layer %d %q", l.Kind, l.Index, l.Name)
}

type layerWire struct {
	Flags         LayerFlags
	Kind          LayerKind
	Depth         uint16
	DefaultWidth  uint16
	DefaultHeight uint16
	BlendMode     BlendMode
	Opacity       uint8
	_             [3]byte
}

// decodeLayer decodes a layer. Groups use the same layout as regular layers
// and only differ in their kind; tilemap layers have a tileset index after
// the name.
func decodeLayer(d *decoder, h ChunkHeader, r *reader) (Chunk, error) {
	var w layerWire
	if err := r.read(&w); err != nil {
		return nil, err
	}
	if w.Kind > LayerTilemap {
		d.note(KindUnsupportedLayer, h, "layer %d has kind %d", d.layerIndex, uint16(w.Kind))
		return nil, nil
	}
	name, err := r.string()
	if err != nil {
		return nil, err
	}

	var tileset uint32
	if w.Kind == LayerTilemap {
		if tileset, err = r.u32(); err != nil {
			return nil, err
		}
	}

	var id uuid.UUID
	hasUUID := d.header.LayerUUIDs()
	if hasUUID {
		b, err := r.next(len(id))
		if err != nil {
			return nil, err
		}
		if id, err = uuid.FromBytes(b); err != nil {
			return nil, err
		}
	}

	var children []*Layer
	if w.Kind == LayerGroup {
		children = []*Layer{}
	}

	return &Layer{
		ChunkHeader:   h,
		Flags:         w.Flags,
		Kind:          w.Kind,
		Depth:         int(w.Depth),
		DefaultWidth:  w.DefaultWidth,
		DefaultHeight: w.DefaultHeight,
		BlendMode:     w.BlendMode,
		Opacity:       w.Opacity,
		Name:          name,
		Index:         d.layerIndex,
		TilesetIndex:  tileset,
		UUID:          id,
		HasUUID:       hasUUID,
		Children:      children,
	}, nil
}
