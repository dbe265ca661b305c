package glyphs

import (
	"sort"

	"github.com/npillmayer/mathfont/core"
	"golang.org/x/image/math/f64"
)

// IdentityTransform is the no-op component placement.
var IdentityTransform = f64.Aff3{1, 0, 0, 0, 1, 0}

// Master is one design-space extreme of a multi-master font. Masters are
// the interpolation basis and immutable once the font is assembled.
type Master struct {
	ID     string  // stable identifier, referenced by layers
	Name   string  // display name, e.g. "Thin"
	Weight float64 // design-space position; masters are ordered by weight
}

// MasterWeight is one entry of a style's interpolation vector.
type MasterWeight struct {
	Master int     // master index (by weight order)
	Weight float64 // blend weight
}

// Style is a named output variant, defined by a sparse weighted blend of
// masters. Read-only after font assembly.
type Style struct {
	Name          string
	Blend         []MasterWeight // interpolation vector
	RemovedGlyphs []string       // glyphs excluded from this style's glyph-info
}

// RemovesGlyph reports whether glyph name is configured to be removed
// from this style.
func (s *Style) RemovesGlyph(name string) bool {
	for _, r := range s.RemovedGlyphs {
		if r == name {
			return true
		}
	}
	return false
}

// NodeType classifies an outline node.
type NodeType uint8

const (
	LineNode NodeType = iota
	CurveNode
	OffCurveNode
	QCurveNode
)

func (t NodeType) String() string {
	switch t {
	case LineNode:
		return "line"
	case CurveNode:
		return "curve"
	case OffCurveNode:
		return "offcurve"
	case QCurveNode:
		return "qcurve"
	}
	return "?"
}

// Node is a single outline point in font design units.
type Node struct {
	X, Y   float64
	Type   NodeType
	Smooth bool
}

// Path is an ordered sequence of nodes, closed or open.
type Path struct {
	Closed bool
	Nodes  []Node
}

// Clone returns a deep copy of a path. Decomposition rewrites component
// lists destructively, so resolved paths must never alias source data.
func (p *Path) Clone() *Path {
	q := &Path{Closed: p.Closed, Nodes: make([]Node, len(p.Nodes))}
	copy(q.Nodes, p.Nodes)
	return q
}

// Transform applies an affine transform to every node position, in place.
// m is in row-major 2x3 layout: x' = m[0]·x + m[1]·y + m[2].
func (p *Path) Transform(m f64.Aff3) {
	for i, n := range p.Nodes {
		p.Nodes[i].X = m[0]*n.X + m[1]*n.Y + m[2]
		p.Nodes[i].Y = m[3]*n.X + m[4]*n.Y + m[5]
	}
}

// Component is a placement of one glyph inside another. If SmartValues is
// non-empty, the reference is parametric and picks a point on the
// referenced glyph's smart axis.
type Component struct {
	Reference   string             // name of the referenced glyph
	Transform   f64.Aff3           // placement matrix
	SmartValues map[string]float64 // axis name → chosen value, nil for plain refs
}

// Axis is a parametric ("smart") axis declared by a glyph. A glyph is
// parametric iff it declares at least one axis.
type Axis struct {
	Name   string
	Bottom float64
	Top    float64
}

// Layer is one glyph drawing. A master layer has ID == Master. A
// parametric layer additionally carries a part selection tagging it as
// the part-1 or part-2 extreme of a smart axis.
type Layer struct {
	ID         string
	Master     string             // associated master id
	Part       map[string]int     // axis name → 1 or 2; nil for master layers
	Paths      []*Path
	Components []*Component
	UserData   map[string]float64 // math metadata authored per layer
}

// IsMasterLayer reports whether l is the primary drawing for its
// associated master.
func (l *Layer) IsMasterLayer() bool {
	return l.ID == l.Master && l.Master != ""
}

// Bounds returns the bounding box of the layer's literal outline paths.
// Component references do not contribute; call after decomposition.
// ok is false for a layer without any nodes.
func (l *Layer) Bounds() (xmin, ymin, xmax, ymax float64, ok bool) {
	for _, p := range l.Paths {
		for _, n := range p.Nodes {
			if !ok {
				xmin, xmax, ymin, ymax = n.X, n.X, n.Y, n.Y
				ok = true
				continue
			}
			if n.X < xmin {
				xmin = n.X
			}
			if n.X > xmax {
				xmax = n.X
			}
			if n.Y < ymin {
				ymin = n.Y
			}
			if n.Y > ymax {
				ymax = n.Y
			}
		}
	}
	return
}

// Glyph is a named glyph with one layer per master, plus any number of
// parametric layers.
type Glyph struct {
	Name   string
	Export bool
	Axes   []Axis // smart axes; non-empty makes the glyph parametric
	Layers []*Layer
}

// IsParametric reports whether the glyph declares at least one smart axis.
func (g *Glyph) IsParametric() bool {
	return len(g.Axes) > 0
}

// MasterLayer returns the glyph's primary layer for the given master id,
// or nil if the glyph has no drawing for that master.
func (g *Glyph) MasterLayer(masterID string) *Layer {
	for _, l := range g.Layers {
		if l.ID == masterID {
			return l
		}
	}
	return nil
}

// partLayer returns the parametric layer tagged (masterID, key=part).
// With key == "", any part selection key matches; this covers smart
// references that supply no axis value and fall back to the layer's sole
// declared part-selector.
func (g *Glyph) partLayer(masterID string, key string, part int) *Layer {
	for _, l := range g.Layers {
		if l.Master != masterID || len(l.Part) == 0 {
			continue
		}
		if key == "" {
			for _, n := range l.Part {
				if n == part {
					return l
				}
			}
			continue
		}
		if l.Part[key] == part {
			return l
		}
	}
	return nil
}

// Axis returns the declared smart axis with the given name, or nil.
func (g *Glyph) Axis(name string) *Axis {
	for i := range g.Axes {
		if g.Axes[i].Name == name {
			return &g.Axes[i]
		}
	}
	return nil
}

// Font is the assembled multi-master glyph source. Glyph order is the
// font's glyph-id order; the external compiler is expected to assign
// glyph ids in the same order.
type Font struct {
	FamilyName string
	UnitsPerEm int
	Masters    []*Master
	Styles     []*Style
	glyphs     []*Glyph
	index      map[string]*Glyph
	masterIdx  map[string]int
}

// NewFont creates an empty font shell.
func NewFont(family string, unitsPerEm int) *Font {
	return &Font{
		FamilyName: family,
		UnitsPerEm: unitsPerEm,
		index:      make(map[string]*Glyph),
		masterIdx:  make(map[string]int),
	}
}

// AddMaster registers a master. Masters are re-sorted by weight, so
// master indices are stable regardless of registration order.
func (f *Font) AddMaster(m *Master) {
	f.Masters = append(f.Masters, m)
	sort.SliceStable(f.Masters, func(i, j int) bool {
		return f.Masters[i].Weight < f.Masters[j].Weight
	})
	for i, master := range f.Masters {
		f.masterIdx[master.ID] = i
	}
}

// AddStyle registers an output style.
func (f *Font) AddStyle(s *Style) {
	f.Styles = append(f.Styles, s)
}

// AddGlyph appends a glyph in glyph-id order. Duplicate names are
// rejected.
func (f *Font) AddGlyph(g *Glyph) error {
	if _, ok := f.index[g.Name]; ok {
		return core.Error(core.EINVALID, "duplicate glyph %q", g.Name)
	}
	f.glyphs = append(f.glyphs, g)
	f.index[g.Name] = g
	return nil
}

// Glyph looks up a glyph by name; nil if absent.
func (f *Font) Glyph(name string) *Glyph {
	return f.index[name]
}

// Glyphs returns the glyph table in glyph-id order.
func (f *Font) Glyphs() []*Glyph {
	return f.glyphs
}

// NumMasters returns the number of registered masters.
func (f *Font) NumMasters() int {
	return len(f.Masters)
}

// MasterIndex returns the weight-ordered index for a master id.
func (f *Font) MasterIndex(id string) (int, bool) {
	i, ok := f.masterIdx[id]
	return i, ok
}

// MasterLayers returns the glyph's master layers ordered by master index.
// Layers for unknown master ids are skipped.
func (f *Font) MasterLayers(g *Glyph) []*Layer {
	var layers []*Layer
	for _, l := range g.Layers {
		if !l.IsMasterLayer() {
			continue
		}
		if _, ok := f.masterIdx[l.Master]; ok {
			layers = append(layers, l)
		}
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return f.masterIdx[layers[i].Master] < f.masterIdx[layers[j].Master]
	})
	return layers
}

// GlyphIDs returns the name → glyph-id mapping implied by glyph order,
// restricted to exporting glyphs. This is the id assignment the external
// font compiler produces for the compiled binaries.
func (f *Font) GlyphIDs() map[string]uint16 {
	gids := make(map[string]uint16, len(f.glyphs))
	var gid uint16
	for _, g := range f.glyphs {
		if !g.Export {
			continue
		}
		gids[g.Name] = gid
		gid++
	}
	return gids
}
