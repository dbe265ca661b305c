package main

import (
	"encoding/json"
	"os"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/glyphs"
	"golang.org/x/image/math/f64"
)

// The glyph source arrives as a JSON dump exported from the font editor.
// These records mirror the dump's shape; loadSource converts them into
// the in-memory glyph model.

type sourceDoc struct {
	Family     string      `json:"family"`
	UnitsPerEm int         `json:"unitsPerEm"`
	Masters    []masterDoc `json:"masters"`
	Styles     []styleDoc  `json:"styles"`
	Glyphs     []glyphDoc  `json:"glyphs"`
}

type masterDoc struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type styleDoc struct {
	Name          string             `json:"name"`
	Blend         map[string]float64 `json:"blend"` // master id → weight
	RemovedGlyphs []string           `json:"removedGlyphs"`
}

type glyphDoc struct {
	Name   string     `json:"name"`
	Export bool       `json:"export"`
	Axes   []axisDoc  `json:"axes"`
	Layers []layerDoc `json:"layers"`
}

type axisDoc struct {
	Name   string  `json:"name"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

type layerDoc struct {
	ID         string             `json:"id"`
	Master     string             `json:"master"`
	Part       map[string]int     `json:"part"`
	Paths      []pathDoc          `json:"paths"`
	Components []componentDoc     `json:"components"`
	UserData   map[string]float64 `json:"userData"`
}

type pathDoc struct {
	Closed bool      `json:"closed"`
	Nodes  []nodeDoc `json:"nodes"`
}

type nodeDoc struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Type   string  `json:"type"`
	Smooth bool    `json:"smooth"`
}

type componentDoc struct {
	Reference   string             `json:"ref"`
	Transform   []float64          `json:"transform"` // row-major 2x3; empty = identity
	SmartValues map[string]float64 `json:"smartValues"`
}

// loadSource reads a glyph source dump and builds the font model.
func loadSource(path string) (*glyphs.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read glyph source %q", path)
	}
	var doc sourceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "glyph source %q is not valid JSON", path)
	}
	return buildFont(&doc)
}

func buildFont(doc *sourceDoc) (*glyphs.Font, error) {
	if len(doc.Masters) == 0 {
		return nil, core.Error(core.EINVALID, "glyph source declares no masters")
	}
	f := glyphs.NewFont(doc.Family, doc.UnitsPerEm)
	for _, m := range doc.Masters {
		f.AddMaster(&glyphs.Master{ID: m.ID, Name: m.Name, Weight: m.Weight})
	}
	for _, s := range doc.Styles {
		style := &glyphs.Style{Name: s.Name, RemovedGlyphs: s.RemovedGlyphs}
		for id, weight := range s.Blend {
			idx, ok := f.MasterIndex(id)
			if !ok {
				return nil, core.Error(core.EINVALID,
					"style %q blends unknown master %q", s.Name, id)
			}
			style.Blend = append(style.Blend, glyphs.MasterWeight{Master: idx, Weight: weight})
		}
		f.AddStyle(style)
	}
	for _, g := range doc.Glyphs {
		glyph, err := buildGlyph(&g)
		if err != nil {
			return nil, err
		}
		if err := f.AddGlyph(glyph); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func buildGlyph(doc *glyphDoc) (*glyphs.Glyph, error) {
	g := &glyphs.Glyph{Name: doc.Name, Export: doc.Export}
	for _, a := range doc.Axes {
		g.Axes = append(g.Axes, glyphs.Axis{Name: a.Name, Bottom: a.Bottom, Top: a.Top})
	}
	for _, l := range doc.Layers {
		layer := &glyphs.Layer{
			ID:       l.ID,
			Master:   l.Master,
			Part:     l.Part,
			UserData: l.UserData,
		}
		for _, p := range l.Paths {
			path, err := buildPath(doc.Name, &p)
			if err != nil {
				return nil, err
			}
			layer.Paths = append(layer.Paths, path)
		}
		for _, c := range l.Components {
			comp, err := buildComponent(doc.Name, &c)
			if err != nil {
				return nil, err
			}
			layer.Components = append(layer.Components, comp)
		}
		g.Layers = append(g.Layers, layer)
	}
	return g, nil
}

func buildPath(glyph string, doc *pathDoc) (*glyphs.Path, error) {
	p := &glyphs.Path{Closed: doc.Closed, Nodes: make([]glyphs.Node, 0, len(doc.Nodes))}
	for _, n := range doc.Nodes {
		typ, err := nodeType(n.Type)
		if err != nil {
			return nil, core.WrapError(err, core.Code(err), "glyph %q", glyph)
		}
		p.Nodes = append(p.Nodes, glyphs.Node{X: n.X, Y: n.Y, Type: typ, Smooth: n.Smooth})
	}
	return p, nil
}

func buildComponent(glyph string, doc *componentDoc) (*glyphs.Component, error) {
	comp := &glyphs.Component{
		Reference:   doc.Reference,
		Transform:   glyphs.IdentityTransform,
		SmartValues: doc.SmartValues,
	}
	if len(doc.Transform) > 0 {
		if len(doc.Transform) != 6 {
			return nil, core.Error(core.EINVALID,
				"glyph %q: component transform needs 6 entries, has %d",
				glyph, len(doc.Transform))
		}
		var m f64.Aff3
		copy(m[:], doc.Transform)
		comp.Transform = m
	}
	return comp, nil
}

func nodeType(s string) (glyphs.NodeType, error) {
	switch s {
	case "line":
		return glyphs.LineNode, nil
	case "curve":
		return glyphs.CurveNode, nil
	case "offcurve":
		return glyphs.OffCurveNode, nil
	case "qcurve":
		return glyphs.QCurveNode, nil
	}
	return 0, core.Error(core.EINVALID, "unknown node type %q", s)
}
