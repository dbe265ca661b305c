package glyphs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/math/f64"
)

// --- Fixtures --------------------------------------------------------------

func rect(w, h float64) *Path {
	return &Path{
		Closed: true,
		Nodes: []Node{
			{X: 0, Y: 0, Type: LineNode},
			{X: w, Y: 0, Type: LineNode},
			{X: w, Y: h, Type: LineNode},
			{X: 0, Y: h, Type: LineNode},
		},
	}
}

// testFont builds a two-master fixture with one parametric glyph "part"
// (axis Height over [100, 500]) and a client glyph "user" referencing it.
func testFont(t *testing.T) *Font {
	f := NewFont("Test Math", 1000)
	f.AddMaster(&Master{ID: "m1", Name: "Bold", Weight: 700})
	f.AddMaster(&Master{ID: "m0", Name: "Light", Weight: 300})
	part := &Glyph{
		Name:   "part",
		Export: true,
		Axes:   []Axis{{Name: "Height", Bottom: 100, Top: 500}},
		Layers: []*Layer{
			{ID: "m0", Master: "m0", Paths: []*Path{rect(100, 100)}},
			{ID: "m1", Master: "m1", Paths: []*Path{rect(120, 100)}},
			{Master: "m0", Part: map[string]int{"Height": 1}, Paths: []*Path{rect(100, 100)}},
			{Master: "m0", Part: map[string]int{"Height": 2}, Paths: []*Path{rect(100, 500)}},
			{Master: "m1", Part: map[string]int{"Height": 1}, Paths: []*Path{rect(120, 100)}},
			{Master: "m1", Part: map[string]int{"Height": 2}, Paths: []*Path{rect(120, 500)}},
		},
	}
	user := &Glyph{
		Name:   "user",
		Export: true,
		Layers: []*Layer{
			{ID: "m0", Master: "m0", Components: []*Component{
				{Reference: "part", Transform: IdentityTransform,
					SmartValues: map[string]float64{"Height": 300}},
			}},
			{ID: "m1", Master: "m1", Components: []*Component{
				{Reference: "part", Transform: IdentityTransform,
					SmartValues: map[string]float64{"Height": 300}},
			}},
		},
	}
	for _, g := range []*Glyph{part, user} {
		if err := f.AddGlyph(g); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

// --- Model tests -----------------------------------------------------------

func TestMasterOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	if f.Masters[0].ID != "m0" || f.Masters[1].ID != "m1" {
		t.Errorf("expected masters ordered by weight, got %v, %v",
			f.Masters[0].ID, f.Masters[1].ID)
	}
	if i, ok := f.MasterIndex("m1"); !ok || i != 1 {
		t.Errorf("expected master m1 to have index 1, got %d", i)
	}
}

func TestMasterLayersOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	layers := f.MasterLayers(f.Glyph("part"))
	if len(layers) != 2 {
		t.Fatalf("expected 2 master layers of glyph 'part', got %d", len(layers))
	}
	if layers[0].Master != "m0" || layers[1].Master != "m1" {
		t.Errorf("master layers not in master order: %s, %s",
			layers[0].Master, layers[1].Master)
	}
}

func TestLayerBounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	l := &Layer{Paths: []*Path{rect(100, 500)}}
	xmin, ymin, xmax, ymax, ok := l.Bounds()
	if !ok {
		t.Fatal("expected bounds of a non-empty layer")
	}
	if xmin != 0 || ymin != 0 || xmax != 100 || ymax != 500 {
		t.Errorf("unexpected bounds (%g,%g)-(%g,%g)", xmin, ymin, xmax, ymax)
	}
	if _, _, _, _, ok := (&Layer{}).Bounds(); ok {
		t.Error("empty layer should have no bounds")
	}
}

func TestPathTransform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	p := rect(100, 100)
	p.Transform(f64.Aff3{1, 0, 30, 0, 1, -20})
	if p.Nodes[2].X != 130 || p.Nodes[2].Y != 80 {
		t.Errorf("expected node translated to (130,80), got (%g,%g)",
			p.Nodes[2].X, p.Nodes[2].Y)
	}
}

func TestGlyphIDsSkipNonExport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := NewFont("Test", 1000)
	_ = f.AddGlyph(&Glyph{Name: "a", Export: true})
	_ = f.AddGlyph(&Glyph{Name: "hidden", Export: false})
	_ = f.AddGlyph(&Glyph{Name: "b", Export: true})
	gids := f.GlyphIDs()
	if gids["a"] != 0 || gids["b"] != 1 {
		t.Errorf("unexpected glyph ids: %v", gids)
	}
	if _, ok := gids["hidden"]; ok {
		t.Error("non-exporting glyph must not receive a glyph id")
	}
}
