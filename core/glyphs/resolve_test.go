package glyphs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/math/f64"
)

func TestResolveSmartMidpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	comp := &Component{
		Reference:   "part",
		Transform:   IdentityTransform,
		SmartValues: map[string]float64{"Height": 300}, // t = 0.5
	}
	paths, err := f.resolveComponent(comp, "m0")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 resolved path, got %d", len(paths))
	}
	// part 1 is 100 tall, part 2 is 500 tall: midpoint 300
	if got := paths[0].Nodes[2].Y; got != 300 {
		t.Errorf("expected interpolated height 300, got %g", got)
	}
}

func TestResolveSmartNoValueIsPartOne(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	comp := &Component{Reference: "part", Transform: IdentityTransform}
	paths, err := f.resolveComponent(comp, "m0")
	if err != nil {
		t.Fatal(err)
	}
	want := rect(100, 100) // the m0 part-1 drawing
	for i, n := range paths[0].Nodes {
		if n.X != want.Nodes[i].X || n.Y != want.Nodes[i].Y {
			t.Errorf("node %d: expected part-1 position (%g,%g), got (%g,%g)",
				i, want.Nodes[i].X, want.Nodes[i].Y, n.X, n.Y)
		}
	}
}

func TestResolveSmartTwoAxesRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	comp := &Component{
		Reference:   "part",
		Transform:   IdentityTransform,
		SmartValues: map[string]float64{"Height": 300, "Width": 10},
	}
	if _, err := f.resolveComponent(comp, "m0"); err == nil {
		t.Error("expected more than one smart axis value to be rejected")
	}
}

func TestResolveSmartUnknownAxis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	comp := &Component{
		Reference:   "part",
		Transform:   IdentityTransform,
		SmartValues: map[string]float64{"Depth": 1},
	}
	if _, err := f.resolveComponent(comp, "m0"); err == nil {
		t.Error("expected unknown axis name to be rejected")
	}
}

func TestResolveSmartPathCountMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	part := f.Glyph("part")
	// damage the m0 part-2 layer
	l := part.partLayer("m0", "Height", 2)
	l.Paths = append(l.Paths, rect(10, 10))
	comp := &Component{
		Reference:   "part",
		Transform:   IdentityTransform,
		SmartValues: map[string]float64{"Height": 300},
	}
	if _, err := f.resolveComponent(comp, "m0"); err == nil {
		t.Error("expected path-count mismatch between part layers to fail")
	}
}

func TestResolvePlainCopiesAndTransforms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := NewFont("Test", 1000)
	f.AddMaster(&Master{ID: "m0", Weight: 400})
	base := &Glyph{Name: "base", Export: true, Layers: []*Layer{
		{ID: "m0", Master: "m0", Paths: []*Path{rect(100, 100)}},
	}}
	if err := f.AddGlyph(base); err != nil {
		t.Fatal(err)
	}
	comp := &Component{Reference: "base", Transform: f64.Aff3{1, 0, 50, 0, 1, 0}}
	paths, err := f.resolveComponent(comp, "m0")
	if err != nil {
		t.Fatal(err)
	}
	if paths[0].Nodes[0].X != 50 {
		t.Errorf("expected transform applied, first node at x=50, got %g", paths[0].Nodes[0].X)
	}
	if base.Layers[0].Paths[0].Nodes[0].X != 0 {
		t.Error("resolution must not alias the source glyph's nodes")
	}
}

func TestResolvePlainMissingMasterLayer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.glyphs")
	defer teardown()
	//
	f := testFont(t)
	comp := &Component{Reference: "user", Transform: IdentityTransform}
	if _, err := f.resolveComponent(comp, "nosuchmaster"); err == nil {
		t.Error("expected missing master layer to be fatal")
	}
}
