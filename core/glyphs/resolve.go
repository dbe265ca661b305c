package glyphs

import (
	"github.com/npillmayer/mathfont/core"
)

// resolveComponent expands a component reference into outline paths, in
// the coordinate space of the containing glyph. masterID is the
// associated master of the layer holding the reference.
//
// References to parametric glyphs take the interpolation route, whether
// or not an axis value was supplied; plain references copy the
// referenced glyph's master layer.
func (f *Font) resolveComponent(comp *Component, masterID string) ([]*Path, error) {
	ref := f.Glyph(comp.Reference)
	if ref == nil {
		return nil, core.Error(core.EMISSING, "component references unknown glyph %q", comp.Reference)
	}
	if ref.IsParametric() || len(comp.SmartValues) > 0 {
		return f.resolveSmart(comp, ref, masterID)
	}
	return resolvePlain(comp, ref, masterID)
}

// resolvePlain decomposes a non-parametric reference: the referenced
// glyph's layer for the same master id, copied and transformed.
func resolvePlain(comp *Component, ref *Glyph, masterID string) ([]*Path, error) {
	layer := ref.MasterLayer(masterID)
	if layer == nil {
		return nil, core.Error(core.EMISSING,
			"glyph %q has no layer for master %q", ref.Name, masterID)
	}
	paths := make([]*Path, 0, len(layer.Paths))
	for _, p := range layer.Paths {
		q := p.Clone()
		q.Transform(comp.Transform)
		paths = append(paths, q)
	}
	return paths, nil
}

// resolveSmart expands a parametric reference by interpolating between
// the part-1 and part-2 layers of the referenced glyph.
//
// A reference without an axis value interpolates at t = 0. This mirrors
// long-standing source behavior: such references reproduce the part-1
// drawing rather than being rejected.
func (f *Font) resolveSmart(comp *Component, ref *Glyph, masterID string) ([]*Path, error) {
	if len(comp.SmartValues) > 1 {
		return nil, core.Error(core.EINVALID,
			"glyph %q: only one smart component axis is supported", ref.Name)
	}
	var t float64
	var key string
	for name, value := range comp.SmartValues {
		axis := ref.Axis(name)
		if axis == nil {
			return nil, core.Error(core.EINVALID,
				"glyph %q declares no smart axis %q", ref.Name, name)
		}
		if axis.Top == axis.Bottom {
			return nil, core.Error(core.EINVALID,
				"glyph %q: smart axis %q has empty range", ref.Name, name)
		}
		key = name
		t = Rescale(value, axis.Bottom, axis.Top)
	}
	layer0 := ref.partLayer(masterID, key, 1)
	layer1 := ref.partLayer(masterID, key, 2)
	if layer0 == nil || layer1 == nil {
		return nil, core.Error(core.EMISSING,
			"glyph %q: missing part layers for master %q", ref.Name, masterID)
	}
	if len(layer0.Paths) != len(layer1.Paths) {
		return nil, core.Error(core.EINVALID,
			"glyph %q: part layers for master %q have %d vs %d paths",
			ref.Name, masterID, len(layer0.Paths), len(layer1.Paths))
	}
	tracer().Debugf("smart component %s @ %s: t=%g", ref.Name, masterID, t)
	paths := make([]*Path, 0, len(layer0.Paths))
	for i := range layer0.Paths {
		p, err := interpolatePath(layer0.Paths[i], layer1.Paths[i], t)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID,
				"glyph %q: part layers for master %q do not correspond", ref.Name, masterID)
		}
		p.Transform(comp.Transform)
		paths = append(paths, p)
	}
	return paths, nil
}
