package glyphs

import (
	"github.com/npillmayer/mathfont/core"
)

// Decomposition walks the glyph graph bottom-up and replaces every
// component reference with literal outline paths. Parametric glyphs are
// processed first: other glyphs' references need the concrete, already
// flattened outlines of their part layers.
//
// The walk mutates shared glyph data and must run to completion before
// any per-style work starts. It is not parallelizable.

const (
	unvisited = iota
	visiting
	flattened
)

// DecomposeComponents rewrites every layer of every glyph, expanding
// plain and smart component references into paths and removing the
// references. The operation is idempotent: a second run finds no
// components left and changes nothing.
//
// Reference cycles and dangling references are fatal; the font may be
// left partially rewritten and must not be used further.
func (f *Font) DecomposeComponents() error {
	state := make(map[*Glyph]int, len(f.glyphs))
	// Pass 1: parametric glyphs, pass 2: the rest.
	for _, g := range f.glyphs {
		if g.IsParametric() {
			if err := f.decomposeGlyph(g, state); err != nil {
				return err
			}
		}
	}
	for _, g := range f.glyphs {
		if err := f.decomposeGlyph(g, state); err != nil {
			return err
		}
	}
	return nil
}

// decomposeGlyph flattens g after recursively flattening every glyph it
// references. state carries the DFS coloring for cycle detection.
func (f *Font) decomposeGlyph(g *Glyph, state map[*Glyph]int) error {
	switch state[g] {
	case flattened:
		return nil
	case visiting:
		return core.Error(core.EINVALID, "component reference cycle through glyph %q", g.Name)
	}
	state[g] = visiting
	for _, layer := range g.Layers {
		if len(layer.Components) == 0 {
			continue
		}
		for _, comp := range layer.Components {
			ref := f.Glyph(comp.Reference)
			if ref == nil {
				return core.Error(core.EMISSING,
					"glyph %q references unknown glyph %q", g.Name, comp.Reference)
			}
			if err := f.decomposeGlyph(ref, state); err != nil {
				return err
			}
			paths, err := f.resolveComponent(comp, layer.Master)
			if err != nil {
				return core.WrapError(err, core.Code(err),
					"decomposing glyph %q, layer %q", g.Name, layer.ID)
			}
			layer.Paths = append(layer.Paths, paths...)
		}
		tracer().Debugf("glyph %s, layer %s: expanded %d component(s)",
			g.Name, layer.ID, len(layer.Components))
		layer.Components = nil
	}
	state[g] = flattened
	return nil
}
