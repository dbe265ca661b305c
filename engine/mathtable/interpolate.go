package mathtable

import (
	"math"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/glyphs"
)

// Interpolate blends the master-indexed raw metrics into one style's
// Model, using the style's interpolation vector: every output value is
// round(Σ weightᵢ · masterValue[indexᵢ]).
//
// Glyphs configured as removed for the style are excluded from the
// glyph-info maps, but not from variants, assemblies or extended
// shapes. That asymmetry is inherited behavior and intentional.
func Interpolate(md *MasterData, style *glyphs.Style) (*Model, error) {
	for _, mw := range style.Blend {
		if mw.Master < 0 || mw.Master >= md.NumMasters {
			return nil, core.Error(core.EINVALID,
				"style %q blends master index %d, font has %d masters",
				style.Name, mw.Master, md.NumMasters)
		}
	}
	m := &Model{
		Constants:        make(map[string]Constant, len(md.Constants)),
		ItalicCorrection: make(map[string]int, len(md.ItalicCorrection)),
		TopAccent:        make(map[string]int, len(md.TopAccent)),
		ExtendedShapes:   md.ExtendedShapes,
	}
	for name, spec := range md.Constants {
		m.Constants[name] = Constant{
			Value:       blend(spec.Values, style.Blend),
			IsMathValue: spec.IsMathValue,
		}
	}
	for name, values := range md.ItalicCorrection {
		if style.RemovesGlyph(name) {
			continue
		}
		m.ItalicCorrection[name] = blend(values, style.Blend)
	}
	for name, values := range md.TopAccent {
		if style.RemovesGlyph(name) {
			continue
		}
		m.TopAccent[name] = blend(values, style.Blend)
	}
	m.MinConnectorOverlap = blend(md.MinConnectorOverlap, style.Blend)
	m.Horizontal = interpolateDirection(md.Horizontal, style)
	m.Vertical = interpolateDirection(md.Vertical, style)
	tracer().Debugf("interpolated MATH model for style %q", style.Name)
	return m, nil
}

func interpolateDirection(mv MasterVariants, style *glyphs.Style) DirectionVariants {
	dv := DirectionVariants{
		Variants:   make(map[string][]GlyphVariant, len(mv.Variants)),
		Assemblies: make(map[string]Assembly, len(mv.Assemblies)),
	}
	for glyph, list := range mv.Variants {
		variants := make([]GlyphVariant, 0, len(list))
		for _, v := range list {
			// The rightmost/bottommost variant must exceed the natural
			// advance; the format expects a one-unit pad.
			variants = append(variants, GlyphVariant{
				Glyph:   v.Glyph,
				Advance: blend(v.Advances, style.Blend) + 1,
			})
		}
		dv.Variants[glyph] = variants
	}
	for glyph, asm := range mv.Assemblies {
		out := Assembly{
			ItalicsCorrection: blend(asm.ItalicsCorrection, style.Blend),
			Parts:             make([]Part, 0, len(asm.Parts)),
		}
		for _, p := range asm.Parts {
			out.Parts = append(out.Parts, Part{
				Glyph:          p.Glyph,
				StartConnector: blend(p.StartConnector, style.Blend),
				EndConnector:   blend(p.EndConnector, style.Blend),
				FullAdvance:    blend(p.FullAdvance, style.Blend),
				Extender:       p.Extender,
			})
		}
		dv.Assemblies[glyph] = out
	}
	return dv
}

// blend computes the weighted sum over a style's interpolation vector,
// rounded to whole design units.
func blend(values []float64, weights []glyphs.MasterWeight) int {
	var sum float64
	for _, mw := range weights {
		sum += values[mw.Master] * mw.Weight
	}
	return int(math.Round(sum))
}
