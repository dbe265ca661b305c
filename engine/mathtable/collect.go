package mathtable

import (
	"math"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/glyphs"
)

// Direction selects one of the two stretch directions of the variants
// block.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Layer user-data keys for per-glyph math metadata.
const (
	udItalicCorrection = "italicCorrection"
	udTopAccent        = "topAccent"
	udStartConnector   = "startConnector"
	udEndConnector     = "endConnector"
)

// MasterData is the raw metric input for style interpolation: every
// value is a list indexed by master. Collected once per build, then
// shared read-only by the per-style workers.
type MasterData struct {
	NumMasters          int
	Constants           map[string]ConstantSpec
	ItalicCorrection    map[string][]float64
	TopAccent           map[string][]float64
	ExtendedShapes      []string
	MinConnectorOverlap []float64
	Horizontal          MasterVariants
	Vertical            MasterVariants
}

// MasterVariants holds one direction's raw variant and assembly data.
type MasterVariants struct {
	Variants   map[string][]MasterVariant
	Assemblies map[string]MasterAssembly
}

// MasterVariant is one size variant with per-master advances.
type MasterVariant struct {
	Glyph    string
	Advances []float64
}

// MasterAssembly is one glyph assembly with per-master part metrics.
type MasterAssembly struct {
	ItalicsCorrection []float64
	Parts             []MasterPart
}

// MasterPart merges a configured part (name, extender flag) with the
// per-master metrics recorded in the glyph source: connector lengths
// from layer user data and the full advance measured from the outline.
type MasterPart struct {
	Glyph          string
	Extender       bool
	StartConnector []float64
	EndConnector   []float64
	FullAdvance    []float64
}

// CollectMasterData validates the configuration and gathers all
// master-indexed metric inputs from the glyph source. The font must be
// decomposed already: advances are measured from outline bounding boxes.
func CollectMasterData(f *glyphs.Font, cfg *Config) (*MasterData, error) {
	n := f.NumMasters()
	if err := cfg.Validate(n); err != nil {
		return nil, err
	}
	md := &MasterData{
		NumMasters:          n,
		Constants:           cfg.Constants,
		ItalicCorrection:    make(map[string][]float64),
		TopAccent:           make(map[string][]float64),
		ExtendedShapes:      cfg.GlyphInfo.ExtendedShapes,
		MinConnectorOverlap: cfg.Variants.MinConnectorOverlap,
	}
	for _, g := range f.Glyphs() {
		if !g.Export {
			continue
		}
		if values := userData(f, g, udItalicCorrection); len(values) > 0 {
			md.ItalicCorrection[g.Name] = fill(values, n, g.Name, udItalicCorrection)
		}
		if values := userData(f, g, udTopAccent); len(values) > 0 {
			md.TopAccent[g.Name] = fill(values, n, g.Name, udTopAccent)
		}
	}
	var err error
	if md.Horizontal, err = collectDirection(f, n,
		cfg.Variants.HorizontalVariants, cfg.Variants.HorizontalComponents, Horizontal); err != nil {
		return nil, err
	}
	if md.Vertical, err = collectDirection(f, n,
		cfg.Variants.VerticalVariants, cfg.Variants.VerticalComponents, Vertical); err != nil {
		return nil, err
	}
	return md, nil
}

func collectDirection(f *glyphs.Font, n int, variants map[string]VariantSpec,
	assemblies map[string]AssemblySpec, dir Direction) (MasterVariants, error) {
	//
	mv := MasterVariants{
		Variants:   make(map[string][]MasterVariant, len(variants)),
		Assemblies: make(map[string]MasterAssembly, len(assemblies)),
	}
	for glyph, spec := range variants {
		list := make([]MasterVariant, 0, len(spec.Suffixes))
		for _, suffix := range spec.Suffixes {
			name := glyph + suffix
			adv, err := advances(f, name, dir)
			if err != nil {
				return mv, err
			}
			list = append(list, MasterVariant{Glyph: name, Advances: adv})
		}
		mv.Variants[glyph] = list
	}
	for glyph, spec := range assemblies {
		asm := MasterAssembly{
			ItalicsCorrection: fill(spec.ItalicsCorrection, n, glyph, "italicsCorrection"),
		}
		for _, partSpec := range spec.Parts {
			part, err := collectPart(f, n, partSpec, dir)
			if err != nil {
				return mv, core.WrapError(err, core.Code(err),
					"%s assembly of glyph %q", dir, glyph)
			}
			asm.Parts = append(asm.Parts, part)
		}
		mv.Assemblies[glyph] = asm
	}
	return mv, nil
}

// collectPart merges the configured part record with the part glyph's
// recorded connector lengths and measured advance, field by field.
func collectPart(f *glyphs.Font, n int, spec PartSpec, dir Direction) (MasterPart, error) {
	part := MasterPart{Glyph: spec.Name, Extender: spec.IsExtender}
	g := f.Glyph(spec.Name)
	if g == nil {
		return part, core.Error(core.EMISSING, "assembly part references unknown glyph %q", spec.Name)
	}
	start := userData(f, g, udStartConnector)
	end := userData(f, g, udEndConnector)
	if len(start) == 0 || len(end) == 0 {
		return part, core.Error(core.EMISSING,
			"glyph %q records no connector lengths", spec.Name)
	}
	part.StartConnector = fill(start, n, spec.Name, udStartConnector)
	part.EndConnector = fill(end, n, spec.Name, udEndConnector)
	adv, err := advances(f, spec.Name, dir)
	if err != nil {
		return part, err
	}
	part.FullAdvance = adv
	return part, nil
}

// userData collects a metadata value from the glyph's master layers, in
// master order. Layers without the key are skipped.
func userData(f *glyphs.Font, g *glyphs.Glyph, key string) []float64 {
	var values []float64
	for _, l := range f.MasterLayers(g) {
		if v, ok := l.UserData[key]; ok {
			values = append(values, v)
		}
	}
	return values
}

// fill pads an incomplete per-master value list by broadcasting the
// first value. This is a tolerated degradation of the source, reported
// to the operator, not an error.
func fill(values []float64, n int, glyph, what string) []float64 {
	if len(values) == n {
		return values
	}
	tracer().Infof("warning: glyph %q has incomplete math metrics (%s: %v)", glyph, what, values)
	filled := make([]float64, n)
	for i := range filled {
		filled[i] = values[0]
	}
	return filled
}

// advances measures a glyph's per-master advance from the flattened
// outline bounding box: width for horizontal, height for vertical
// stretching. Values are rounded and made non-negative.
func advances(f *glyphs.Font, name string, dir Direction) ([]float64, error) {
	g := f.Glyph(name)
	if g == nil {
		return nil, core.Error(core.EMISSING, "variant references unknown glyph %q", name)
	}
	layers := f.MasterLayers(g)
	// Advances cannot be broadcast-filled: one list entry per master is
	// required, so a missing master layer is fatal, not a degradation.
	if len(layers) != f.NumMasters() {
		for _, m := range f.Masters {
			if g.MasterLayer(m.ID) == nil {
				return nil, core.Error(core.EMISSING,
					"glyph %q has no layer for master %q", name, m.ID)
			}
		}
	}
	result := make([]float64, 0, len(layers))
	for _, l := range layers {
		xmin, ymin, xmax, ymax, ok := l.Bounds()
		var size float64
		if ok {
			if dir == Horizontal {
				size = xmax - xmin
			} else {
				size = ymax - ymin
			}
		}
		result = append(result, math.Abs(math.Round(size)))
	}
	return result, nil
}
