package mathtable

import (
	"github.com/npillmayer/mathfont/core"
)

// The math configuration document describes constants, per-glyph math
// metadata and variant/assembly definitions. Decoding the container
// format (TOML) is the caller's business; this file defines the record
// types and validates a decoded document against the font's master
// count. Validation is strict: a missing required field is a fatal
// error, never a silent zero.

// Config is the decoded math configuration document.
type Config struct {
	Constants map[string]ConstantSpec `toml:"MathConstants"`
	GlyphInfo GlyphInfoSpec           `toml:"MathGlyphInfo"`
	Variants  VariantsSpec            `toml:"MathVariants"`
}

// ConstantSpec carries one constant's per-master values.
type ConstantSpec struct {
	Values      []float64 `toml:"value"`
	IsMathValue bool      `toml:"isMathValue"`
}

// GlyphInfoSpec configures the glyph-info block. Italic corrections and
// top accents are authored per layer in the glyph source, so only the
// extended-shapes set lives here.
type GlyphInfoSpec struct {
	ExtendedShapes []string `toml:"ExtendedShapes"`
}

// VariantsSpec configures both stretch directions.
type VariantsSpec struct {
	MinConnectorOverlap  []float64               `toml:"MinConnectorOverlap"`
	HorizontalVariants   map[string]VariantSpec  `toml:"HorizontalVariants"`
	VerticalVariants     map[string]VariantSpec  `toml:"VerticalVariants"`
	HorizontalComponents map[string]AssemblySpec `toml:"HorizontalComponents"`
	VerticalComponents   map[string]AssemblySpec `toml:"VerticalComponents"`
}

// VariantSpec names the size variants of a glyph by suffix; variant
// glyph names are formed as glyph + suffix.
type VariantSpec struct {
	Suffixes []string `toml:"suffixes"`
}

// AssemblySpec declares the part list for a stretchable glyph.
type AssemblySpec struct {
	ItalicsCorrection []float64  `toml:"italicsCorrection"`
	Parts             []PartSpec `toml:"parts"`
}

// PartSpec names one assembly part. Connector lengths are authored per
// layer in the glyph source and merged in during collection.
type PartSpec struct {
	Name       string `toml:"name"`
	IsExtender bool   `toml:"isExtender"`
}

// Validate checks a decoded configuration against the master count.
func (cfg *Config) Validate(numMasters int) error {
	for name, spec := range cfg.Constants {
		def, ok := constantDefFor(name)
		if !ok {
			return core.Error(core.EINVALID, "unknown MATH constant %q", name)
		}
		if len(spec.Values) != numMasters {
			return core.Error(core.EINVALID,
				"constant %q has %d values for %d masters", name, len(spec.Values), numMasters)
		}
		if spec.IsMathValue != (def.kind == kindValue) {
			return core.Error(core.EINVALID,
				"constant %q: isMathValue flag contradicts the MATH format", name)
		}
	}
	if len(cfg.Variants.MinConnectorOverlap) != numMasters {
		return core.Error(core.EINVALID,
			"MinConnectorOverlap needs one value per master, has %d",
			len(cfg.Variants.MinConnectorOverlap))
	}
	for _, variants := range []map[string]VariantSpec{
		cfg.Variants.HorizontalVariants, cfg.Variants.VerticalVariants,
	} {
		for glyph, spec := range variants {
			if len(spec.Suffixes) == 0 {
				return core.Error(core.EINVALID, "glyph %q has an empty variant suffix list", glyph)
			}
		}
	}
	for _, assemblies := range []map[string]AssemblySpec{
		cfg.Variants.HorizontalComponents, cfg.Variants.VerticalComponents,
	} {
		for glyph, spec := range assemblies {
			if len(spec.Parts) == 0 {
				return core.Error(core.EINVALID, "glyph %q has an empty assembly part list", glyph)
			}
			if len(spec.ItalicsCorrection) == 0 {
				return core.Error(core.EINVALID,
					"glyph %q: assembly lacks italicsCorrection values", glyph)
			}
			for _, part := range spec.Parts {
				if part.Name == "" {
					return core.Error(core.EINVALID, "glyph %q has an assembly part without a name", glyph)
				}
			}
		}
	}
	return nil
}
