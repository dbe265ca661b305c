package mathtable

// Model is one style's MATH table content, independent of binary layout.
// It is built fresh per style by Interpolate and discarded after
// encoding.
type Model struct {
	Constants           map[string]Constant
	ItalicCorrection    map[string]int
	TopAccent           map[string]int
	ExtendedShapes      []string
	MinConnectorOverlap int
	Horizontal          DirectionVariants
	Vertical            DirectionVariants
}

// Constant is one interpolated MATH constant. IsMathValue selects the
// value-record encoding (value plus a null device-table pointer) over a
// raw integer.
type Constant struct {
	Value       int
	IsMathValue bool
}

// DirectionVariants holds variant lists and glyph assemblies for one
// stretch direction.
type DirectionVariants struct {
	Variants   map[string][]GlyphVariant
	Assemblies map[string]Assembly
}

// GlyphVariant is one pre-drawn size variant of a stretchable glyph.
type GlyphVariant struct {
	Glyph   string
	Advance int
}

// Assembly describes how to construct an arbitrarily sized glyph from
// reusable parts.
type Assembly struct {
	ItalicsCorrection int
	Parts             []Part
}

// Part is one piece of a glyph assembly, in visual order.
type Part struct {
	Glyph          string
	StartConnector int
	EndConnector   int
	FullAdvance    int
	Extender       bool
}
