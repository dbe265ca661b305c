package mathtable

import (
	"bytes"
	"testing"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type EncodeTestEnviron struct {
	suite.Suite
	model *Model
	gids  map[string]uint16
	table []byte
}

// listen for 'go test' command --> run test methods
func TestEncodeFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathfont.table")
	defer teardown()
	suite.Run(t, new(EncodeTestEnviron))
}

func (env *EncodeTestEnviron) SetupSuite() {
	env.model = &Model{
		Constants: map[string]Constant{
			"ScriptPercentScaleDown":       {Value: 70},
			"DelimitedSubFormulaMinHeight": {Value: 1400},
			"AxisHeight":                   {Value: 150, IsMathValue: true},
		},
		// gids chosen so that canonical order differs from name order
		ItalicCorrection:    map[string]int{"f": 30},
		TopAccent:           map[string]int{"a": 250, "f": 210},
		ExtendedShapes:      []string{"integral"},
		MinConnectorOverlap: 100,
		Vertical: DirectionVariants{
			Variants: map[string][]GlyphVariant{
				"paren": {{Glyph: "paren.s1", Advance: 901}},
			},
			Assemblies: map[string]Assembly{
				"paren": {
					ItalicsCorrection: 12,
					Parts: []Part{
						{Glyph: "paren.ext", StartConnector: 100, EndConnector: 100,
							FullAdvance: 500, Extender: true},
						{Glyph: "paren.top", StartConnector: 80, EndConnector: 40,
							FullAdvance: 300},
					},
				},
			},
		},
	}
	env.gids = map[string]uint16{
		"a": 2, "f": 1, "integral": 5,
		"paren": 7, "paren.s1": 8, "paren.ext": 9, "paren.top": 10,
	}
	table, err := Encode(env.model, env.gids)
	env.Require().NoError(err)
	env.table = table
}

// --- Test-side binary reading ----------------------------------------------

func (env *EncodeTestEnviron) u16(off int) uint16 {
	env.Require().LessOrEqual(off+2, len(env.table), "offset outside the table")
	return uint16(env.table[off])<<8 | uint16(env.table[off+1])
}

func (env *EncodeTestEnviron) i16(off int) int16 {
	return int16(env.u16(off))
}

func (env *EncodeTestEnviron) constantsOff() int { return int(env.u16(4)) }
func (env *EncodeTestEnviron) glyphInfoOff() int { return int(env.u16(6)) }
func (env *EncodeTestEnviron) variantsOff() int  { return int(env.u16(8)) }

// constantOffset locates a constant's byte offset inside the constants
// block, walking the catalog the same way the encoder does.
func (env *EncodeTestEnviron) constantOffset(name string) int {
	off := 0
	for _, def := range constantCatalog {
		if def.name == name {
			return off
		}
		if def.kind == kindValue {
			off += 4
		} else {
			off += 2
		}
	}
	env.Require().FailNowf("unknown constant", "constant %q not in catalog", name)
	return 0
}

// coverage reads a format-1 coverage table and returns its glyph array.
func (env *EncodeTestEnviron) coverage(off int) []uint16 {
	env.Require().EqualValues(1, env.u16(off), "coverage format must be 1")
	count := int(env.u16(off + 2))
	glyphList := make([]uint16, 0, count)
	for i := 0; i < count; i++ {
		glyphList = append(glyphList, env.u16(off+4+2*i))
	}
	return glyphList
}

// --- Tests -----------------------------------------------------------------

func (env *EncodeTestEnviron) TestHeader() {
	env.EqualValues(0x00010000, uint32(env.u16(0))<<16|uint32(env.u16(2)))
	env.Equal(10, env.constantsOff())
	env.Less(env.constantsOff(), env.glyphInfoOff())
	env.Less(env.glyphInfoOff(), env.variantsOff())
}

func (env *EncodeTestEnviron) TestConstantsBlock() {
	// 2 int16, 2 uint16, 51 value records, 1 int16
	env.Equal(214, env.glyphInfoOff()-env.constantsOff())
	base := env.constantsOff()
	env.EqualValues(70, env.i16(base+env.constantOffset("ScriptPercentScaleDown")))
	env.EqualValues(1400, env.u16(base+env.constantOffset("DelimitedSubFormulaMinHeight")))
	axis := base + env.constantOffset("AxisHeight")
	env.EqualValues(150, env.i16(axis))
	env.EqualValues(0, env.u16(axis+2), "device table offset must be null")
	env.EqualValues(0, env.i16(base+env.constantOffset("FractionRuleThickness")),
		"unset constants encode as zero")
}

func (env *EncodeTestEnviron) TestGlyphInfoBlock() {
	gi := env.glyphInfoOff()
	italicOff := gi + int(env.u16(gi))
	topAccentOff := gi + int(env.u16(gi+2))
	shapesOff := gi + int(env.u16(gi+4))
	env.EqualValues(0, env.u16(gi+6), "no MathKernInfo is produced")

	env.EqualValues(1, env.u16(italicOff+2))
	env.EqualValues(30, env.i16(italicOff+4))
	env.Equal([]uint16{1}, env.coverage(italicOff+int(env.u16(italicOff))))

	// two records, index-aligned with the coverage order: f (gid 1), a (gid 2)
	env.EqualValues(2, env.u16(topAccentOff+2))
	env.EqualValues(210, env.i16(topAccentOff+4))
	env.EqualValues(250, env.i16(topAccentOff+8))
	env.Equal([]uint16{1, 2}, env.coverage(topAccentOff+int(env.u16(topAccentOff))))

	env.Equal([]uint16{5}, env.coverage(shapesOff))
}

func (env *EncodeTestEnviron) TestVariantsBlock() {
	v := env.variantsOff()
	env.EqualValues(100, env.u16(v), "MinConnectorOverlap")
	vertCov := v + int(env.u16(v+2))
	env.EqualValues(1, env.u16(v+6), "one vertical construction")
	env.EqualValues(0, env.u16(v+8), "no horizontal constructions")
	env.Equal([]uint16{7}, env.coverage(vertCov))
	horizCov := v + int(env.u16(v+4))
	env.Empty(env.coverage(horizCov))

	cons := v + int(env.u16(v+10))
	env.EqualValues(1, env.u16(cons+2), "one size variant")
	env.EqualValues(8, env.u16(cons+4), "variant glyph id")
	env.EqualValues(901, env.u16(cons+6), "variant advance")

	asm := cons + int(env.u16(cons))
	env.EqualValues(12, env.i16(asm), "assembly italics correction")
	env.EqualValues(2, env.u16(asm+4), "part count")
	part := func(i int) int { return asm + 6 + 10*i }
	env.EqualValues(9, env.u16(part(0)))
	env.EqualValues(100, env.u16(part(0)+2))
	env.EqualValues(100, env.u16(part(0)+4))
	env.EqualValues(500, env.u16(part(0)+6))
	env.EqualValues(0x0001, env.u16(part(0)+8), "extender flag")
	env.EqualValues(10, env.u16(part(1)))
	env.EqualValues(0xFFFE, env.u16(part(1)+8), "non-extender flag word")
}

func (env *EncodeTestEnviron) TestDeterministicOutput() {
	again, err := Encode(env.model, env.gids)
	env.Require().NoError(err)
	env.True(bytes.Equal(env.table, again), "identical models must encode identically")
}

func (env *EncodeTestEnviron) TestMissingGlyphID() {
	m := &Model{ItalicCorrection: map[string]int{"ghost": 1}}
	_, err := Encode(m, map[string]uint16{})
	env.Require().Error(err)
	env.Equal(core.EMISSING, core.Code(err))
}
