package mathtable

import (
	"bytes"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/mathfont/core"
)

// Encoding of a Model into the binary MATH structure. All integers are
// big-endian; all offsets are relative to the start of their enclosing
// subtable, as everywhere in OpenType.
//
// The encoder is deterministic: coverage tables (and the parallel value
// arrays indexed through them) are ordered canonically by font glyph
// id, so identical models produce byte-identical output.

// Part flags. The non-extender pattern is the format's historical
// encoding and must be preserved exactly for interoperability.
const (
	partFlagExtender    uint16 = 0x0001
	partFlagNonExtender uint16 = 0xFFFE
)

const mathVersion uint32 = 0x00010000

// Encode serializes one style's Model into a complete MATH table.
// gids maps glyph names to the ids assigned by the font compiler.
func Encode(m *Model, gids map[string]uint16) ([]byte, error) {
	constants := encodeConstants(m)
	glyphInfo, err := encodeGlyphInfo(m, gids)
	if err != nil {
		return nil, err
	}
	variants, err := encodeVariants(m, gids)
	if err != nil {
		return nil, err
	}
	w := &binWriter{}
	w.u32(mathVersion)
	w.u16(uint16(10))
	w.u16(uint16(10 + len(constants)))
	w.u16(uint16(10 + len(constants) + len(glyphInfo)))
	w.bytes(constants)
	w.bytes(glyphInfo)
	w.bytes(variants)
	table := w.Bytes()
	if len(table) > 0xFFFF {
		return nil, core.Error(core.EINVALID,
			"MATH table overflows 16-bit offsets (%d bytes)", len(table))
	}
	tracer().Debugf("encoded MATH table: %d bytes", len(table))
	return table, nil
}

// --- Constants block -------------------------------------------------------

// encodeConstants walks the constant catalog in declared order.
// Constants absent from the model encode as zero.
func encodeConstants(m *Model) []byte {
	w := &binWriter{}
	for _, def := range constantCatalog {
		c, ok := m.Constants[def.name]
		if !ok {
			tracer().Debugf("MATH constant %s not configured, encoding as zero", def.name)
		}
		if def.kind == kindValue {
			w.mathValue(c.Value)
		} else {
			w.u16(uint16(int16(c.Value)))
		}
	}
	return w.Bytes()
}

// --- Glyph-info block ------------------------------------------------------

// encodeGlyphInfo lays out the MathGlyphInfo block: two coverage-indexed
// value sub-tables, an extended-shapes coverage and a null MathKernInfo.
func encodeGlyphInfo(m *Model, gids map[string]uint16) ([]byte, error) {
	italic, err := encodeGlyphInfoSub(m.ItalicCorrection, gids)
	if err != nil {
		return nil, err
	}
	topAccent, err := encodeGlyphInfoSub(m.TopAccent, gids)
	if err != nil {
		return nil, err
	}
	shapeGIDs, err := coverageOrder(m.ExtendedShapes, gids)
	if err != nil {
		return nil, err
	}
	shapes := encodeCoverage(shapeGIDs)

	const header = 8 // four u16 offsets
	w := &binWriter{}
	w.u16(header)
	w.u16(uint16(header + len(italic)))
	w.u16(uint16(header + len(italic) + len(topAccent)))
	w.u16(0) // MathKernInfo: not produced
	w.bytes(italic)
	w.bytes(topAccent)
	w.bytes(shapes)
	return w.Bytes(), nil
}

// encodeGlyphInfoSub serializes one glyph→value map as a coverage offset,
// a count and a parallel array of value records. The i-th record belongs
// to the i-th glyph of the coverage.
func encodeGlyphInfoSub(values map[string]int, gids map[string]uint16) ([]byte, error) {
	entries, err := byCanonicalOrder(values, gids)
	if err != nil {
		return nil, err
	}
	w := &binWriter{}
	w.u16(uint16(4 + 4*len(entries))) // coverage follows the records
	w.u16(uint16(len(entries)))
	covGIDs := make([]uint16, 0, len(entries))
	for _, e := range entries {
		w.mathValue(e.value)
		covGIDs = append(covGIDs, e.gid)
	}
	w.bytes(encodeCoverage(covGIDs))
	return w.Bytes(), nil
}

// --- Variants block --------------------------------------------------------

// construction pairs a glyph's variant list with an optional assembly.
type construction struct {
	variants []GlyphVariant
	assembly *Assembly
}

// encodeVariants lays out the MathVariants block: vertical glyphs first,
// matching the MathVariants field order.
func encodeVariants(m *Model, gids map[string]uint16) ([]byte, error) {
	vertGIDs, vertCons, err := directionConstructions(m.Vertical, gids)
	if err != nil {
		return nil, err
	}
	horizGIDs, horizCons, err := directionConstructions(m.Horizontal, gids)
	if err != nil {
		return nil, err
	}
	header := 10 + 2*len(vertCons) + 2*len(horizCons)

	var body bytes.Buffer
	offsets := make([]uint16, 0, len(vertCons)+len(horizCons))
	for _, c := range append(vertCons, horizCons...) {
		offsets = append(offsets, uint16(header+body.Len()))
		body.Write(c)
	}
	vertCovOff := uint16(header + body.Len())
	vertCov := encodeCoverage(vertGIDs)
	horizCovOff := vertCovOff + uint16(len(vertCov))
	horizCov := encodeCoverage(horizGIDs)

	w := &binWriter{}
	w.u16(uint16(m.MinConnectorOverlap))
	w.u16(vertCovOff)
	w.u16(horizCovOff)
	w.u16(uint16(len(vertCons)))
	w.u16(uint16(len(horizCons)))
	for _, off := range offsets {
		w.u16(off)
	}
	w.bytes(body.Bytes())
	w.bytes(vertCov)
	w.bytes(horizCov)
	return w.Bytes(), nil
}

// directionConstructions builds one direction's glyph→construction map:
// variant lists first, then assemblies create or augment entries. The
// result is ordered by glyph id, construction bytes parallel to the
// coverage glyphs.
func directionConstructions(dv DirectionVariants, gids map[string]uint16) ([]uint16, [][]byte, error) {
	tm := treemap.NewWith(byGlyphID)
	for glyph, variants := range dv.Variants {
		gid, err := glyphID(glyph, gids)
		if err != nil {
			return nil, nil, err
		}
		tm.Put(gid, &construction{variants: variants})
	}
	for glyph, asm := range dv.Assemblies {
		gid, err := glyphID(glyph, gids)
		if err != nil {
			return nil, nil, err
		}
		a := asm
		if v, ok := tm.Get(gid); ok {
			v.(*construction).assembly = &a
		} else {
			tm.Put(gid, &construction{assembly: &a})
		}
	}
	covGIDs := make([]uint16, 0, tm.Size())
	cons := make([][]byte, 0, tm.Size())
	var err error
	tm.Each(func(key interface{}, value interface{}) {
		covGIDs = append(covGIDs, key.(uint16))
		b, e := encodeConstruction(value.(*construction), gids)
		if e != nil && err == nil {
			err = e
		}
		cons = append(cons, b)
	})
	if err != nil {
		return nil, nil, err
	}
	return covGIDs, cons, nil
}

// encodeConstruction serializes one MathGlyphConstruction: assembly
// offset (0 if none), variant count and variant records, with the
// assembly appended after the records.
func encodeConstruction(c *construction, gids map[string]uint16) ([]byte, error) {
	w := &binWriter{}
	asmOffset := 0
	if c.assembly != nil {
		asmOffset = 4 + 4*len(c.variants)
	}
	w.u16(uint16(asmOffset))
	w.u16(uint16(len(c.variants)))
	for _, v := range c.variants {
		gid, err := glyphID(v.Glyph, gids)
		if err != nil {
			return nil, err
		}
		w.u16(gid)
		w.u16(uint16(v.Advance))
	}
	if c.assembly != nil {
		w.mathValue(c.assembly.ItalicsCorrection)
		w.u16(uint16(len(c.assembly.Parts)))
		for _, p := range c.assembly.Parts {
			gid, err := glyphID(p.Glyph, gids)
			if err != nil {
				return nil, err
			}
			w.u16(gid)
			w.u16(uint16(p.StartConnector))
			w.u16(uint16(p.EndConnector))
			w.u16(uint16(p.FullAdvance))
			if p.Extender {
				w.u16(partFlagExtender)
			} else {
				w.u16(partFlagNonExtender)
			}
		}
	}
	return w.Bytes(), nil
}

// --- Coverage tables -------------------------------------------------------

// encodeCoverage writes a format-1 coverage table. gidList must already
// be in ascending glyph-id order.
func encodeCoverage(gidList []uint16) []byte {
	w := &binWriter{}
	w.u16(1) // coverage format 1: glyph id array
	w.u16(uint16(len(gidList)))
	for _, gid := range gidList {
		w.u16(gid)
	}
	return w.Bytes()
}

// coverageOrder maps glyph names to ids and sorts them canonically.
func coverageOrder(names []string, gids map[string]uint16) ([]uint16, error) {
	tm := treemap.NewWith(byGlyphID)
	for _, name := range names {
		gid, err := glyphID(name, gids)
		if err != nil {
			return nil, err
		}
		tm.Put(gid, struct{}{})
	}
	out := make([]uint16, 0, tm.Size())
	tm.Each(func(key interface{}, _ interface{}) {
		out = append(out, key.(uint16))
	})
	return out, nil
}

type glyphEntry struct {
	gid   uint16
	value int
}

// byCanonicalOrder resolves a glyph→value map into entries sorted by
// glyph id, the order governing parallel value arrays.
func byCanonicalOrder(values map[string]int, gids map[string]uint16) ([]glyphEntry, error) {
	tm := treemap.NewWith(byGlyphID)
	for name, v := range values {
		gid, err := glyphID(name, gids)
		if err != nil {
			return nil, err
		}
		tm.Put(gid, v)
	}
	entries := make([]glyphEntry, 0, tm.Size())
	tm.Each(func(key interface{}, value interface{}) {
		entries = append(entries, glyphEntry{gid: key.(uint16), value: value.(int)})
	})
	return entries, nil
}

// byGlyphID is the treemap comparator for canonical coverage order.
func byGlyphID(a, b interface{}) int {
	return int(a.(uint16)) - int(b.(uint16))
}

func glyphID(name string, gids map[string]uint16) (uint16, error) {
	gid, ok := gids[name]
	if !ok {
		return 0, core.Error(core.EMISSING, "no glyph id for glyph %q", name)
	}
	return gid, nil
}

// --- Binary writing --------------------------------------------------------

// binWriter buffers big-endian writes while assembling subtables.
type binWriter struct {
	buf bytes.Buffer
}

func (w *binWriter) u16(v uint16) {
	w.buf.Write([]byte{byte(v >> 8), byte(v)})
}

func (w *binWriter) u32(v uint32) {
	w.buf.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (w *binWriter) bytes(b []byte) {
	w.buf.Write(b)
}

// mathValue writes a MathValueRecord: the value and a null device-table
// offset.
func (w *binWriter) mathValue(v int) {
	w.u16(uint16(int16(v)))
	w.u16(0)
}

func (w *binWriter) Bytes() []byte {
	return w.buf.Bytes()
}
