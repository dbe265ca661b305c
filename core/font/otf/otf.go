/*
Package otf reads and rewrites the table directory of an OpenType font
binary. It is a deliberately narrow container service: clients get raw
table data by tag, may replace or insert a table, and re-serialize the
font with a consistent directory (records sorted by tag, four-byte table
alignment, per-table checksums and a recomputed head checksum
adjustment).

Interpreting table contents is out of scope here; sister packages build
table payloads and hand them over as opaque byte segments.
*/
package otf

import (
	"sort"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mathfont.otf'.
func tracer() tracing.Trace {
	return tracing.Select("mathfont.otf")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "OpenType font format: %s", x)
}

// checkSumAdjustmentMagic is subtracted from the whole-font checksum to
// produce head.checkSumAdjustment.
const checkSumAdjustmentMagic = 0xB1B0AFBA

// Font is a parsed font binary, held as a scaler type plus a set of raw
// tables keyed by tag.
type Font struct {
	ScalerType uint32
	tables     map[Tag][]byte
}

// New creates an empty font shell for the given scaler type, ready to
// receive tables.
func New(scalerType uint32) *Font {
	return &Font{ScalerType: scalerType, tables: make(map[Tag][]byte)}
}

// Parse reads the offset table and table records of an OpenType font.
// Table data is copied out of the input slice; the input is not retained.
func Parse(data []byte) (*Font, error) {
	// The offset table is 12 bytes, each table record 16 bytes.
	if len(data) < 12 {
		return nil, errFontFormat("too short for an offset table")
	}
	scaler := u32(data)
	if !(scaler == 0x4f54544f || // OTTO
		scaler == 0x00010000 || // TrueType
		scaler == 0x74727565) { // true
		return nil, errFontFormat("font type not supported")
	}
	n := int(u16(data[4:]))
	if len(data) < 12+16*n {
		return nil, errFontFormat("table record entries")
	}
	f := &Font{ScalerType: scaler, tables: make(map[Tag][]byte, n)}
	for i, prevTag := 0, Tag(0); i < n; i++ {
		rec := data[12+16*i:]
		tag := MakeTag(rec)
		if tag < prevTag {
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := u32(rec[8:12]), u32(rec[12:16])
		if uint64(off)+uint64(size) > uint64(len(data)) {
			return nil, errFontFormat("table bounds")
		}
		table := make([]byte, size)
		copy(table, data[off:off+size])
		f.tables[tag] = table
	}
	tracer().Debugf("parsed font binary with %d tables", n)
	return f, nil
}

// NumTables returns the number of tables in the directory.
func (f *Font) NumTables() int {
	return len(f.tables)
}

// Table returns the raw data of the table with the given tag, or nil if
// the font has no such table.
func (f *Font) Table(tag Tag) []byte {
	return f.tables[tag]
}

// SetTable replaces the table under tag, or inserts it if the directory
// has no such entry yet.
func (f *Font) SetTable(tag Tag, data []byte) {
	if _, ok := f.tables[tag]; ok {
		tracer().Infof("replacing font table %s (%d bytes)", tag, len(data))
	} else {
		tracer().Infof("inserting font table %s (%d bytes)", tag, len(data))
	}
	f.tables[tag] = data
}

// Bytes re-serializes the font. Table records are sorted by tag, tables
// aligned to 4 bytes, checksums recomputed, and head.checkSumAdjustment
// set per the OpenType specification.
func (f *Font) Bytes() ([]byte, error) {
	n := len(f.tables)
	if n == 0 {
		return nil, errFontFormat("font without tables")
	}
	tags := make([]Tag, 0, n)
	for tag := range f.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	// Zero the adjustment before any checksum is taken.
	if head := f.tables[T("head")]; head != nil {
		if len(head) < 12 {
			return nil, errFontFormat("head table too short")
		}
		head[8], head[9], head[10], head[11] = 0, 0, 0, 0
	}

	w := &binWriter{}
	w.u32(f.ScalerType)
	w.u16(uint16(n))
	sr, es, rs := searchParams(n)
	w.u16(sr)
	w.u16(es)
	w.u16(rs)

	offset := uint32(12 + 16*n)
	for _, tag := range tags {
		table := f.tables[tag]
		w.u32(uint32(tag))
		w.u32(checksum(table))
		w.u32(offset)
		w.u32(uint32(len(table)))
		offset += uint32(len(table))
		offset = (offset + 3) &^ 3
	}
	for _, tag := range tags {
		w.bytes(f.tables[tag])
		w.pad()
	}

	out := w.Bytes()
	if head := f.tables[T("head")]; head != nil {
		adjustment := checkSumAdjustmentMagic - checksum(out)
		// locate head in the output: records are sorted, so find its offset
		for i, tag := range tags {
			if tag == T("head") {
				headOff := u32(out[12+16*i+8:])
				out[headOff+8] = byte(adjustment >> 24)
				out[headOff+9] = byte(adjustment >> 16)
				out[headOff+10] = byte(adjustment >> 8)
				out[headOff+11] = byte(adjustment)
				break
			}
		}
	}
	return out, nil
}

// searchParams computes searchRange, entrySelector and rangeShift for a
// table directory with n entries.
func searchParams(n int) (uint16, uint16, uint16) {
	sr, es := uint16(16), uint16(0)
	for sr*2 <= uint16(n)*16 {
		sr *= 2
		es++
	}
	return sr, es, uint16(n)*16 - sr
}
