package otf

// Tag is defined by the OpenType spec as an array of four uint8s
// (length = 32 bits), used to identify a table, design-variation axis,
// script, language system, feature, or baseline.
type Tag uint32

// MakeTag creates a tag from (up to) 4 bytes.
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a tag for a 4-letter name, padding with blanks if necessary.
// Tag names are case-sensitive, following the OpenType specification.
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}
