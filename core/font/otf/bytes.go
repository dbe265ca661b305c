package otf

import "bytes"

// Reading and writing of big-endian binary font data.

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler.
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler.
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binWriter buffers big-endian writes while assembling a font binary.
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

// pad appends zero bytes until the buffer length is a multiple of 4.
// Tables must begin on four-byte boundaries.
func (w *binWriter) pad() {
	for w.buf.Len()%4 != 0 {
		w.buf.WriteByte(0)
	}
}

func (w *binWriter) Len() int {
	return w.buf.Len()
}

func (w *binWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// checksum sums a byte segment as big-endian uint32s, zero-padding a
// trailing partial word.
func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += u32(word[:])
	}
	return sum
}
