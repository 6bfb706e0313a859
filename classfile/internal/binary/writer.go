package binary

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Writer provides buffered big-endian writing for class file encoding.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// U2 writes a big-endian uint16.
func (w *Writer) U2(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// U4 writes a big-endian uint32.
func (w *Writer) U4(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// U8 writes a big-endian uint64.
func (w *Writer) U8(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	w.buf.Write(buf[:])
}

// PatchU4 overwrites four bytes at offset, e.g. a length written before
// the data it measures.
func (w *Writer) PatchU4(offset int, v uint32) {
	binary.BigEndian.PutUint32(w.buf.Bytes()[offset:offset+4], v)
}

// UTF writes a length-prefixed string in the modified UTF-8 encoding of
// class files.
func (w *Writer) UTF(s string) {
	data := EncodeModifiedUTF8(s)
	w.U2(uint16(len(data)))
	w.buf.Write(data)
}

// EncodeModifiedUTF8 encodes s the way class file constant pools store
// strings: NUL takes two bytes and supplementary characters are written as
// surrogate pairs of three bytes each.
func EncodeModifiedUTF8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			out = appendUnit(out, uint16(hi))
			out = appendUnit(out, uint16(lo))
			continue
		}
		out = appendUnit(out, uint16(r))
	}
	return out
}

func appendUnit(out []byte, c uint16) []byte {
	switch {
	case c != 0 && c < 0x80:
		return append(out, byte(c))
	case c < 0x800:
		return append(out, byte(0xc0|c>>6), byte(0x80|c&0x3f))
	}
	return append(out, byte(0xe0|c>>12), byte(0x80|(c>>6)&0x3f), byte(0x80|c&0x3f))
}
