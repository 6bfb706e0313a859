package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriterIntegers(t *testing.T) {
	w := NewWriter()
	w.Byte(0xca)
	w.U2(0xfeba)
	w.U4(0xbe000000)
	w.U8(0x0102030405060708)

	want := []byte{0xca, 0xfe, 0xba, 0xbe, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len = %d, want %d", w.Len(), len(want))
	}
}

func TestWriterPatchU4(t *testing.T) {
	w := NewWriter()
	w.U2(1)
	at := w.Len()
	w.U4(0)
	w.WriteBytes([]byte{9, 9, 9})
	w.PatchU4(at, 3)
	want := []byte{0, 1, 0, 0, 0, 3, 9, 9, 9}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("got % x, want % x", w.Bytes(), want)
	}
}

func TestReaderIntegers(t *testing.T) {
	r := NewReader([]byte{0xca, 0xfe, 0xba, 0xbe, 0, 0, 0, 0, 0, 0, 0, 0x2a, 0x01})

	u4, err := r.U4()
	if err != nil || u4 != 0xcafebabe {
		t.Fatalf("U4 = %x, %v", u4, err)
	}
	u8, err := r.U8()
	if err != nil || u8 != 0x2a {
		t.Fatalf("U8 = %x, %v", u8, err)
	}
	if r.Position() != 12 || r.Remaining() != 1 {
		t.Errorf("position %d remaining %d", r.Position(), r.Remaining())
	}
	if _, err := r.U2(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("short U2 error = %v", err)
	}
	if _, err := r.ReadByte(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"ascii", "Foo", []byte("Foo")},
		{"empty", "", []byte{}},
		{"nul", "a\x00b", []byte{'a', 0xc0, 0x80, 'b'}},
		{"two byte", "é", []byte{0xc3, 0xa9}},
		{"three byte", "€", []byte{0xe2, 0x82, 0xac}},
		{"supplementary", "\U0001F600", []byte{0xed, 0xa0, 0xbd, 0xed, 0xb8, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeModifiedUTF8(tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encode = % x, want % x", got, tt.want)
			}
			back, err := DecodeModifiedUTF8(got)
			if err != nil {
				t.Fatal(err)
			}
			if back != tt.in {
				t.Errorf("decode = %q, want %q", back, tt.in)
			}
		})
	}
}

func TestModifiedUTF8Malformed(t *testing.T) {
	for _, data := range [][]byte{{0x00}, {0xc3}, {0xe2, 0x82}, {0xff}, {0xc3, 0x41}} {
		if _, err := DecodeModifiedUTF8(data); !errors.Is(err, ErrMalformedUTF8) {
			t.Errorf("Decode(% x) error = %v", data, err)
		}
	}
}

func TestUTFRoundTrip(t *testing.T) {
	w := NewWriter()
	w.UTF("cachedValue$0")
	w.UTF("<clinit>")
	r := NewReader(w.Bytes())
	for _, want := range []string{"cachedValue$0", "<clinit>"} {
		got, err := r.UTF()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("UTF = %q, want %q", got, want)
		}
	}
}

func TestParseError(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_, _ = r.ReadBytes(2)
	err := r.WrapError("constant pool", io.ErrUnexpectedEOF)
	if err.Error() != "classfile: constant pool at position 2: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("ParseError does not unwrap")
	}
}
