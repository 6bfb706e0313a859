package classfile

import (
	"math"

	"github.com/wippyai/classgen/classfile/internal/binary"
	classerrors "github.com/wippyai/classgen/errors"
)

// Constant pool tags
const (
	TagUtf8               byte = 1
	TagInteger            byte = 3
	TagFloat              byte = 4
	TagLong               byte = 5
	TagDouble             byte = 6
	TagClass              byte = 7
	TagString             byte = 8
	TagFieldref           byte = 9
	TagMethodref          byte = 10
	TagInterfaceMethodref byte = 11
	TagNameAndType        byte = 12
)

const maxPoolSize = 0xffff

// constant is a pool entry. Strings hold UTF-8 text, refs hold indexes of
// other entries and bits holds numeric constants.
type constant struct {
	tag  byte
	text string
	ref1 uint16
	ref2 uint16
	bits uint64
}

// wide reports whether the entry takes two pool slots.
func (c constant) wide() bool {
	return c.tag == TagLong || c.tag == TagDouble
}

// constantPool interns entries; equal entries share one index.
type constantPool struct {
	entries []constant
	index   map[constant]uint16
	next    uint16
	err     error
}

func newConstantPool() *constantPool {
	return &constantPool{index: make(map[constant]uint16), next: 1}
}

func (p *constantPool) add(c constant) uint16 {
	if i, ok := p.index[c]; ok {
		return i
	}
	slots := 1
	if c.wide() {
		slots = 2
	}
	if int(p.next)+slots > maxPoolSize {
		if p.err == nil {
			p.err = classerrors.Overflow(classerrors.PhaseEncode, "constant pool size", int(p.next)+slots, maxPoolSize)
		}
		return 0
	}
	i := p.next
	p.next += uint16(slots)
	p.entries = append(p.entries, c)
	p.index[c] = i
	return i
}

func (p *constantPool) utf8(s string) uint16 {
	if n := len(binary.EncodeModifiedUTF8(s)); n > 0xffff && p.err == nil {
		p.err = classerrors.Overflow(classerrors.PhaseEncode, "string constant length", n, 0xffff)
	}
	return p.add(constant{tag: TagUtf8, text: s})
}

func (p *constantPool) class(internalName string) uint16 {
	return p.add(constant{tag: TagClass, ref1: p.utf8(internalName)})
}

func (p *constantPool) string(s string) uint16 {
	return p.add(constant{tag: TagString, ref1: p.utf8(s)})
}

func (p *constantPool) integer(v int32) uint16 {
	return p.add(constant{tag: TagInteger, bits: uint64(uint32(v))})
}

func (p *constantPool) float(v float32) uint16 {
	return p.add(constant{tag: TagFloat, bits: uint64(math.Float32bits(v))})
}

func (p *constantPool) long(v int64) uint16 {
	return p.add(constant{tag: TagLong, bits: uint64(v)})
}

func (p *constantPool) double(v float64) uint16 {
	return p.add(constant{tag: TagDouble, bits: math.Float64bits(v)})
}

func (p *constantPool) nameAndType(name, descriptor string) uint16 {
	return p.add(constant{tag: TagNameAndType, ref1: p.utf8(name), ref2: p.utf8(descriptor)})
}

func (p *constantPool) member(tag byte, owner, name, descriptor string) uint16 {
	return p.add(constant{tag: tag, ref1: p.class(owner), ref2: p.nameAndType(name, descriptor)})
}

// count is the constant_pool_count of the class file.
func (p *constantPool) count() uint16 {
	return p.next
}

func (p *constantPool) encode(w *binary.Writer) {
	w.U2(p.count())
	for _, c := range p.entries {
		w.Byte(c.tag)
		switch c.tag {
		case TagUtf8:
			w.UTF(c.text)
		case TagInteger, TagFloat:
			w.U4(uint32(c.bits))
		case TagLong, TagDouble:
			w.U8(c.bits)
		case TagClass, TagString:
			w.U2(c.ref1)
		default:
			w.U2(c.ref1)
			w.U2(c.ref2)
		}
	}
}
