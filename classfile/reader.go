package classfile

import (
	"fmt"
	"math"
	"strings"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/classfile/internal/binary"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// ClassFile is a decoded class file.
type ClassFile struct {
	Version    desc.Version
	Access     desc.Modifiers
	Name       string
	Super      string
	Interfaces []string
	Fields     []Field
	Methods    []Method

	pool []constant
}

// Field is a decoded field.
type Field struct {
	Access     desc.Modifiers
	Name       string
	Descriptor string
}

// Method is a decoded method. Code is nil for methods without a body.
type Method struct {
	Access     desc.Modifiers
	Name       string
	Descriptor string
	Exceptions []string
	Code       []byte
	MaxStack   int
	MaxLocals  int
}

// Method returns the method named name, or nil.
func (cf *ClassFile) Method(name string) *Method {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			return &cf.Methods[i]
		}
	}
	return nil
}

// Parse decodes a class file.
func Parse(data []byte) (*ClassFile, error) {
	r := binary.NewReader(data)
	cf := &ClassFile{}

	magic, err := r.U4()
	if err != nil {
		return nil, classerrors.ParseFailed("header", r.WrapError("magic", err))
	}
	if magic != Magic {
		return nil, classerrors.InvalidData(classerrors.PhaseDecode, fmt.Sprintf("bad magic 0x%08x", magic))
	}
	if cf.Version.Minor, err = r.U2(); err != nil {
		return nil, classerrors.ParseFailed("header", r.WrapError("version", err))
	}
	if cf.Version.Major, err = r.U2(); err != nil {
		return nil, classerrors.ParseFailed("header", r.WrapError("version", err))
	}
	if err := cf.readPool(r); err != nil {
		return nil, classerrors.ParseFailed("constant pool", err)
	}
	if err := cf.readBody(r); err != nil {
		return nil, classerrors.ParseFailed("class body", err)
	}
	if r.Remaining() != 0 {
		return nil, classerrors.InvalidData(classerrors.PhaseDecode, fmt.Sprintf("%d trailing bytes", r.Remaining()))
	}
	return cf, nil
}

func (cf *ClassFile) readPool(r *binary.Reader) error {
	count, err := r.U2()
	if err != nil {
		return r.WrapError("constant pool", err)
	}
	cf.pool = make([]constant, count)
	for i := 1; i < int(count); i++ {
		tag, err := r.ReadByte()
		if err != nil {
			return r.WrapError("constant pool", err)
		}
		c := constant{tag: tag}
		switch tag {
		case TagUtf8:
			c.text, err = r.UTF()
		case TagInteger, TagFloat:
			var v uint32
			v, err = r.U4()
			c.bits = uint64(v)
		case TagLong, TagDouble:
			c.bits, err = r.U8()
		case TagClass, TagString:
			c.ref1, err = r.U2()
		case TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType:
			if c.ref1, err = r.U2(); err == nil {
				c.ref2, err = r.U2()
			}
		default:
			err = fmt.Errorf("unsupported constant tag %d", tag)
		}
		if err != nil {
			return r.WrapError("constant pool", err)
		}
		cf.pool[i] = c
		if c.wide() {
			i++
		}
	}
	return nil
}

func (cf *ClassFile) entry(i uint16, tags ...byte) (constant, error) {
	if i == 0 || int(i) >= len(cf.pool) {
		return constant{}, fmt.Errorf("constant index %d out of range", i)
	}
	c := cf.pool[i]
	for _, t := range tags {
		if c.tag == t {
			return c, nil
		}
	}
	return constant{}, fmt.Errorf("constant %d has tag %d, want %v", i, c.tag, tags)
}

func (cf *ClassFile) utf8(i uint16) (string, error) {
	c, err := cf.entry(i, TagUtf8)
	return c.text, err
}

func (cf *ClassFile) className(i uint16) (string, error) {
	c, err := cf.entry(i, TagClass)
	if err != nil {
		return "", err
	}
	return cf.utf8(c.ref1)
}

// memberRef resolves a field or method reference.
func (cf *ClassFile) memberRef(i uint16) (c constant, owner, name, descriptor string, err error) {
	c, err = cf.entry(i, TagFieldref, TagMethodref, TagInterfaceMethodref)
	if err != nil {
		return
	}
	if owner, err = cf.className(c.ref1); err != nil {
		return
	}
	nt, err := cf.entry(c.ref2, TagNameAndType)
	if err != nil {
		return
	}
	if name, err = cf.utf8(nt.ref1); err != nil {
		return
	}
	descriptor, err = cf.utf8(nt.ref2)
	return
}

// loadable resolves an ldc operand to the value a sink receives.
func (cf *ClassFile) loadable(i uint16) (any, error) {
	c, err := cf.entry(i, TagInteger, TagFloat, TagLong, TagDouble, TagString, TagClass)
	if err != nil {
		return nil, err
	}
	switch c.tag {
	case TagInteger:
		return int32(uint32(c.bits)), nil
	case TagFloat:
		return math.Float32frombits(uint32(c.bits)), nil
	case TagLong:
		return int64(c.bits), nil
	case TagDouble:
		return math.Float64frombits(c.bits), nil
	case TagString:
		return cf.utf8(c.ref1)
	}
	name, err := cf.utf8(c.ref1)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(name, "[") {
		return desc.ParseDescriptor(name)
	}
	return desc.ObjectType(name), nil
}

func (cf *ClassFile) readBody(r *binary.Reader) error {
	access, err := r.U2()
	if err != nil {
		return r.WrapError("access flags", err)
	}
	cf.Access = desc.Modifiers(access)

	this, err := r.U2()
	if err != nil {
		return r.WrapError("this class", err)
	}
	if cf.Name, err = cf.className(this); err != nil {
		return r.WrapError("this class", err)
	}
	super, err := r.U2()
	if err != nil {
		return r.WrapError("super class", err)
	}
	if super != 0 {
		if cf.Super, err = cf.className(super); err != nil {
			return r.WrapError("super class", err)
		}
	}

	n, err := r.U2()
	if err != nil {
		return r.WrapError("interfaces", err)
	}
	for range n {
		i, err := r.U2()
		if err != nil {
			return r.WrapError("interfaces", err)
		}
		name, err := cf.className(i)
		if err != nil {
			return r.WrapError("interfaces", err)
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	if n, err = r.U2(); err != nil {
		return r.WrapError("fields", err)
	}
	for range n {
		f, err := cf.readField(r)
		if err != nil {
			return r.WrapError("fields", err)
		}
		cf.Fields = append(cf.Fields, f)
	}

	if n, err = r.U2(); err != nil {
		return r.WrapError("methods", err)
	}
	for range n {
		m, err := cf.readMethod(r)
		if err != nil {
			return r.WrapError("methods", err)
		}
		cf.Methods = append(cf.Methods, m)
	}

	if err := cf.skipAttributes(r); err != nil {
		return r.WrapError("attributes", err)
	}
	return nil
}

func (cf *ClassFile) readMember(r *binary.Reader) (desc.Modifiers, string, string, error) {
	access, err := r.U2()
	if err != nil {
		return 0, "", "", err
	}
	ni, err := r.U2()
	if err != nil {
		return 0, "", "", err
	}
	di, err := r.U2()
	if err != nil {
		return 0, "", "", err
	}
	name, err := cf.utf8(ni)
	if err != nil {
		return 0, "", "", err
	}
	descriptor, err := cf.utf8(di)
	return desc.Modifiers(access), name, descriptor, err
}

func (cf *ClassFile) readField(r *binary.Reader) (Field, error) {
	access, name, descriptor, err := cf.readMember(r)
	if err != nil {
		return Field{}, err
	}
	if err := cf.skipAttributes(r); err != nil {
		return Field{}, err
	}
	return Field{Access: access, Name: name, Descriptor: descriptor}, nil
}

func (cf *ClassFile) readMethod(r *binary.Reader) (Method, error) {
	access, name, descriptor, err := cf.readMember(r)
	if err != nil {
		return Method{}, err
	}
	m := Method{Access: access, Name: name, Descriptor: descriptor}
	count, err := r.U2()
	if err != nil {
		return Method{}, err
	}
	for range count {
		attr, data, err := cf.readAttribute(r)
		if err != nil {
			return Method{}, err
		}
		switch attr {
		case "Code":
			err = m.readCode(binary.NewReader(data))
		case "Exceptions":
			err = cf.readExceptions(&m, binary.NewReader(data))
		}
		if err != nil {
			return Method{}, fmt.Errorf("%s attribute of %s: %w", attr, name, err)
		}
	}
	return m, nil
}

func (m *Method) readCode(r *binary.Reader) error {
	maxStack, err := r.U2()
	if err != nil {
		return err
	}
	maxLocals, err := r.U2()
	if err != nil {
		return err
	}
	n, err := r.U4()
	if err != nil {
		return err
	}
	if m.Code, err = r.ReadBytes(int(n)); err != nil {
		return err
	}
	m.MaxStack, m.MaxLocals = int(maxStack), int(maxLocals)
	return nil
}

func (cf *ClassFile) readExceptions(m *Method, r *binary.Reader) error {
	n, err := r.U2()
	if err != nil {
		return err
	}
	for range n {
		i, err := r.U2()
		if err != nil {
			return err
		}
		name, err := cf.className(i)
		if err != nil {
			return err
		}
		m.Exceptions = append(m.Exceptions, name)
	}
	return nil
}

func (cf *ClassFile) readAttribute(r *binary.Reader) (string, []byte, error) {
	ni, err := r.U2()
	if err != nil {
		return "", nil, err
	}
	name, err := cf.utf8(ni)
	if err != nil {
		return "", nil, err
	}
	n, err := r.U4()
	if err != nil {
		return "", nil, err
	}
	data, err := r.ReadBytes(int(n))
	return name, data, err
}

func (cf *ClassFile) skipAttributes(r *binary.Reader) error {
	n, err := r.U2()
	if err != nil {
		return err
	}
	for range n {
		if _, _, err := cf.readAttribute(r); err != nil {
			return err
		}
	}
	return nil
}

// Replay visits every field and method of cf on sink, decoding method code
// into instruction calls.
func (cf *ClassFile) Replay(sink bytecode.ClassSink) error {
	for _, f := range cf.Fields {
		sink.VisitField(f.Access, f.Name, f.Descriptor).VisitEnd()
	}
	for i := range cf.Methods {
		m := &cf.Methods[i]
		mv := sink.VisitMethod(m.Access, m.Name, m.Descriptor, m.Exceptions)
		if m.Code != nil {
			mv.VisitCode()
			if err := cf.decode(m.Code, mv); err != nil {
				return classerrors.New(classerrors.PhaseDecode, classerrors.KindInvalidData).
					Type(cf.Name).
					Member(m.Name + m.Descriptor).
					Cause(err).
					Detail("decode code").
					Build()
			}
			mv.VisitMaxs(m.MaxStack, m.MaxLocals)
		}
		mv.VisitEnd()
	}
	return nil
}

func (cf *ClassFile) decode(code []byte, mv bytecode.MethodSink) error {
	r := binary.NewReader(code)
	for r.Remaining() > 0 {
		b, _ := r.ReadByte()
		op := bytecode.Opcode(b)
		var err error
		switch {
		case b == opWide:
			err = decodeWide(r, mv)
		case op == bytecode.OpBipush:
			var v byte
			if v, err = r.ReadByte(); err == nil {
				mv.VisitIntInsn(op, int(int8(v)))
			}
		case op == bytecode.OpSipush:
			var v uint16
			if v, err = r.U2(); err == nil {
				mv.VisitIntInsn(op, int(int16(v)))
			}
		case op == bytecode.OpLdc:
			var i byte
			if i, err = r.ReadByte(); err == nil {
				err = cf.visitLdc(uint16(i), mv)
			}
		case op == bytecode.OpLdcW, op == bytecode.OpLdc2W:
			var i uint16
			if i, err = r.U2(); err == nil {
				err = cf.visitLdc(i, mv)
			}
		case op >= bytecode.OpIload && op <= bytecode.OpAload, op >= bytecode.OpIstore && op <= bytecode.OpAstore:
			var slot byte
			if slot, err = r.ReadByte(); err == nil {
				mv.VisitVarInsn(op, int(slot))
			}
		case op >= bytecode.OpGetstatic && op <= bytecode.OpInvokeinterface:
			err = cf.visitMember(op, r, mv)
		case op == bytecode.OpNew, op == bytecode.OpCheckcast, op == bytecode.OpInstanceof:
			var i uint16
			if i, err = r.U2(); err == nil {
				var name string
				if name, err = cf.className(i); err == nil {
					mv.VisitTypeInsn(op, name)
				}
			}
		case bytecode.StackEffect(op) != nil:
			mv.VisitInsn(op)
		default:
			err = fmt.Errorf("unsupported opcode %s", op)
		}
		if err != nil {
			return r.WrapError("code", err)
		}
	}
	return nil
}

func decodeWide(r *binary.Reader, mv bytecode.MethodSink) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	op := bytecode.Opcode(b)
	if !(op >= bytecode.OpIload && op <= bytecode.OpAload) && !(op >= bytecode.OpIstore && op <= bytecode.OpAstore) {
		return fmt.Errorf("unsupported wide opcode %s", op)
	}
	slot, err := r.U2()
	if err != nil {
		return err
	}
	mv.VisitVarInsn(op, int(slot))
	return nil
}

func (cf *ClassFile) visitLdc(i uint16, mv bytecode.MethodSink) error {
	v, err := cf.loadable(i)
	if err != nil {
		return err
	}
	mv.VisitLdcInsn(v)
	return nil
}

func (cf *ClassFile) visitMember(op bytecode.Opcode, r *binary.Reader, mv bytecode.MethodSink) error {
	i, err := r.U2()
	if err != nil {
		return err
	}
	c, owner, name, descriptor, err := cf.memberRef(i)
	if err != nil {
		return err
	}
	if op <= bytecode.OpPutfield {
		mv.VisitFieldInsn(op, owner, name, descriptor)
		return nil
	}
	if op == bytecode.OpInvokeinterface {
		if _, err := r.ReadBytes(2); err != nil {
			return err
		}
	}
	mv.VisitMethodInsn(op, owner, name, descriptor, c.tag == TagInterfaceMethodref)
	return nil
}
