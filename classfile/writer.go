package classfile

import (
	"fmt"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/classfile/internal/binary"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// Magic is the first word of every class file.
const Magic uint32 = 0xcafebabe

const (
	opWide      byte = 0xc4
	maxCodeSize      = 0xffff
)

// Writer is a bytecode.ClassSink that encodes the visited members into a
// class file. Members are written in visit order; Bytes produces the file.
type Writer struct {
	name       desc.Type
	super      desc.Type
	version    desc.Version
	access     desc.Modifiers
	interfaces []desc.Type
	pool       *constantPool
	fields     []fieldInfo
	methods    []*methodWriter
}

type fieldInfo struct {
	access     desc.Modifiers
	name       string
	descriptor string
}

var _ bytecode.ClassSink = (*Writer)(nil)

// NewWriter creates a writer for a public class name extending super.
func NewWriter(name, super desc.Type, version desc.Version) *Writer {
	return &Writer{
		name:    name,
		super:   super,
		version: version,
		access:  desc.AccPublic | desc.AccSuper,
		pool:    newConstantPool(),
	}
}

// SetAccess replaces the class access flags.
func (w *Writer) SetAccess(access desc.Modifiers) {
	w.access = access
}

// AddInterface adds an implemented interface.
func (w *Writer) AddInterface(t desc.Type) {
	w.interfaces = append(w.interfaces, t)
}

// VisitField implements bytecode.ClassSink.
func (w *Writer) VisitField(mods desc.Modifiers, name, descriptor string) bytecode.FieldSink {
	w.fields = append(w.fields, fieldInfo{access: mods, name: name, descriptor: descriptor})
	return fieldEnd{}
}

// VisitMethod implements bytecode.ClassSink.
func (w *Writer) VisitMethod(mods desc.Modifiers, name, descriptor string, exceptions []string) bytecode.MethodSink {
	m := &methodWriter{
		pool:       w.pool,
		access:     mods,
		name:       name,
		descriptor: descriptor,
		exceptions: exceptions,
		code:       binary.NewWriter(),
	}
	w.methods = append(w.methods, m)
	return m
}

type fieldEnd struct{}

func (fieldEnd) VisitEnd() {}

// Bytes encodes the class file.
func (w *Writer) Bytes() ([]byte, error) {
	for _, m := range w.methods {
		if m.err != nil {
			return nil, classerrors.New(classerrors.PhaseEncode, classerrors.KindOf(m.err)).
				Type(w.name.InternalName()).
				Member(m.name + m.descriptor).
				Cause(m.err).
				Detail("encode method").
				Build()
		}
	}

	// The body interns its constants first so the pool can precede it.
	body := binary.NewWriter()
	body.U2(uint16(w.access))
	body.U2(w.pool.class(w.name.InternalName()))
	if w.super.IsZero() {
		body.U2(0)
	} else {
		body.U2(w.pool.class(w.super.InternalName()))
	}
	body.U2(uint16(len(w.interfaces)))
	for _, i := range w.interfaces {
		body.U2(w.pool.class(i.InternalName()))
	}

	body.U2(uint16(len(w.fields)))
	for _, f := range w.fields {
		body.U2(uint16(f.access))
		body.U2(w.pool.utf8(f.name))
		body.U2(w.pool.utf8(f.descriptor))
		body.U2(0)
	}

	body.U2(uint16(len(w.methods)))
	for _, m := range w.methods {
		if err := m.encode(body); err != nil {
			return nil, classerrors.New(classerrors.PhaseEncode, classerrors.KindOf(err)).
				Type(w.name.InternalName()).
				Member(m.name + m.descriptor).
				Cause(err).
				Build()
		}
	}
	body.U2(0) // class attributes

	if w.pool.err != nil {
		return nil, w.pool.err
	}

	out := binary.NewWriter()
	out.U4(Magic)
	out.U2(w.version.Minor)
	out.U2(w.version.Major)
	w.pool.encode(out)
	out.WriteBytes(body.Bytes())
	return out.Bytes(), nil
}

// methodWriter encodes one method's instructions as they are visited.
type methodWriter struct {
	pool       *constantPool
	access     desc.Modifiers
	name       string
	descriptor string
	exceptions []string
	code       *binary.Writer
	hasCode    bool
	maxStack   int
	maxLocals  int
	err        error
}

func (m *methodWriter) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

func (m *methodWriter) VisitCode() { m.hasCode = true }

func (m *methodWriter) VisitInsn(op bytecode.Opcode) {
	m.code.Byte(byte(op))
}

func (m *methodWriter) VisitIntInsn(op bytecode.Opcode, operand int) {
	m.code.Byte(byte(op))
	switch op {
	case bytecode.OpBipush:
		m.code.Byte(byte(int8(operand)))
	case bytecode.OpSipush:
		m.code.U2(uint16(int16(operand)))
	default:
		m.fail(classerrors.Unsupported(classerrors.PhaseEncode, fmt.Sprintf("int instruction %s", op)))
	}
}

func (m *methodWriter) VisitVarInsn(op bytecode.Opcode, slot int) {
	switch {
	case slot < 0 || slot > 0xffff:
		m.fail(classerrors.Overflow(classerrors.PhaseEncode, "local variable slot", slot, 0xffff))
	case slot > 0xff:
		m.code.Byte(opWide)
		m.code.Byte(byte(op))
		m.code.U2(uint16(slot))
	default:
		m.code.Byte(byte(op))
		m.code.Byte(byte(slot))
	}
}

func (m *methodWriter) VisitTypeInsn(op bytecode.Opcode, internalName string) {
	m.code.Byte(byte(op))
	m.code.U2(m.pool.class(internalName))
}

func (m *methodWriter) VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string) {
	m.code.Byte(byte(op))
	m.code.U2(m.pool.member(TagFieldref, owner, name, descriptor))
}

func (m *methodWriter) VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, isInterface bool) {
	tag := TagMethodref
	if isInterface {
		tag = TagInterfaceMethodref
	}
	m.code.Byte(byte(op))
	m.code.U2(m.pool.member(tag, owner, name, descriptor))
	if op == bytecode.OpInvokeinterface {
		params, _, err := methodSlots(descriptor)
		if err != nil {
			m.fail(err)
			return
		}
		m.code.Byte(byte(params + 1))
		m.code.Byte(0)
	}
}

func (m *methodWriter) VisitLdcInsn(value any) {
	var index uint16
	wide := false
	switch v := value.(type) {
	case int32:
		index = m.pool.integer(v)
	case int:
		index = m.pool.integer(int32(v))
	case float32:
		index = m.pool.float(v)
	case int64:
		index, wide = m.pool.long(v), true
	case float64:
		index, wide = m.pool.double(v), true
	case string:
		index = m.pool.string(v)
	case desc.Type:
		index = m.pool.class(v.InternalName())
	default:
		m.fail(classerrors.Unsupported(classerrors.PhaseEncode, fmt.Sprintf("constant of type %T", value)))
		return
	}
	switch {
	case wide:
		m.code.Byte(byte(bytecode.OpLdc2W))
		m.code.U2(index)
	case index > 0xff:
		m.code.Byte(byte(bytecode.OpLdcW))
		m.code.U2(index)
	default:
		m.code.Byte(byte(bytecode.OpLdc))
		m.code.Byte(byte(index))
	}
}

func (m *methodWriter) VisitMaxs(maxStack, maxLocals int) {
	m.maxStack = maxStack
	m.maxLocals = maxLocals
}

func (m *methodWriter) VisitEnd() {}

func (m *methodWriter) encode(w *binary.Writer) error {
	w.U2(uint16(m.access))
	w.U2(m.pool.utf8(m.name))
	w.U2(m.pool.utf8(m.descriptor))

	attrs := 0
	if m.hasCode {
		attrs++
	}
	if len(m.exceptions) > 0 {
		attrs++
	}
	w.U2(uint16(attrs))

	if m.hasCode {
		code := m.code.Bytes()
		if len(code) > maxCodeSize {
			return classerrors.Overflow(classerrors.PhaseEncode, "code size", len(code), maxCodeSize)
		}
		if m.maxStack > 0xffff || m.maxLocals > 0xffff {
			return classerrors.Overflow(classerrors.PhaseEncode, "frame size", max(m.maxStack, m.maxLocals), 0xffff)
		}
		w.U2(m.pool.utf8("Code"))
		w.U4(uint32(2 + 2 + 4 + len(code) + 2 + 2))
		w.U2(uint16(m.maxStack))
		w.U2(uint16(m.maxLocals))
		w.U4(uint32(len(code)))
		w.WriteBytes(code)
		w.U2(0) // exception table
		w.U2(0) // attributes
	}
	if len(m.exceptions) > 0 {
		w.U2(m.pool.utf8("Exceptions"))
		w.U4(uint32(2 + 2*len(m.exceptions)))
		w.U2(uint16(len(m.exceptions)))
		for _, e := range m.exceptions {
			w.U2(m.pool.class(e))
		}
	}
	return nil
}

func methodSlots(descriptor string) (params, ret int, err error) {
	ps, r, err := desc.ParseMethodDescriptor(descriptor)
	if err != nil {
		return 0, 0, classerrors.Wrap(classerrors.PhaseEncode, classerrors.KindInvalidInput, err, "method descriptor")
	}
	for _, p := range ps {
		params += p.StackSize().Size()
	}
	return params, r.StackSize().Size(), nil
}
