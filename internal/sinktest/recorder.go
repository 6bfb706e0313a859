// Package sinktest provides a recording code sink for tests.
package sinktest

import (
	"fmt"
	"strings"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
)

// Insn is one recorded instruction call.
type Insn struct {
	Value      any
	Owner      string
	Name       string
	Descriptor string
	Operand    int
	Op         bytecode.Opcode
	HasOperand bool
	Interface  bool
}

// String renders the instruction in a compact assembler-like form.
func (i Insn) String() string {
	switch {
	case i.Owner != "":
		return fmt.Sprintf("%s %s.%s %s", i.Op, i.Owner, i.Name, i.Descriptor)
	case i.Name != "":
		return fmt.Sprintf("%s %s", i.Op, i.Name)
	case i.Value != nil:
		return fmt.Sprintf("%s %v", i.Op, i.Value)
	case i.HasOperand:
		return fmt.Sprintf("%s %d", i.Op, i.Operand)
	}
	return i.Op.String()
}

// Method is a recorded method member.
type Method struct {
	Name       string
	Descriptor string
	Exceptions []string
	Insns      []Insn
	Modifiers  desc.Modifiers
	MaxStack   int
	MaxLocals  int
	Code       bool
	Maxs       bool
	Ended      bool
}

// Listing returns the recorded instructions as strings.
func (m *Method) Listing() []string {
	out := make([]string, len(m.Insns))
	for i, insn := range m.Insns {
		out[i] = insn.String()
	}
	return out
}

// Count returns how many recorded instructions use op.
func (m *Method) Count(op bytecode.Opcode) int {
	n := 0
	for _, insn := range m.Insns {
		if insn.Op == op {
			n++
		}
	}
	return n
}

// Field is a recorded field member.
type Field struct {
	Name       string
	Descriptor string
	Modifiers  desc.Modifiers
	Ended      bool
}

// Recorder is a bytecode.ClassSink that records every call.
type Recorder struct {
	Fields  []*Field
	Methods []*Method
	// Members lists member names in visit order.
	Members []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// VisitField implements bytecode.ClassSink.
func (r *Recorder) VisitField(mods desc.Modifiers, name, descriptor string) bytecode.FieldSink {
	f := &Field{Name: name, Descriptor: descriptor, Modifiers: mods}
	r.Fields = append(r.Fields, f)
	r.Members = append(r.Members, name)
	return fieldSink{f}
}

// VisitMethod implements bytecode.ClassSink.
func (r *Recorder) VisitMethod(mods desc.Modifiers, name, descriptor string, exceptions []string) bytecode.MethodSink {
	m := &Method{Name: name, Descriptor: descriptor, Exceptions: exceptions, Modifiers: mods}
	r.Methods = append(r.Methods, m)
	r.Members = append(r.Members, name)
	return &MethodRecorder{M: m}
}

// Method returns the first recorded method whose name starts with prefix.
func (r *Recorder) Method(prefix string) *Method {
	for _, m := range r.Methods {
		if strings.HasPrefix(m.Name, prefix) {
			return m
		}
	}
	return nil
}

// Empty reports whether nothing was visited.
func (r *Recorder) Empty() bool {
	return len(r.Members) == 0
}

type fieldSink struct{ f *Field }

func (s fieldSink) VisitEnd() { s.f.Ended = true }

// MethodRecorder is a bytecode.MethodSink recording into M.
type MethodRecorder struct {
	M *Method
}

// NewMethodRecorder returns a sink recording into a fresh method.
func NewMethodRecorder() *MethodRecorder {
	return &MethodRecorder{M: &Method{}}
}

func (s *MethodRecorder) VisitCode() { s.M.Code = true }

func (s *MethodRecorder) VisitInsn(op bytecode.Opcode) {
	s.M.Insns = append(s.M.Insns, Insn{Op: op})
}

func (s *MethodRecorder) VisitIntInsn(op bytecode.Opcode, operand int) {
	s.M.Insns = append(s.M.Insns, Insn{Op: op, Operand: operand, HasOperand: true})
}

func (s *MethodRecorder) VisitVarInsn(op bytecode.Opcode, slot int) {
	s.M.Insns = append(s.M.Insns, Insn{Op: op, Operand: slot, HasOperand: true})
}

func (s *MethodRecorder) VisitTypeInsn(op bytecode.Opcode, internalName string) {
	s.M.Insns = append(s.M.Insns, Insn{Op: op, Name: internalName})
}

func (s *MethodRecorder) VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string) {
	s.M.Insns = append(s.M.Insns, Insn{Op: op, Owner: owner, Name: name, Descriptor: descriptor})
}

func (s *MethodRecorder) VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, isInterface bool) {
	s.M.Insns = append(s.M.Insns, Insn{Op: op, Owner: owner, Name: name, Descriptor: descriptor, Interface: isInterface})
}

func (s *MethodRecorder) VisitLdcInsn(value any) {
	s.M.Insns = append(s.M.Insns, Insn{Op: bytecode.OpLdc, Value: value})
}

func (s *MethodRecorder) VisitMaxs(maxStack, maxLocals int) {
	s.M.Maxs = true
	s.M.MaxStack = maxStack
	s.M.MaxLocals = maxLocals
}

func (s *MethodRecorder) VisitEnd() { s.M.Ended = true }
