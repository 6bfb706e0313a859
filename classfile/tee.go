package classfile

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
)

// Tee returns a sink that forwards every visit to each of sinks in order.
func Tee(sinks ...bytecode.ClassSink) bytecode.ClassSink {
	return tee(sinks)
}

type tee []bytecode.ClassSink

func (t tee) VisitField(mods desc.Modifiers, name, descriptor string) bytecode.FieldSink {
	out := make(fieldTee, len(t))
	for i, s := range t {
		out[i] = s.VisitField(mods, name, descriptor)
	}
	return out
}

func (t tee) VisitMethod(mods desc.Modifiers, name, descriptor string, exceptions []string) bytecode.MethodSink {
	out := make(methodTee, len(t))
	for i, s := range t {
		out[i] = s.VisitMethod(mods, name, descriptor, exceptions)
	}
	return out
}

type fieldTee []bytecode.FieldSink

func (t fieldTee) VisitEnd() {
	for _, s := range t {
		s.VisitEnd()
	}
}

type methodTee []bytecode.MethodSink

func (t methodTee) VisitCode() {
	for _, s := range t {
		s.VisitCode()
	}
}

func (t methodTee) VisitInsn(op bytecode.Opcode) {
	for _, s := range t {
		s.VisitInsn(op)
	}
}

func (t methodTee) VisitIntInsn(op bytecode.Opcode, operand int) {
	for _, s := range t {
		s.VisitIntInsn(op, operand)
	}
}

func (t methodTee) VisitVarInsn(op bytecode.Opcode, slot int) {
	for _, s := range t {
		s.VisitVarInsn(op, slot)
	}
}

func (t methodTee) VisitTypeInsn(op bytecode.Opcode, internalName string) {
	for _, s := range t {
		s.VisitTypeInsn(op, internalName)
	}
}

func (t methodTee) VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string) {
	for _, s := range t {
		s.VisitFieldInsn(op, owner, name, descriptor)
	}
}

func (t methodTee) VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, isInterface bool) {
	for _, s := range t {
		s.VisitMethodInsn(op, owner, name, descriptor, isInterface)
	}
}

func (t methodTee) VisitLdcInsn(value any) {
	for _, s := range t {
		s.VisitLdcInsn(value)
	}
}

func (t methodTee) VisitMaxs(maxStack, maxLocals int) {
	for _, s := range t {
		s.VisitMaxs(maxStack, maxLocals)
	}
}

func (t methodTee) VisitEnd() {
	for _, s := range t {
		s.VisitEnd()
	}
}
