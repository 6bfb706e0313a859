package bytecode

import "github.com/wippyai/classgen/desc"

// ClassSink receives the members of the type under construction.
type ClassSink interface {
	// VisitField begins a field member.
	VisitField(mods desc.Modifiers, name, descriptor string) FieldSink
	// VisitMethod begins a method member. exceptions holds internal names and may be nil.
	VisitMethod(mods desc.Modifiers, name, descriptor string, exceptions []string) MethodSink
}

// FieldSink receives the remainder of a field member.
type FieldSink interface {
	VisitEnd()
}

// MethodSink receives the code of a method member.
//
// Calls arrive as VisitCode, any number of instruction calls, VisitMaxs, VisitEnd.
// A method without code receives only VisitEnd.
type MethodSink interface {
	VisitCode()
	// VisitInsn emits an instruction without operands.
	VisitInsn(op Opcode)
	// VisitIntInsn emits bipush or sipush.
	VisitIntInsn(op Opcode, operand int)
	// VisitVarInsn emits a wide local variable instruction.
	VisitVarInsn(op Opcode, slot int)
	// VisitTypeInsn emits new, checkcast or instanceof.
	VisitTypeInsn(op Opcode, internalName string)
	VisitFieldInsn(op Opcode, owner, name, descriptor string)
	VisitMethodInsn(op Opcode, owner, name, descriptor string, isInterface bool)
	// VisitLdcInsn loads a constant: int32, int64, float32, float64, string or desc.Type.
	VisitLdcInsn(value any)
	VisitMaxs(maxStack, maxLocals int)
	VisitEnd()
}
