package bytecode

import "github.com/wippyai/classgen/desc"

// VariableAccess loads or stores a local variable of a given type.
type VariableAccess struct {
	Type  desc.Type
	Slot  int
	Store bool
}

// Load returns an operation that pushes local variable slot of type t.
func Load(t desc.Type, slot int) VariableAccess {
	return VariableAccess{Type: t, Slot: slot}
}

// Store returns an operation that pops the stack top into local variable slot.
func Store(t desc.Type, slot int) VariableAccess {
	return VariableAccess{Type: t, Slot: slot, Store: true}
}

// LoadThis pushes the receiver of an instance method.
func LoadThis() VariableAccess {
	return Load(desc.Object, 0)
}

// LoadArguments pushes every parameter of m in declaration order.
func LoadArguments(m *desc.Method) Compound {
	ops := make(Compound, len(m.Parameters))
	for i, p := range m.Parameters {
		ops[i] = Load(p, m.ParameterOffset(i))
	}
	return ops
}

func (v VariableAccess) opcode() Opcode {
	var op Opcode
	switch v.Type.Sort() {
	case desc.SortBoolean, desc.SortByte, desc.SortChar, desc.SortShort, desc.SortInt:
		op = OpIload
	case desc.SortLong:
		op = OpLload
	case desc.SortFloat:
		op = OpFload
	case desc.SortDouble:
		op = OpDload
	default:
		op = OpAload
	}
	if v.Store {
		op += OpIstore - OpIload
	}
	return op
}

func (v VariableAccess) IsValid() bool {
	return !v.Type.IsVoid() && !v.Type.IsZero() && v.Slot >= 0 && v.Slot <= 0xffff
}

func (v VariableAccess) Apply(sink MethodSink, _ Context) (Size, error) {
	op := v.opcode()
	if compact, ok := Compact(op, v.Slot); ok {
		sink.VisitInsn(compact)
	} else {
		sink.VisitVarInsn(op, v.Slot)
	}
	if v.Store {
		return Decreasing(v.Type.StackSize()), nil
	}
	return Increasing(v.Type.StackSize()), nil
}
