package bytecode

import "github.com/wippyai/classgen/desc"

// FieldAccess reads or writes a field, choosing the static or instance
// instruction from the field's own modifiers.
type FieldAccess struct {
	Field desc.Field
	Put   bool
}

// GetField returns an operation that reads f. Instance reads expect the
// receiver on the stack.
func GetField(f desc.Field) FieldAccess {
	return FieldAccess{Field: f}
}

// PutField returns an operation that writes f from the stack top. Instance
// writes expect the receiver below the value.
func PutField(f desc.Field) FieldAccess {
	return FieldAccess{Field: f, Put: true}
}

func (a FieldAccess) IsValid() bool {
	return !a.Field.Type.IsVoid() && !a.Field.Type.IsZero() && a.Field.Name != ""
}

func (a FieldAccess) Apply(sink MethodSink, _ Context) (Size, error) {
	f := a.Field
	size := f.Type.StackSize().Size()
	var (
		op     Opcode
		impact int
	)
	switch {
	case f.IsStatic() && !a.Put:
		op, impact = OpGetstatic, size
	case f.IsStatic() && a.Put:
		op, impact = OpPutstatic, -size
	case !a.Put:
		op, impact = OpGetfield, size-1
	default:
		op, impact = OpPutfield, -size-1
	}
	sink.VisitFieldInsn(op, f.Declaring.InternalName(), f.Name, f.Descriptor())
	return Size{Impact: impact, Maximal: max(0, impact)}, nil
}

// Invocation invokes a method with a fixed dispatch instruction.
type Invocation struct {
	method *desc.Method
	on     desc.Type
	op     Opcode
}

// Invoke returns an operation that invokes m with the dispatch its
// declaration implies: static, interface, special for constructors and
// private methods, virtual otherwise.
func Invoke(m *desc.Method) Invocation {
	op := OpInvokevirtual
	switch {
	case m.IsStatic():
		op = OpInvokestatic
	case m.Name == desc.ConstructorName || m.Modifiers&desc.AccPrivate != 0:
		op = OpInvokespecial
	case m.IsInterface():
		op = OpInvokeinterface
	}
	return Invocation{method: m, on: m.Declaring, op: op}
}

// Special returns an invocation of m on type on that bypasses virtual
// dispatch. Static methods are invoked with invokestatic.
func Special(m *desc.Method, on desc.Type) SpecialInvocation {
	op := OpInvokespecial
	if m.IsStatic() {
		op = OpInvokestatic
	}
	return Invocation{method: m, on: on, op: op}
}

// Method returns the invoked method.
func (i Invocation) Method() *desc.Method {
	return i.method
}

// Type returns the type the method is invoked on.
func (i Invocation) Type() desc.Type {
	return i.on
}

// Opcode returns the dispatch instruction.
func (i Invocation) Opcode() Opcode {
	return i.op
}

func (i Invocation) IsValid() bool {
	if i.method == nil {
		return false
	}
	if i.op == OpInvokespecial && i.method.Modifiers&desc.AccAbstract != 0 {
		return false
	}
	return true
}

func (i Invocation) Apply(sink MethodSink, _ Context) (Size, error) {
	m := i.method
	sink.VisitMethodInsn(i.op, i.on.InternalName(), m.Name, m.Descriptor(), i.op == OpInvokeinterface)
	consumed := m.ParameterSize()
	if i.op != OpInvokestatic {
		consumed++
	}
	impact := m.Return.StackSize().Size() - consumed
	return Size{Impact: impact, Maximal: max(0, impact)}, nil
}

// Identity implements Identifier so invocations of equal methods share a key.
func (i Invocation) Identity() string {
	if i.method == nil {
		return "<nil>"
	}
	return i.op.String() + " " + i.on.InternalName() + "." + i.method.Signature()
}

// Return returns from a method with a value of type t.
type Return struct {
	Type desc.Type
}

// ReturnOf returns the return instruction matching t's category.
func ReturnOf(t desc.Type) Return {
	return Return{Type: t}
}

func (r Return) IsValid() bool {
	return !r.Type.IsZero()
}

func (r Return) Apply(sink MethodSink, _ Context) (Size, error) {
	var op Opcode
	switch r.Type.Sort() {
	case desc.SortVoid:
		op = OpReturn
	case desc.SortBoolean, desc.SortByte, desc.SortChar, desc.SortShort, desc.SortInt:
		op = OpIreturn
	case desc.SortLong:
		op = OpLreturn
	case desc.SortFloat:
		op = OpFreturn
	case desc.SortDouble:
		op = OpDreturn
	default:
		op = OpAreturn
	}
	sink.VisitInsn(op)
	return Decreasing(r.Type.StackSize()), nil
}
