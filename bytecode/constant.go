package bytecode

import (
	"math"

	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// IntegerConstant pushes an int using the shortest encoding.
type IntegerConstant int32

func (IntegerConstant) IsValid() bool { return true }

func (c IntegerConstant) Apply(sink MethodSink, _ Context) (Size, error) {
	switch v := int32(c); {
	case v >= -1 && v <= 5:
		sink.VisitInsn(Opcode(int32(OpIconstM1) + v + 1))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		sink.VisitIntInsn(OpBipush, int(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		sink.VisitIntInsn(OpSipush, int(v))
	default:
		sink.VisitLdcInsn(v)
	}
	return Increasing(desc.StackSingle), nil
}

// LongConstant pushes a long.
type LongConstant int64

func (LongConstant) IsValid() bool { return true }

func (c LongConstant) Apply(sink MethodSink, _ Context) (Size, error) {
	switch c {
	case 0:
		sink.VisitInsn(OpLconst0)
	case 1:
		sink.VisitInsn(OpLconst1)
	default:
		sink.VisitLdcInsn(int64(c))
	}
	return Increasing(desc.StackDouble), nil
}

// NullConstant pushes the null reference.
type NullConstant struct{}

func (NullConstant) IsValid() bool { return true }

func (NullConstant) Apply(sink MethodSink, _ Context) (Size, error) {
	sink.VisitInsn(OpAconstNull)
	return Increasing(desc.StackSingle), nil
}

// TextConstant pushes a string from the constant pool.
type TextConstant string

func (TextConstant) IsValid() bool { return true }

func (c TextConstant) Apply(sink MethodSink, _ Context) (Size, error) {
	sink.VisitLdcInsn(string(c))
	return Increasing(desc.StackSingle), nil
}

// primitiveWrappers maps primitive sorts to the wrapper holding their TYPE constant.
var primitiveWrappers = map[desc.Sort]string{
	desc.SortVoid:    "java/lang/Void",
	desc.SortBoolean: "java/lang/Boolean",
	desc.SortByte:    "java/lang/Byte",
	desc.SortChar:    "java/lang/Character",
	desc.SortShort:   "java/lang/Short",
	desc.SortInt:     "java/lang/Integer",
	desc.SortFloat:   "java/lang/Float",
	desc.SortLong:    "java/lang/Long",
	desc.SortDouble:  "java/lang/Double",
}

// ClassConstant pushes the class object of a type. Reference types are
// loaded from the constant pool, which requires class file version 1.5.
type ClassConstant struct {
	Type desc.Type
}

func (c ClassConstant) IsValid() bool {
	return !c.Type.IsZero()
}

func (c ClassConstant) Apply(sink MethodSink, ctx Context) (Size, error) {
	if c.Type.IsPrimitive() {
		sink.VisitFieldInsn(OpGetstatic, primitiveWrappers[c.Type.Sort()], "TYPE", desc.Class.Descriptor())
		return Increasing(desc.StackSingle), nil
	}
	if ctx != nil && !ctx.Version().AtLeast(desc.V1_5) {
		return Size{}, classerrors.Unsupported(classerrors.PhaseEmit,
			"class constant "+c.Type.InternalName()+" requires class file version 49.0, have "+ctx.Version().String())
	}
	sink.VisitLdcInsn(c.Type)
	return Increasing(desc.StackSingle), nil
}

// Duplicate copies the stack top value of type t.
type Duplicate struct {
	Type desc.Type
}

func (d Duplicate) IsValid() bool { return !d.Type.IsZero() }

func (d Duplicate) Apply(sink MethodSink, _ Context) (Size, error) {
	switch d.Type.StackSize() {
	case desc.StackZero:
		return Size{}, nil
	case desc.StackDouble:
		sink.VisitInsn(OpDup2)
	default:
		sink.VisitInsn(OpDup)
	}
	return Increasing(d.Type.StackSize()), nil
}

// Remove discards the stack top value of type t.
type Remove struct {
	Type desc.Type
}

func (r Remove) IsValid() bool { return !r.Type.IsZero() }

func (r Remove) Apply(sink MethodSink, _ Context) (Size, error) {
	switch r.Type.StackSize() {
	case desc.StackZero:
		return Size{}, nil
	case desc.StackDouble:
		sink.VisitInsn(OpPop2)
	default:
		sink.VisitInsn(OpPop)
	}
	return Decreasing(r.Type.StackSize()), nil
}
