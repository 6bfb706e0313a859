package desc

import "strings"

// Sort classifies a type by its value category.
type Sort uint8

const (
	SortVoid Sort = iota
	SortBoolean
	SortByte
	SortChar
	SortShort
	SortInt
	SortFloat
	SortLong
	SortDouble
	SortReference
	SortArray
)

// StackSize is the number of operand stack slots a value occupies.
type StackSize uint8

const (
	StackZero   StackSize = 0
	StackSingle StackSize = 1
	StackDouble StackSize = 2
)

// Size returns the slot count.
func (s StackSize) Size() int {
	return int(s)
}

// Maximum returns the larger of two stack sizes.
func (s StackSize) Maximum(other StackSize) StackSize {
	if other > s {
		return other
	}
	return s
}

// Type describes a type by its internal name and descriptor.
// Type values are comparable; two equal values describe the same type.
type Type struct {
	internalName string
	descriptor   string
	sort         Sort
}

// Primitive and well-known types.
var (
	Void    = Type{sort: SortVoid, internalName: "void", descriptor: "V"}
	Boolean = Type{sort: SortBoolean, internalName: "boolean", descriptor: "Z"}
	Byte    = Type{sort: SortByte, internalName: "byte", descriptor: "B"}
	Char    = Type{sort: SortChar, internalName: "char", descriptor: "C"}
	Short   = Type{sort: SortShort, internalName: "short", descriptor: "S"}
	Int     = Type{sort: SortInt, internalName: "int", descriptor: "I"}
	Float   = Type{sort: SortFloat, internalName: "float", descriptor: "F"}
	Long    = Type{sort: SortLong, internalName: "long", descriptor: "J"}
	Double  = Type{sort: SortDouble, internalName: "double", descriptor: "D"}

	Object    = ObjectType("java/lang/Object")
	String    = ObjectType("java/lang/String")
	Class     = ObjectType("java/lang/Class")
	Throwable = ObjectType("java/lang/Throwable")
)

// ObjectType returns a reference type for the given internal name (e.g. "java/lang/String").
func ObjectType(internalName string) Type {
	return Type{
		sort:         SortReference,
		internalName: internalName,
		descriptor:   "L" + internalName + ";",
	}
}

// ArrayOf returns an array type with the given component type.
func ArrayOf(component Type) Type {
	d := "[" + component.descriptor
	return Type{sort: SortArray, internalName: d, descriptor: d}
}

// Sort returns the type's value category.
func (t Type) Sort() Sort {
	return t.sort
}

// InternalName returns the slash-separated name used in class files.
// Array types use their descriptor as internal name.
func (t Type) InternalName() string {
	return t.internalName
}

// Descriptor returns the field descriptor of the type.
func (t Type) Descriptor() string {
	return t.descriptor
}

// Name returns the dot-separated source name.
func (t Type) Name() string {
	return strings.ReplaceAll(t.internalName, "/", ".")
}

// SimpleName returns the name without its package.
func (t Type) SimpleName() string {
	if i := strings.LastIndexByte(t.internalName, '/'); i >= 0 {
		return t.internalName[i+1:]
	}
	return t.internalName
}

// IsPrimitive reports whether the type is a primitive (including void).
func (t Type) IsPrimitive() bool {
	return t.sort < SortReference
}

// IsVoid reports whether the type is void.
func (t Type) IsVoid() bool {
	return t.sort == SortVoid
}

// IsReference reports whether values of this type are object references.
func (t Type) IsReference() bool {
	return t.sort == SortReference || t.sort == SortArray
}

// StackSize returns the number of slots a value of this type occupies.
func (t Type) StackSize() StackSize {
	switch t.sort {
	case SortVoid:
		return StackZero
	case SortLong, SortDouble:
		return StackDouble
	default:
		return StackSingle
	}
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool {
	return t.descriptor == ""
}

func (t Type) String() string {
	return t.Name()
}
