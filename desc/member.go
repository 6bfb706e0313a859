package desc

import "strings"

// TypeInitializerName is the name of the class initialization method.
const TypeInitializerName = "<clinit>"

// ConstructorName is the name of instance initialization methods.
const ConstructorName = "<init>"

// Method describes a method of some declaring type.
type Method struct {
	Declaring  Type
	Name       string
	Parameters []Type
	Return     Type
	Exceptions []Type
	Modifiers  Modifiers
	// OnInterface is set when the declaring type is an interface.
	OnInterface bool
}

// TypeInitializerOf returns the type initializer method of t.
func TypeInitializerOf(t Type) *Method {
	return &Method{
		Declaring: t,
		Name:      TypeInitializerName,
		Return:    Void,
		Modifiers: AccStatic,
	}
}

// IsStatic reports whether the method is static.
func (m *Method) IsStatic() bool {
	return m.Modifiers.IsStatic()
}

// IsTypeInitializer reports whether m is a class initialization method.
func (m *Method) IsTypeInitializer() bool {
	return m.Name == TypeInitializerName
}

// IsInterface reports whether the declaring type is an interface.
func (m *Method) IsInterface() bool {
	return m.OnInterface
}

// Descriptor returns the method descriptor, e.g. "(ILjava/lang/String;)V".
func (m *Method) Descriptor() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range m.Parameters {
		b.WriteString(p.Descriptor())
	}
	b.WriteByte(')')
	b.WriteString(m.Return.Descriptor())
	return b.String()
}

// ExceptionNames returns the internal names of declared exceptions, or nil if none.
func (m *Method) ExceptionNames() []string {
	if len(m.Exceptions) == 0 {
		return nil
	}
	names := make([]string, len(m.Exceptions))
	for i, e := range m.Exceptions {
		names[i] = e.InternalName()
	}
	return names
}

// ParameterSize returns the slot width of the parameters excluding the receiver.
func (m *Method) ParameterSize() int {
	size := 0
	for _, p := range m.Parameters {
		size += p.StackSize().Size()
	}
	return size
}

// StackSize returns the local variable slots used by the receiver and parameters.
func (m *Method) StackSize() int {
	size := m.ParameterSize()
	if !m.IsStatic() {
		size++
	}
	return size
}

// ParameterOffset returns the local variable slot of parameter i.
func (m *Method) ParameterOffset(i int) int {
	offset := 0
	if !m.IsStatic() {
		offset++
	}
	for _, p := range m.Parameters[:i] {
		offset += p.StackSize().Size()
	}
	return offset
}

// Signature identifies a method within its declaring type: name plus descriptor.
func (m *Method) Signature() string {
	return m.Name + m.Descriptor()
}

func (m *Method) String() string {
	return m.Declaring.InternalName() + "." + m.Signature()
}

// Field describes a field of some declaring type.
type Field struct {
	Declaring Type
	Name      string
	Type      Type
	Modifiers Modifiers
}

// IsStatic reports whether the field is static.
func (f Field) IsStatic() bool {
	return f.Modifiers.IsStatic()
}

// Descriptor returns the field's type descriptor.
func (f Field) Descriptor() string {
	return f.Type.Descriptor()
}

func (f Field) String() string {
	return f.Declaring.InternalName() + "." + f.Name + ":" + f.Type.Descriptor()
}
