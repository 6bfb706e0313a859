package bytecode

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// Op is a code emission operation. Applying it appends instructions to a
// method sink and reports the operation's effect on the operand stack.
//
// Ops are values: applying the same Op twice emits its instructions twice.
// Applying an Op whose IsValid reports false is a caller defect; use Emit,
// which rejects invalid operations before they reach the sink.
type Op interface {
	IsValid() bool
	Apply(sink MethodSink, ctx Context) (Size, error)
}

// Accessors is the registration surface for synthetic accessor methods.
// It is all an auxiliary type receives while it is being materialized.
type Accessors interface {
	// RegisterAccessorFor returns a bridge method that performs inv.
	RegisterAccessorFor(inv SpecialInvocation) (*desc.Method, error)
	// RegisterGetterFor returns a method that reads f.
	RegisterGetterFor(f desc.Field) (*desc.Method, error)
	// RegisterSetterFor returns a method that writes f.
	RegisterSetterFor(f desc.Field) (*desc.Method, error)
}

// Context is the generation context ops are applied against.
type Context interface {
	Accessors
	// Instrumented returns the type under construction.
	Instrumented() desc.Type
	// Version returns the class file version of the type under construction.
	Version() desc.Version
	// Cache returns a static field holding the value computed by value.
	Cache(value Op, t desc.Type) (desc.Field, error)
	// Register materializes aux and returns the resulting type.
	Register(aux AuxiliaryType) (desc.Type, error)
}

// SpecialInvocation invokes a method bypassing virtual dispatch.
type SpecialInvocation interface {
	Op
	// Method returns the invoked method.
	Method() *desc.Method
	// Type returns the type the method is invoked on.
	Type() desc.Type
}

// AuxiliaryType is a helper type that generated code depends on.
//
// Implementations are used as memoization keys and must be comparable
// or implement Identifier.
type AuxiliaryType interface {
	Make(name string, version desc.Version, accessors Accessors) (*DynamicType, error)
}

// DynamicType is a materialized type ready to be written out.
type DynamicType struct {
	Type        desc.Type
	Bytes       []byte
	Auxiliaries []*DynamicType
}

// Identifier is implemented by operations that cannot serve as map keys
// themselves. Identity must be equal for operations that emit the same code.
type Identifier interface {
	Identity() string
}

type identityKey struct {
	typ string
	id  string
}

// KeyOf returns a comparable key for v such that operations built from the
// same defining parameters share a key.
func KeyOf(v any) any {
	if v == nil {
		return nil
	}
	if id, ok := v.(Identifier); ok {
		return identityKey{typ: fmt.Sprintf("%T", v), id: id.Identity()}
	}
	// A comparable struct may still carry a slice behind an interface field.
	if reflect.ValueOf(v).Comparable() {
		return v
	}
	return identityKey{typ: fmt.Sprintf("%T", v), id: fmt.Sprintf("%+v", v)}
}

func identityOf(op Op) string {
	if id, ok := op.(Identifier); ok {
		return fmt.Sprintf("%T(%s)", op, id.Identity())
	}
	return fmt.Sprintf("%T%+v", op, op)
}

// Emit applies op after checking that it is valid.
func Emit(op Op, sink MethodSink, ctx Context) (Size, error) {
	if op == nil || !op.IsValid() {
		return Size{}, classerrors.InvalidOperation(op)
	}
	return op.Apply(sink, ctx)
}

// Trivial emits nothing.
type Trivial struct{}

func (Trivial) IsValid() bool { return true }

func (Trivial) Apply(MethodSink, Context) (Size, error) {
	return Size{}, nil
}

// Illegal is an operation that cannot be emitted.
type Illegal struct{}

func (Illegal) IsValid() bool { return false }

func (i Illegal) Apply(MethodSink, Context) (Size, error) {
	return Size{}, classerrors.InvalidOperation(i)
}

// Compound applies its operations in order.
type Compound []Op

// Sequence flattens ops into a single Compound.
func Sequence(ops ...Op) Compound {
	out := make(Compound, 0, len(ops))
	for _, op := range ops {
		if c, ok := op.(Compound); ok {
			out = append(out, c...)
			continue
		}
		out = append(out, op)
	}
	return out
}

func (c Compound) IsValid() bool {
	for _, op := range c {
		if op == nil || !op.IsValid() {
			return false
		}
	}
	return true
}

func (c Compound) Apply(sink MethodSink, ctx Context) (Size, error) {
	var size Size
	for _, op := range c {
		s, err := Emit(op, sink, ctx)
		if err != nil {
			return size, err
		}
		size = size.Aggregate(s)
	}
	return size, nil
}

// Identity implements Identifier.
func (c Compound) Identity() string {
	parts := make([]string, len(c))
	for i, op := range c {
		parts[i] = identityOf(op)
	}
	return strings.Join(parts, ";")
}
