package synth

import (
	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/methodpool"
)

// Counter categories; each keeps its own name sequence.
const (
	categoryAccessor = "accessor"
	categoryGetter   = "get"
	categorySetter   = "set"
)

type invocationKey struct {
	declaring string
	on        string
	signature string
	dispatch  any
}

type fieldKey struct {
	declaring  string
	name       string
	descriptor string
	static     bool
}

func keyOfField(f desc.Field) fieldKey {
	return fieldKey{
		declaring:  f.Declaring.InternalName(),
		name:       f.Name,
		descriptor: f.Descriptor(),
		static:     f.IsStatic(),
	}
}

func accessorModifiers(static bool) desc.Modifiers {
	if static {
		return AccessorModifiers | desc.AccStatic
	}
	return AccessorModifiers
}

// RegisterAccessorFor returns a synthetic method of the instrumented type
// that performs inv on behalf of code that cannot perform it directly.
// The method takes the invoked method's parameters and is static iff the
// invoked method is.
func (c *Context) RegisterAccessorFor(inv bytecode.SpecialInvocation) (*desc.Method, error) {
	if err := c.checkOpen("accessor method"); err != nil {
		return nil, err
	}
	if inv == nil || inv.Method() == nil {
		return nil, classerrors.InvalidInput(classerrors.PhaseRegister, "accessor requires a resolved method")
	}
	target := inv.Method()
	if target.Name == desc.ConstructorName || target.IsTypeInitializer() {
		return nil, classerrors.New(classerrors.PhaseRegister, classerrors.KindInvalidInput).
			Type(c.instrumented.InternalName()).
			Member(target.Signature()).
			Detail("cannot bridge an initializer").
			Build()
	}
	if !inv.IsValid() {
		return nil, classerrors.InvalidOperation(inv)
	}

	key := invocationKey{
		declaring: target.Declaring.InternalName(),
		on:        inv.Type().InternalName(),
		signature: target.Signature(),
		dispatch:  bytecode.KeyOf(inv),
	}
	if m, ok := c.accessors[key]; ok {
		return m, nil
	}

	bridge := &desc.Method{
		Declaring:  c.instrumented,
		Name:       accessorName(target.Name, c.next(categoryAccessor)),
		Parameters: append([]desc.Type(nil), target.Parameters...),
		Return:     target.Return,
		Exceptions: append([]desc.Type(nil), target.Exceptions...),
		Modifiers:  accessorModifiers(target.IsStatic()),
	}
	ops := bytecode.Compound{}
	if !bridge.IsStatic() {
		ops = append(ops, bytecode.LoadThis())
	}
	ops = append(ops, bytecode.LoadArguments(bridge), inv, bytecode.ReturnOf(bridge.Return))

	c.accessors[key] = bridge
	c.addMethod(bridge, methodpool.Simple(ops...))
	c.log.Debug("registered accessor",
		zap.String("method", bridge.Signature()),
		zap.String("target", target.String()))
	return bridge, nil
}

// RegisterGetterFor returns a synthetic method of the instrumented type that
// reads f. The method takes no arguments and is static iff f is.
func (c *Context) RegisterGetterFor(f desc.Field) (*desc.Method, error) {
	if err := c.checkOpen("field getter"); err != nil {
		return nil, err
	}
	if err := c.checkField(f); err != nil {
		return nil, err
	}
	key := keyOfField(f)
	if m, ok := c.getters[key]; ok {
		return m, nil
	}

	getter := &desc.Method{
		Declaring: c.instrumented,
		Name:      fieldAccessorName(f.Name, categoryGetter, c.next(categoryGetter)),
		Return:    f.Type,
		Modifiers: accessorModifiers(f.IsStatic()),
	}
	ops := bytecode.Compound{}
	if !f.IsStatic() {
		ops = append(ops, bytecode.LoadThis())
	}
	ops = append(ops, bytecode.GetField(f), bytecode.ReturnOf(f.Type))

	c.getters[key] = getter
	c.addMethod(getter, methodpool.Simple(ops...))
	c.log.Debug("registered field getter",
		zap.String("method", getter.Signature()),
		zap.String("field", f.String()))
	return getter, nil
}

// RegisterSetterFor returns a synthetic method of the instrumented type that
// writes its single argument to f. The method returns void and is static
// iff f is.
func (c *Context) RegisterSetterFor(f desc.Field) (*desc.Method, error) {
	if err := c.checkOpen("field setter"); err != nil {
		return nil, err
	}
	if err := c.checkField(f); err != nil {
		return nil, err
	}
	key := keyOfField(f)
	if m, ok := c.setters[key]; ok {
		return m, nil
	}

	setter := &desc.Method{
		Declaring:  c.instrumented,
		Name:       fieldAccessorName(f.Name, categorySetter, c.next(categorySetter)),
		Parameters: []desc.Type{f.Type},
		Return:     desc.Void,
		Modifiers:  accessorModifiers(f.IsStatic()),
	}
	ops := bytecode.Compound{}
	if !f.IsStatic() {
		ops = append(ops, bytecode.LoadThis())
	}
	ops = append(ops,
		bytecode.Load(f.Type, setter.ParameterOffset(0)),
		bytecode.PutField(f),
		bytecode.ReturnOf(desc.Void))

	c.setters[key] = setter
	c.addMethod(setter, methodpool.Simple(ops...))
	c.log.Debug("registered field setter",
		zap.String("method", setter.Signature()),
		zap.String("field", f.String()))
	return setter, nil
}

func (c *Context) checkField(f desc.Field) error {
	if f.Name == "" || f.Type.IsZero() || f.Type.IsVoid() || f.Declaring.IsZero() {
		return classerrors.New(classerrors.PhaseRegister, classerrors.KindInvalidInput).
			Type(c.instrumented.InternalName()).
			Detail("invalid field %s", f).
			Build()
	}
	return nil
}
