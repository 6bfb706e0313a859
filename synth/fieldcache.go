package synth

import (
	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// Cache returns a static field of type t that holds the value computed by
// value. The computation is appended to the type initializer the first time
// an equal (value, t) pair is cached; later calls return the same field.
func (c *Context) Cache(value bytecode.Op, t desc.Type) (desc.Field, error) {
	if err := c.checkOpen("field cache"); err != nil {
		return desc.Field{}, err
	}
	if value == nil || !value.IsValid() {
		return desc.Field{}, classerrors.InvalidOperation(value)
	}
	if t.IsZero() || t.IsVoid() {
		return desc.Field{}, classerrors.InvalidInput(classerrors.PhaseRegister, "cannot cache a value of type void")
	}

	key := fieldCacheKey{op: bytecode.KeyOf(value), typ: t}
	if f, ok := c.cache[key]; ok {
		return f, nil
	}

	f := desc.Field{
		Declaring: c.instrumented,
		Name:      fieldCacheName(c.fields),
		Type:      t,
		Modifiers: FieldCacheModifiers,
	}
	c.fields++
	c.cache[key] = f
	c.cachedFields = append(c.cachedFields, f)
	c.chain = c.chain.ExpandWith(bytecode.Sequence(value, bytecode.PutField(f)))

	c.log.Debug("registered field cache",
		zap.String("field", f.Name),
		zap.String("descriptor", f.Descriptor()))
	return f, nil
}
