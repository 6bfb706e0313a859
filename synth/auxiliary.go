package synth

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// accessorView is the registration surface handed to auxiliary types.
type accessorView struct {
	c *Context
}

func (v accessorView) RegisterAccessorFor(inv bytecode.SpecialInvocation) (*desc.Method, error) {
	return v.c.RegisterAccessorFor(inv)
}

func (v accessorView) RegisterGetterFor(f desc.Field) (*desc.Method, error) {
	return v.c.RegisterGetterFor(f)
}

func (v accessorView) RegisterSetterFor(f desc.Field) (*desc.Method, error) {
	return v.c.RegisterSetterFor(f)
}

// Register materializes aux under a fresh name and returns its type.
// Equal requests return the type materialized first. The auxiliary type
// may register accessors against this context while it is materialized.
func (c *Context) Register(aux bytecode.AuxiliaryType) (desc.Type, error) {
	if err := c.checkOpen("auxiliary type"); err != nil {
		return desc.Type{}, err
	}
	if aux == nil {
		return desc.Type{}, classerrors.InvalidInput(classerrors.PhaseRegister, "nil auxiliary type")
	}
	key := bytecode.KeyOf(aux)
	if t, ok := c.auxiliaries[key]; ok {
		return t, nil
	}

	name := c.auxiliaryName()
	dyn, err := aux.Make(name, c.version, accessorView{c})
	if err == nil && dyn == nil {
		err = fmt.Errorf("%T produced no type", aux)
	}
	if err != nil {
		c.log.Debug("auxiliary type failed", zap.String("name", name), zap.Error(err))
		return desc.Type{}, classerrors.Materialization(c.instrumented.InternalName(), name, err)
	}

	c.auxiliaries[key] = dyn.Type
	c.auxNames[dyn.Type.InternalName()] = struct{}{}
	c.auxTypes = append(c.auxTypes, dyn)
	c.log.Debug("registered auxiliary type", zap.String("name", dyn.Type.InternalName()))
	return dyn.Type, nil
}

// auxiliaryName returns a name no registered auxiliary type uses.
func (c *Context) auxiliaryName() string {
	for n := len(c.auxTypes); ; n++ {
		name := c.naming.AuxiliaryName(c.instrumented, n)
		if _, used := c.auxNames[name]; !used {
			return name
		}
	}
}
