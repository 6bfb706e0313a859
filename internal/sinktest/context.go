package sinktest

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// Context is a bytecode.Context that only answers Instrumented and Version.
// Every registration fails, which makes accidental registration visible.
type Context struct {
	Type desc.Type
	Ver  desc.Version
}

var _ bytecode.Context = Context{}

// NewContext returns a context for instrumented at class file version v.
func NewContext(instrumented desc.Type, v desc.Version) Context {
	return Context{Type: instrumented, Ver: v}
}

func (c Context) Instrumented() desc.Type { return c.Type }

func (c Context) Version() desc.Version { return c.Ver }

func (c Context) Cache(bytecode.Op, desc.Type) (desc.Field, error) {
	return desc.Field{}, classerrors.Unsupported(classerrors.PhaseRegister, "field cache")
}

func (c Context) Register(bytecode.AuxiliaryType) (desc.Type, error) {
	return desc.Type{}, classerrors.Unsupported(classerrors.PhaseRegister, "auxiliary type")
}

func (c Context) RegisterAccessorFor(bytecode.SpecialInvocation) (*desc.Method, error) {
	return nil, classerrors.Unsupported(classerrors.PhaseRegister, "accessor method")
}

func (c Context) RegisterGetterFor(desc.Field) (*desc.Method, error) {
	return nil, classerrors.Unsupported(classerrors.PhaseRegister, "field getter")
}

func (c Context) RegisterSetterFor(desc.Field) (*desc.Method, error) {
	return nil, classerrors.Unsupported(classerrors.PhaseRegister, "field setter")
}
