package main

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/classfile"
	"github.com/wippyai/classgen/desc"
	"github.com/wippyai/classgen/methodpool"
	"github.com/wippyai/classgen/synth"
)

// sample is the drained output of the demonstration type.
type sample struct {
	name        desc.Type
	class       []byte
	listing     string
	auxiliaries []*bytecode.DynamicType
}

var toString = &desc.Method{
	Declaring: desc.Object,
	Name:      "toString",
	Return:    desc.String,
	Modifiers: desc.AccPublic,
}

// synthesize builds a type that caches a few constants, bridges a super
// call, exposes one of its fields and depends on a delegator auxiliary type.
func synthesize(cfg *config, log *zap.Logger) (*sample, error) {
	version, err := cfg.version()
	if err != nil {
		return nil, err
	}
	name := desc.ObjectType(cfg.Type)
	ctx := synth.New(name,
		synth.WithVersion(version),
		synth.WithAuxiliaryNaming(cfg.naming()),
		synth.WithLogger(log),
	)

	for _, c := range []struct {
		op bytecode.Op
		t  desc.Type
	}{
		{bytecode.TextConstant("generated by classgen"), desc.String},
		{bytecode.IntegerConstant(70000), desc.Int},
		{bytecode.LongConstant(1 << 40), desc.Long},
		{bytecode.ClassConstant{Type: desc.Int}, desc.Class},
	} {
		if _, err := ctx.Cache(c.op, c.t); err != nil {
			return nil, err
		}
	}

	counter := desc.Field{Declaring: name, Name: "counter", Type: desc.Long}
	if _, err := ctx.RegisterGetterFor(counter); err != nil {
		return nil, err
	}
	if _, err := ctx.RegisterSetterFor(counter); err != nil {
		return nil, err
	}
	if _, err := ctx.Register(delegator{target: toString, on: desc.Object}); err != nil {
		return nil, err
	}

	var listing bytes.Buffer
	w := classfile.NewWriter(name, desc.Object, version)
	p := classfile.NewPrinter(&listing)
	if err := ctx.Drain(classfile.Tee(w, p), methodpool.Empty, synth.NoInjectedCode); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	class, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	return &sample{
		name:        name,
		class:       class,
		listing:     listing.String(),
		auxiliaries: ctx.AuxiliaryTypes(),
	}, nil
}

// delegator is an auxiliary type with a single static method that calls
// target on an instance of the instrumented type through a bridge.
type delegator struct {
	target *desc.Method
	on     desc.Type
}

func (d delegator) Make(name string, version desc.Version, accessors bytecode.Accessors) (*bytecode.DynamicType, error) {
	bridge, err := accessors.RegisterAccessorFor(bytecode.Special(d.target, d.on))
	if err != nil {
		return nil, err
	}

	self := desc.ObjectType(name)
	call := &desc.Method{
		Declaring:  self,
		Name:       d.target.Name,
		Parameters: append([]desc.Type{bridge.Declaring}, bridge.Parameters...),
		Return:     bridge.Return,
		Exceptions: bridge.Exceptions,
		Modifiers:  desc.AccPublic | desc.AccStatic,
	}
	body := methodpool.Simple(
		bytecode.LoadArguments(call),
		bytecode.Invoke(bridge),
		bytecode.ReturnOf(call.Return),
	)

	w := classfile.NewWriter(self, desc.Object, version)
	w.SetAccess(desc.AccFinal | desc.AccSuper | desc.AccSynthetic)
	if err := methodpool.Implement(body).Apply(w, nil, call); err != nil {
		return nil, fmt.Errorf("delegate %s: %w", d.target.Name, err)
	}
	data, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	return &bytecode.DynamicType{Type: self, Bytes: data}, nil
}
