package synth

import (
	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/initializer"
	"github.com/wippyai/classgen/methodpool"
)

// InjectedCode is code that runs in the type initializer ahead of the
// instrumented type's own initialization.
type InjectedCode interface {
	IsDefined() bool
	Op() bytecode.Op
}

type noInjectedCode struct{}

func (noInjectedCode) IsDefined() bool { return false }
func (noInjectedCode) Op() bytecode.Op { return bytecode.Trivial{} }

// NoInjectedCode injects nothing.
var NoInjectedCode InjectedCode = noInjectedCode{}

type injectedOp struct {
	op bytecode.Op
}

func (injectedOp) IsDefined() bool { return true }
func (i injectedOp) Op() bytecode.Op { return i.op }

// Inject returns injected code that applies op.
func Inject(op bytecode.Op) InjectedCode {
	return injectedOp{op: op}
}

// Drain writes the type initializer, every cache field and every synthetic
// method to sink, and seals the context.
//
// The type initializer entry is taken from pool. If the instrumented type
// implements one, the accumulated initializer code and any injected code
// run ahead of its body; otherwise a type initializer is written only when
// there is code to run. Fields and methods are written in registration
// order.
//
// Drain runs once. A second call fails without writing anything, and the
// context is drained even when the first call fails.
func (c *Context) Drain(sink bytecode.ClassSink, pool methodpool.Pool, injected InjectedCode) error {
	if c.state != StateOpen {
		return classerrors.IllegalState(classerrors.PhaseDrain, c.instrumented.InternalName(),
			"context is "+c.state.String())
	}
	c.state = StateDraining
	defer func() { c.state = StateDrained }()

	if pool == nil {
		pool = methodpool.Empty
	}
	if injected == nil {
		injected = NoInjectedCode
	}

	prefix := c.chain
	if injected.IsDefined() {
		prefix = prefix.ExpandWith(injected.Op())
	}

	clinit := desc.TypeInitializerOf(c.instrumented)
	entry := pool.Target(clinit)
	c.log.Debug("draining",
		zap.Stringer("initializer", entry.Sort()),
		zap.Int("initializer_ops", prefix.Len()),
		zap.Int("fields", len(c.cachedFields)),
		zap.Int("methods", len(c.synthetic)))

	if err := c.writeInitializer(sink, entry, clinit, prefix); err != nil {
		return err
	}
	for _, f := range c.cachedFields {
		sink.VisitField(f.Modifiers, f.Name, f.Descriptor()).VisitEnd()
	}
	for _, s := range c.synthetic {
		if err := methodpool.Implement(s.body).Apply(sink, c, s.method); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) writeInitializer(sink bytecode.ClassSink, entry methodpool.Entry, clinit *desc.Method, prefix initializer.Chain) error {
	switch entry.Sort() {
	case methodpool.SortImplement:
		if prefix.IsDefined() {
			entry = entry.Prepend(methodpool.Simple(prefix))
		}
		return entry.Apply(sink, c, clinit)
	case methodpool.SortSkip:
		if !prefix.IsDefined() {
			return nil
		}
		return methodpool.Implement(methodpool.Simple(prefix.Terminate())).Apply(sink, c, clinit)
	case methodpool.SortAbstract:
		return classerrors.New(classerrors.PhaseDrain, classerrors.KindInvalidInput).
			Type(c.instrumented.InternalName()).
			Member(desc.TypeInitializerName).
			Detail("type initializer cannot be abstract").
			Build()
	}
	return classerrors.New(classerrors.PhaseDrain, classerrors.KindInvalidInput).
		Type(c.instrumented.InternalName()).
		Member(desc.TypeInitializerName).
		Detail("unknown entry sort %s", entry.Sort()).
		Build()
}
