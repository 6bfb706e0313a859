// Package methodpool decides how each method of a type is written.
//
// A Pool maps a method to an Entry. The Entry's Sort tells a caller whether
// the method is left alone (SortSkip), written with a body (SortImplement)
// or declared without one (SortAbstract).
package methodpool

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
)

// Sort classifies an Entry.
type Sort uint8

const (
	SortSkip Sort = iota
	SortImplement
	SortAbstract
)

func (s Sort) String() string {
	switch s {
	case SortSkip:
		return "skip"
	case SortImplement:
		return "implement"
	case SortAbstract:
		return "abstract"
	}
	return "unknown"
}

// Entry describes how one method is written.
type Entry interface {
	Sort() Sort
	// Prepend returns an entry whose body runs a before the current body.
	Prepend(a Appender) Entry
	// Apply writes the method to sink. Skipped entries write nothing.
	Apply(sink bytecode.ClassSink, ctx bytecode.Context, m *desc.Method) error
}

type skipped struct{}

// Skip returns the entry of a method that is not written.
func Skip() Entry {
	return skipped{}
}

func (skipped) Sort() Sort { return SortSkip }

func (skipped) Prepend(a Appender) Entry {
	return Implement(a)
}

func (skipped) Apply(bytecode.ClassSink, bytecode.Context, *desc.Method) error {
	return nil
}

type implemented struct {
	body Appender
}

// Implement returns the entry of a method written with body.
func Implement(body Appender) Entry {
	return implemented{body: body}
}

func (implemented) Sort() Sort { return SortImplement }

func (e implemented) Prepend(a Appender) Entry {
	return implemented{body: Compound{a, e.body}}
}

func (e implemented) Apply(sink bytecode.ClassSink, ctx bytecode.Context, m *desc.Method) error {
	mv := sink.VisitMethod(m.Modifiers, m.Name, m.Descriptor(), m.ExceptionNames())
	mv.VisitCode()
	size, err := e.body.Apply(mv, ctx, m)
	if err != nil {
		return bodyError(ctx, m, err)
	}
	mv.VisitMaxs(size.MaxStack, max(size.LocalVariables, m.StackSize()))
	mv.VisitEnd()
	return nil
}

type abstract struct{}

// Abstract returns the entry of a method declared without a body.
func Abstract() Entry {
	return abstract{}
}

func (abstract) Sort() Sort { return SortAbstract }

func (abstract) Prepend(a Appender) Entry {
	return Implement(a)
}

func (abstract) Apply(sink bytecode.ClassSink, _ bytecode.Context, m *desc.Method) error {
	mv := sink.VisitMethod(m.Modifiers|desc.AccAbstract, m.Name, m.Descriptor(), m.ExceptionNames())
	mv.VisitEnd()
	return nil
}

func bodyError(ctx bytecode.Context, m *desc.Method, err error) error {
	b := classerrors.New(classerrors.PhaseEmit, classerrors.KindOf(err)).
		Member(m.Signature()).
		Cause(err).
		Detail("write method body")
	if ctx != nil {
		b.Type(ctx.Instrumented().InternalName())
	}
	return b.Build()
}
