package methodpool

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
)

// AppenderSize is the frame a method body needs.
type AppenderSize struct {
	MaxStack       int
	LocalVariables int
}

// Merge returns a size large enough for both s and other.
func (s AppenderSize) Merge(other AppenderSize) AppenderSize {
	return AppenderSize{
		MaxStack:       max(s.MaxStack, other.MaxStack),
		LocalVariables: max(s.LocalVariables, other.LocalVariables),
	}
}

// Appender writes (part of) a method body.
type Appender interface {
	Apply(sink bytecode.MethodSink, ctx bytecode.Context, m *desc.Method) (AppenderSize, error)
}

type simple struct {
	op bytecode.Op
}

// Simple returns an appender that emits ops in order. The body's locals
// are the method's receiver and parameter slots.
func Simple(ops ...bytecode.Op) Appender {
	return simple{op: bytecode.Sequence(ops...)}
}

func (s simple) Apply(sink bytecode.MethodSink, ctx bytecode.Context, m *desc.Method) (AppenderSize, error) {
	size, err := bytecode.Emit(s.op, sink, ctx)
	if err != nil {
		return AppenderSize{}, err
	}
	return AppenderSize{MaxStack: size.Maximal, LocalVariables: m.StackSize()}, nil
}

// Compound applies appenders in order. Each part is expected to leave the
// operand stack as it found it, except the last which may return.
type Compound []Appender

func (c Compound) Apply(sink bytecode.MethodSink, ctx bytecode.Context, m *desc.Method) (AppenderSize, error) {
	var size AppenderSize
	for _, a := range c {
		s, err := a.Apply(sink, ctx, m)
		if err != nil {
			return AppenderSize{}, err
		}
		size = size.Merge(s)
	}
	return size, nil
}

// AppenderFunc adapts a function to Appender.
type AppenderFunc func(sink bytecode.MethodSink, ctx bytecode.Context, m *desc.Method) (AppenderSize, error)

func (f AppenderFunc) Apply(sink bytecode.MethodSink, ctx bytecode.Context, m *desc.Method) (AppenderSize, error) {
	return f(sink, ctx, m)
}
