package synth

import (
	"go.uber.org/zap"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/initializer"
	"github.com/wippyai/classgen/methodpool"
)

// Names and modifiers of synthetic members.
const (
	FieldCachePrefix = "cachedValue"
	AccessorSuffix   = "accessor"
	AuxiliarySuffix  = "auxiliary"

	FieldCacheModifiers = desc.AccSynthetic | desc.AccFinal | desc.AccStatic
	AccessorModifiers   = desc.AccSynthetic | desc.AccFinal
)

// State is the lifecycle state of a Context.
type State uint8

const (
	StateOpen State = iota
	StateDraining
	StateDrained
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDraining:
		return "draining"
	case StateDrained:
		return "drained"
	}
	return "unknown"
}

// Option configures a Context.
type Option func(*Context)

// WithVersion sets the class file version of the instrumented type.
// The default is desc.V1_8.
func WithVersion(v desc.Version) Option {
	return func(c *Context) { c.version = v }
}

// WithAuxiliaryNaming sets how auxiliary types are named.
// The default is SequentialNaming.
func WithAuxiliaryNaming(n AuxiliaryNaming) Option {
	return func(c *Context) {
		if n != nil {
			c.naming = n
		}
	}
}

// WithLogger sets the context's logger. The default is Logger().
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

type fieldCacheKey struct {
	op  any
	typ desc.Type
}

type syntheticMethod struct {
	method *desc.Method
	body   methodpool.Appender
}

// Context collects the synthetic members of one instrumented type while
// its code is generated, and writes them out once on Drain.
//
// A Context is owned by a single generation pass and is not safe for
// concurrent use. Registration fails once Drain has started.
type Context struct {
	instrumented desc.Type
	version      desc.Version
	naming       AuxiliaryNaming
	log          *zap.Logger
	state        State

	chain  initializer.Chain
	fields int

	cache        map[fieldCacheKey]desc.Field
	cachedFields []desc.Field

	accessors   map[invocationKey]*desc.Method
	getters     map[fieldKey]*desc.Method
	setters     map[fieldKey]*desc.Method
	counters    map[string]int
	synthetic   []syntheticMethod
	auxiliaries map[any]desc.Type
	auxTypes    []*bytecode.DynamicType
	auxNames    map[string]struct{}
}

var _ bytecode.Context = (*Context)(nil)

// New creates an open context for instrumented.
func New(instrumented desc.Type, opts ...Option) *Context {
	c := &Context{
		instrumented: instrumented,
		version:      desc.V1_8,
		naming:       SequentialNaming{},
		log:          Logger(),
		chain:        initializer.None(),
		cache:        make(map[fieldCacheKey]desc.Field),
		accessors:    make(map[invocationKey]*desc.Method),
		getters:      make(map[fieldKey]*desc.Method),
		setters:      make(map[fieldKey]*desc.Method),
		counters:     make(map[string]int),
		auxiliaries:  make(map[any]desc.Type),
		auxNames:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("type", instrumented.InternalName()))
	return c
}

// Instrumented returns the type under construction.
func (c *Context) Instrumented() desc.Type {
	return c.instrumented
}

// Version returns the class file version of the type under construction.
func (c *Context) Version() desc.Version {
	return c.version
}

// State returns the lifecycle state.
func (c *Context) State() State {
	return c.state
}

// Initializer returns the current type initializer chain.
func (c *Context) Initializer() initializer.Chain {
	return c.chain
}

// CachedFields returns the cache fields in registration order.
func (c *Context) CachedFields() []desc.Field {
	return append([]desc.Field(nil), c.cachedFields...)
}

// SyntheticMethods returns the accessor, getter and setter methods in
// registration order.
func (c *Context) SyntheticMethods() []*desc.Method {
	out := make([]*desc.Method, len(c.synthetic))
	for i, s := range c.synthetic {
		out[i] = s.method
	}
	return out
}

// AuxiliaryTypes returns the materialized auxiliary types in registration order.
func (c *Context) AuxiliaryTypes() []*bytecode.DynamicType {
	return append([]*bytecode.DynamicType(nil), c.auxTypes...)
}

func (c *Context) checkOpen(what string) error {
	if c.state != StateOpen {
		return classerrors.IllegalState(classerrors.PhaseRegister, c.instrumented.InternalName(),
			"cannot register "+what+": context is "+c.state.String())
	}
	return nil
}

// next returns the next value of the named counter.
func (c *Context) next(category string) int {
	n := c.counters[category]
	c.counters[category] = n + 1
	return n
}

func (c *Context) addMethod(m *desc.Method, body methodpool.Appender) {
	c.synthetic = append(c.synthetic, syntheticMethod{method: m, body: body})
}
