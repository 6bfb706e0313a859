// Package initializer models code that runs ahead of a type's own
// initialization logic.
//
// A Chain starts untouched and grows by strict append. Every expansion
// returns a new Chain; earlier chains are never modified, so a chain can be
// kept while the owner moves on to a longer one.
package initializer

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
)

// Chain is an immutable sequence of operations.
type Chain struct {
	ops []bytecode.Op
}

// None returns the untouched chain.
func None() Chain {
	return Chain{}
}

// ExpandWith returns a chain that applies c and then op.
func (c Chain) ExpandWith(op bytecode.Op) Chain {
	// Siblings expanded from one parent never share a backing array.
	ops := make([]bytecode.Op, len(c.ops), len(c.ops)+1)
	copy(ops, c.ops)
	return Chain{ops: append(ops, op)}
}

// IsDefined reports whether anything was appended.
func (c Chain) IsDefined() bool {
	return len(c.ops) > 0
}

// Len returns the number of appended operations.
func (c Chain) Len() int {
	return len(c.ops)
}

// Ops returns a copy of the appended operations in order.
func (c Chain) Ops() []bytecode.Op {
	return append([]bytecode.Op(nil), c.ops...)
}

// IsValid implements bytecode.Op.
func (c Chain) IsValid() bool {
	return bytecode.Compound(c.ops).IsValid()
}

// Apply implements bytecode.Op. An untouched chain emits nothing.
func (c Chain) Apply(sink bytecode.MethodSink, ctx bytecode.Context) (bytecode.Size, error) {
	return bytecode.Compound(c.ops).Apply(sink, ctx)
}

// Identity implements bytecode.Identifier.
func (c Chain) Identity() string {
	return bytecode.Compound(c.ops).Identity()
}

// Terminate returns an operation applying the whole chain followed by a
// return from the initializer.
func (c Chain) Terminate() bytecode.Op {
	ops := make(bytecode.Compound, 0, len(c.ops)+1)
	ops = append(ops, c.ops...)
	return append(ops, bytecode.ReturnOf(desc.Void))
}
