// Package bytecode provides composable code emission operations.
//
// An Op appends instructions to a MethodSink and reports its effect on the
// operand stack as a Size: the net Impact and the Maximal depth reached.
// Sequencing two operations a then b yields
//
//	Impact  = a.Impact + b.Impact
//	Maximal = max(a.Maximal, a.Impact + b.Maximal)
//
// which is what Compound and Size.Aggregate compute.
//
// # Operations
//
//	Load, Store, LoadThis, LoadArguments   local variables
//	GetField, PutField                     static and instance fields
//	Invoke, Special                        method invocation
//	ReturnOf                               typed return
//	IntegerConstant, LongConstant, ...     constants
//	Duplicate, Remove                      stack manipulation
//
// # Context
//
// Ops are applied against a Context, the per-type generation context that
// owns synthetic members (cached fields, accessor methods, auxiliary types).
// The synth package provides the implementation.
//
// # Sinks
//
// ClassSink and MethodSink are the destination of emitted members and
// instructions. The classfile package provides a binary writer and a
// textual printer.
package bytecode
