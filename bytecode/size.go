package bytecode

import "github.com/wippyai/classgen/desc"

// Size is the operand stack effect of applying an operation.
//
// Impact is the net change in slots. Maximal is the largest depth reached
// above the starting depth while the operation runs.
type Size struct {
	Impact  int
	Maximal int
}

// Aggregate returns the size of applying s followed by next.
func (s Size) Aggregate(next Size) Size {
	return Size{
		Impact:  s.Impact + next.Impact,
		Maximal: max(s.Maximal, s.Impact+next.Maximal),
	}
}

// Increasing returns the size of pushing a value of the given stack size.
func Increasing(s desc.StackSize) Size {
	return Size{Impact: s.Size(), Maximal: s.Size()}
}

// Decreasing returns the size of popping a value of the given stack size.
func Decreasing(s desc.StackSize) Size {
	return Size{Impact: -s.Size()}
}
