package sinktest

import (
	"fmt"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
)

// Simulate replays the recorded instructions of m against an empty operand
// stack and returns the deepest stack reached and the final depth.
func Simulate(m *Method) (maxDepth, depth int, err error) {
	for i, insn := range m.Insns {
		pops, pushes, err := effectOf(insn)
		if err != nil {
			return 0, 0, fmt.Errorf("insn %d (%s): %w", i, insn, err)
		}
		depth -= pops
		if depth < 0 {
			return 0, 0, fmt.Errorf("insn %d (%s): stack underflow", i, insn)
		}
		depth += pushes
		maxDepth = max(maxDepth, depth)
	}
	return maxDepth, depth, nil
}

func effectOf(insn Insn) (pops, pushes int, err error) {
	switch insn.Op {
	case bytecode.OpLdc, bytecode.OpLdcW, bytecode.OpLdc2W:
		switch insn.Value.(type) {
		case int64, float64:
			return 0, 2, nil
		}
		return 0, 1, nil
	case bytecode.OpIload, bytecode.OpFload, bytecode.OpAload:
		return 0, 1, nil
	case bytecode.OpLload, bytecode.OpDload:
		return 0, 2, nil
	case bytecode.OpIstore, bytecode.OpFstore, bytecode.OpAstore:
		return 1, 0, nil
	case bytecode.OpLstore, bytecode.OpDstore:
		return 2, 0, nil
	case bytecode.OpGetstatic, bytecode.OpPutstatic, bytecode.OpGetfield, bytecode.OpPutfield:
		size, err := slotsOf(insn.Descriptor)
		if err != nil {
			return 0, 0, err
		}
		switch insn.Op {
		case bytecode.OpGetstatic:
			return 0, size, nil
		case bytecode.OpPutstatic:
			return size, 0, nil
		case bytecode.OpGetfield:
			return 1, size, nil
		}
		return 1 + size, 0, nil
	case bytecode.OpInvokevirtual, bytecode.OpInvokespecial, bytecode.OpInvokestatic, bytecode.OpInvokeinterface:
		params, ret, err := methodSlots(insn.Descriptor)
		if err != nil {
			return 0, 0, err
		}
		if insn.Op != bytecode.OpInvokestatic {
			params++
		}
		return params, ret, nil
	}
	if e := bytecode.StackEffect(insn.Op); e != nil {
		return e.Pops, e.Pushes, nil
	}
	return 0, 0, fmt.Errorf("no stack effect for %s", insn.Op)
}

// slotsOf returns the stack slots of a single field descriptor.
func slotsOf(descriptor string) (int, error) {
	t, err := desc.ParseDescriptor(descriptor)
	if err != nil {
		return 0, err
	}
	return t.StackSize().Size(), nil
}

// methodSlots returns the parameter and return slots of a method descriptor.
func methodSlots(descriptor string) (params, ret int, err error) {
	ps, r, err := desc.ParseMethodDescriptor(descriptor)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range ps {
		params += p.StackSize().Size()
	}
	return params, r.StackSize().Size(), nil
}
