package bytecode

// Opcode is a single JVM instruction opcode.
type Opcode byte

// Constant opcodes
const (
	OpNop        Opcode = 0x00
	OpAconstNull Opcode = 0x01
	OpIconstM1   Opcode = 0x02
	OpIconst0    Opcode = 0x03
	OpIconst1    Opcode = 0x04
	OpIconst2    Opcode = 0x05
	OpIconst3    Opcode = 0x06
	OpIconst4    Opcode = 0x07
	OpIconst5    Opcode = 0x08
	OpLconst0    Opcode = 0x09
	OpLconst1    Opcode = 0x0a
	OpFconst0    Opcode = 0x0b
	OpFconst1    Opcode = 0x0c
	OpFconst2    Opcode = 0x0d
	OpDconst0    Opcode = 0x0e
	OpDconst1    Opcode = 0x0f
	OpBipush     Opcode = 0x10
	OpSipush     Opcode = 0x11
	OpLdc        Opcode = 0x12
	OpLdcW       Opcode = 0x13
	OpLdc2W      Opcode = 0x14
)

// Local variable opcodes. The compact forms (OpIload0 and friends) address
// slots 0-3 without an operand; slot n of a compact family is base+n.
const (
	OpIload   Opcode = 0x15
	OpLload   Opcode = 0x16
	OpFload   Opcode = 0x17
	OpDload   Opcode = 0x18
	OpAload   Opcode = 0x19
	OpIload0  Opcode = 0x1a
	OpLload0  Opcode = 0x1e
	OpFload0  Opcode = 0x22
	OpDload0  Opcode = 0x26
	OpAload0  Opcode = 0x2a
	OpAload1  Opcode = 0x2b
	OpAload2  Opcode = 0x2c
	OpAload3  Opcode = 0x2d
	OpIstore  Opcode = 0x36
	OpLstore  Opcode = 0x37
	OpFstore  Opcode = 0x38
	OpDstore  Opcode = 0x39
	OpAstore  Opcode = 0x3a
	OpIstore0 Opcode = 0x3b
	OpLstore0 Opcode = 0x3f
	OpFstore0 Opcode = 0x43
	OpDstore0 Opcode = 0x47
	OpAstore0 Opcode = 0x4b
)

// Stack manipulation opcodes
const (
	OpPop   Opcode = 0x57
	OpPop2  Opcode = 0x58
	OpDup   Opcode = 0x59
	OpDupX1 Opcode = 0x5a
	OpDupX2 Opcode = 0x5b
	OpDup2  Opcode = 0x5c
	OpSwap  Opcode = 0x5f
)

// Return opcodes
const (
	OpIreturn Opcode = 0xac
	OpLreturn Opcode = 0xad
	OpFreturn Opcode = 0xae
	OpDreturn Opcode = 0xaf
	OpAreturn Opcode = 0xb0
	OpReturn  Opcode = 0xb1
)

// Member access and object opcodes
const (
	OpGetstatic       Opcode = 0xb2
	OpPutstatic       Opcode = 0xb3
	OpGetfield        Opcode = 0xb4
	OpPutfield        Opcode = 0xb5
	OpInvokevirtual   Opcode = 0xb6
	OpInvokespecial   Opcode = 0xb7
	OpInvokestatic    Opcode = 0xb8
	OpInvokeinterface Opcode = 0xb9
	OpNew             Opcode = 0xbb
	OpAthrow          Opcode = 0xbf
	OpCheckcast       Opcode = 0xc0
	OpInstanceof      Opcode = 0xc1
)

// Effect is the fixed operand stack effect of an instruction, in slots.
type Effect struct {
	Pops   int
	Pushes int
}

// StackEffect returns the stack effect of an instruction whose effect does not
// depend on its operands. Returns nil for field, method, constant-pool and
// wide variable instructions, whose effect follows from a descriptor or type.
func StackEffect(op Opcode) *Effect {
	switch {
	case op == OpNop, op == OpReturn:
		return &Effect{}

	// Constants
	case op == OpAconstNull, op >= OpIconstM1 && op <= OpIconst5, op >= OpFconst0 && op <= OpFconst2:
		return &Effect{Pushes: 1}
	case op == OpLconst0, op == OpLconst1, op == OpDconst0, op == OpDconst1:
		return &Effect{Pushes: 2}
	case op == OpBipush, op == OpSipush:
		return &Effect{Pushes: 1}

	// Compact loads
	case op >= OpIload0 && op < OpLload0, op >= OpFload0 && op < OpDload0, op >= OpAload0 && op <= OpAload3:
		return &Effect{Pushes: 1}
	case op >= OpLload0 && op < OpFload0, op >= OpDload0 && op < OpAload0:
		return &Effect{Pushes: 2}

	// Compact stores
	case op >= OpIstore0 && op < OpLstore0, op >= OpFstore0 && op < OpDstore0, op >= OpAstore0 && op < OpAstore0+4:
		return &Effect{Pops: 1}
	case op >= OpLstore0 && op < OpFstore0, op >= OpDstore0 && op < OpAstore0:
		return &Effect{Pops: 2}

	// Stack
	case op == OpPop:
		return &Effect{Pops: 1}
	case op == OpPop2:
		return &Effect{Pops: 2}
	case op == OpDup:
		return &Effect{Pops: 1, Pushes: 2}
	case op == OpDupX1:
		return &Effect{Pops: 2, Pushes: 3}
	case op == OpDupX2:
		return &Effect{Pops: 3, Pushes: 4}
	case op == OpDup2:
		return &Effect{Pops: 2, Pushes: 4}
	case op == OpSwap:
		return &Effect{Pops: 2, Pushes: 2}

	// Returns and throw
	case op == OpIreturn, op == OpFreturn, op == OpAreturn, op == OpAthrow:
		return &Effect{Pops: 1}
	case op == OpLreturn, op == OpDreturn:
		return &Effect{Pops: 2}

	// Objects
	case op == OpNew:
		return &Effect{Pushes: 1}
	case op == OpCheckcast, op == OpInstanceof:
		return &Effect{Pops: 1, Pushes: 1}
	}

	return nil // operand dependent
}

var opcodeNames = map[Opcode]string{
	OpNop: "nop", OpAconstNull: "aconst_null", OpIconstM1: "iconst_m1",
	OpLconst0: "lconst_0", OpLconst1: "lconst_1", OpDconst0: "dconst_0", OpDconst1: "dconst_1",
	OpFconst0: "fconst_0", OpFconst1: "fconst_1", OpFconst2: "fconst_2",
	OpBipush: "bipush", OpSipush: "sipush", OpLdc: "ldc", OpLdcW: "ldc_w", OpLdc2W: "ldc2_w",
	OpIload: "iload", OpLload: "lload", OpFload: "fload", OpDload: "dload", OpAload: "aload",
	OpIstore: "istore", OpLstore: "lstore", OpFstore: "fstore", OpDstore: "dstore", OpAstore: "astore",
	OpPop: "pop", OpPop2: "pop2", OpDup: "dup", OpDupX1: "dup_x1", OpDupX2: "dup_x2", OpDup2: "dup2", OpSwap: "swap",
	OpIreturn: "ireturn", OpLreturn: "lreturn", OpFreturn: "freturn", OpDreturn: "dreturn",
	OpAreturn: "areturn", OpReturn: "return",
	OpGetstatic: "getstatic", OpPutstatic: "putstatic", OpGetfield: "getfield", OpPutfield: "putfield",
	OpInvokevirtual: "invokevirtual", OpInvokespecial: "invokespecial",
	OpInvokestatic: "invokestatic", OpInvokeinterface: "invokeinterface",
	OpNew: "new", OpAthrow: "athrow", OpCheckcast: "checkcast", OpInstanceof: "instanceof",
}

// Families of opcodes that encode a small operand in the opcode itself.
var compactFamilies = []struct {
	base  Opcode
	count Opcode
	name  string
}{
	{OpIconst0, 6, "iconst_"},
	{OpIload0, 4, "iload_"}, {OpLload0, 4, "lload_"}, {OpFload0, 4, "fload_"},
	{OpDload0, 4, "dload_"}, {OpAload0, 4, "aload_"},
	{OpIstore0, 4, "istore_"}, {OpLstore0, 4, "lstore_"}, {OpFstore0, 4, "fstore_"},
	{OpDstore0, 4, "dstore_"}, {OpAstore0, 4, "astore_"},
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	for _, f := range compactFamilies {
		if op >= f.base && op < f.base+f.count {
			return f.name + string(rune('0'+op-f.base))
		}
	}
	const digits = "0123456789abcdef"
	return "op_0x" + string([]byte{digits[op>>4], digits[op&0x0f]})
}

// Compact returns the operand-free form of a wide variable instruction for
// slots 0-3, e.g. Compact(OpAload, 1) == OpAload1.
func Compact(op Opcode, slot int) (Opcode, bool) {
	if slot < 0 || slot > 3 {
		return 0, false
	}
	switch op {
	case OpIload, OpLload, OpFload, OpDload, OpAload:
		return OpIload0 + (op-OpIload)*4 + Opcode(slot), true
	case OpIstore, OpLstore, OpFstore, OpDstore, OpAstore:
		return OpIstore0 + (op-OpIstore)*4 + Opcode(slot), true
	}
	return 0, false
}
