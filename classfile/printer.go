package classfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
)

// Printer is a bytecode.ClassSink that writes a readable listing of the
// visited members. Write errors are kept; the first one is returned by Err.
type Printer struct {
	w      io.Writer
	indent string
	err    error
}

var _ bytecode.ClassSink = (*Printer)(nil)

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: "    "}
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func member(kind string, mods desc.Modifiers, name, descriptor string) string {
	parts := []string{kind}
	if s := mods.String(); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(append(parts, name, descriptor), " ")
}

// VisitField implements bytecode.ClassSink.
func (p *Printer) VisitField(mods desc.Modifiers, name, descriptor string) bytecode.FieldSink {
	p.printf("%s\n", member("field", mods, name, descriptor))
	return fieldEnd{}
}

// VisitMethod implements bytecode.ClassSink.
func (p *Printer) VisitMethod(mods desc.Modifiers, name, descriptor string, exceptions []string) bytecode.MethodSink {
	line := member("method", mods, name, descriptor)
	if len(exceptions) > 0 {
		line += " throws " + strings.Join(exceptions, ", ")
	}
	p.printf("%s\n", line)
	return &methodPrinter{p: p}
}

// PrintClass writes the header of a decoded class followed by its members.
func (p *Printer) PrintClass(cf *ClassFile) error {
	p.printf("class %s extends %s (version %d.%d)\n", cf.Name, cf.Super, cf.Version.Major, cf.Version.Minor)
	for _, i := range cf.Interfaces {
		p.printf("%simplements %s\n", p.indent, i)
	}
	if err := cf.Replay(p); err != nil {
		return err
	}
	return p.err
}

type methodPrinter struct {
	p *Printer
}

func (m *methodPrinter) insn(op bytecode.Opcode, operands ...string) {
	line := op.String()
	if len(operands) > 0 {
		line += " " + strings.Join(operands, " ")
	}
	m.p.printf("%s%s\n", m.p.indent, line)
}

func (m *methodPrinter) VisitCode() {}

func (m *methodPrinter) VisitInsn(op bytecode.Opcode) { m.insn(op) }

func (m *methodPrinter) VisitIntInsn(op bytecode.Opcode, operand int) {
	m.insn(op, strconv.Itoa(operand))
}

func (m *methodPrinter) VisitVarInsn(op bytecode.Opcode, slot int) {
	m.insn(op, strconv.Itoa(slot))
}

func (m *methodPrinter) VisitTypeInsn(op bytecode.Opcode, internalName string) {
	m.insn(op, internalName)
}

func (m *methodPrinter) VisitFieldInsn(op bytecode.Opcode, owner, name, descriptor string) {
	m.insn(op, owner+"."+name, descriptor)
}

func (m *methodPrinter) VisitMethodInsn(op bytecode.Opcode, owner, name, descriptor string, _ bool) {
	m.insn(op, owner+"."+name+descriptor)
}

func (m *methodPrinter) VisitLdcInsn(value any) {
	m.insn(bytecode.OpLdc, FormatConstant(value))
}

func (m *methodPrinter) VisitMaxs(maxStack, maxLocals int) {
	m.p.printf("%smaxs stack=%d locals=%d\n", m.p.indent, maxStack, maxLocals)
}

func (m *methodPrinter) VisitEnd() {}

// FormatConstant renders an ldc operand.
func FormatConstant(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64) + "d"
	case desc.Type:
		return v.Descriptor() + ".class"
	}
	return fmt.Sprint(value)
}
