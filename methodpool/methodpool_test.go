package methodpool_test

import (
	"errors"
	"testing"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/desc"
	classerrors "github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/internal/sinktest"
	"github.com/wippyai/classgen/methodpool"
)

var (
	owner = desc.ObjectType("com/example/Owner")
	ctx   = sinktest.NewContext(owner, desc.V1_8)
)

func TestSortString(t *testing.T) {
	tests := map[methodpool.Sort]string{
		methodpool.SortSkip:      "skip",
		methodpool.SortImplement: "implement",
		methodpool.SortAbstract:  "abstract",
		methodpool.Sort(9):       "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Sort(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestSkip(t *testing.T) {
	rec := sinktest.NewRecorder()
	e := methodpool.Skip()
	if e.Sort() != methodpool.SortSkip {
		t.Fatalf("Sort = %s", e.Sort())
	}
	if err := e.Apply(rec, ctx, desc.TypeInitializerOf(owner)); err != nil {
		t.Fatal(err)
	}
	if !rec.Empty() {
		t.Errorf("skip wrote %v", rec.Members)
	}
}

func TestImplement(t *testing.T) {
	m := &desc.Method{
		Declaring:  owner,
		Name:       "sum",
		Parameters: []desc.Type{desc.Long, desc.Long},
		Return:     desc.Long,
		Modifiers:  desc.AccPublic | desc.AccStatic,
		Exceptions: []desc.Type{desc.Throwable},
	}
	body := methodpool.Simple(
		bytecode.Load(desc.Long, 0),
		bytecode.Load(desc.Long, 2),
		bytecode.Remove{Type: desc.Long},
		bytecode.ReturnOf(desc.Long),
	)
	rec := sinktest.NewRecorder()
	if err := methodpool.Implement(body).Apply(rec, ctx, m); err != nil {
		t.Fatal(err)
	}
	got := rec.Methods[0]
	if got.Name != "sum" || got.Descriptor != "(JJ)J" || got.Modifiers != m.Modifiers {
		t.Errorf("method = %s %s %s", got.Modifiers, got.Name, got.Descriptor)
	}
	if len(got.Exceptions) != 1 || got.Exceptions[0] != "java/lang/Throwable" {
		t.Errorf("exceptions = %v", got.Exceptions)
	}
	if !got.Code || !got.Maxs || !got.Ended {
		t.Errorf("incomplete visit: code=%v maxs=%v end=%v", got.Code, got.Maxs, got.Ended)
	}
	if got.MaxStack != 4 || got.MaxLocals != 4 {
		t.Errorf("maxs = (%d, %d), want (4, 4)", got.MaxStack, got.MaxLocals)
	}
}

func TestPrepend(t *testing.T) {
	clinit := desc.TypeInitializerOf(owner)
	f := desc.Field{Declaring: owner, Name: "f", Type: desc.Long, Modifiers: desc.AccStatic}
	prefix := methodpool.Simple(bytecode.LongConstant(1), bytecode.PutField(f))
	user := methodpool.Simple(bytecode.IntegerConstant(1), bytecode.Remove{Type: desc.Int}, bytecode.ReturnOf(desc.Void))

	tests := []struct {
		name  string
		entry methodpool.Entry
		want  []bytecode.Opcode
	}{
		{"onto implement", methodpool.Implement(user),
			[]bytecode.Opcode{bytecode.OpLconst1, bytecode.OpPutstatic, bytecode.OpIconst1, bytecode.OpPop, bytecode.OpReturn}},
		{"onto skip", methodpool.Skip(),
			[]bytecode.Opcode{bytecode.OpLconst1, bytecode.OpPutstatic}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry.Prepend(prefix)
			if e.Sort() != methodpool.SortImplement {
				t.Fatalf("Sort = %s", e.Sort())
			}
			rec := sinktest.NewRecorder()
			if err := e.Apply(rec, ctx, clinit); err != nil {
				t.Fatal(err)
			}
			m := rec.Methods[0]
			if len(m.Insns) != len(tt.want) {
				t.Fatalf("got %v", m.Listing())
			}
			for i, op := range tt.want {
				if m.Insns[i].Op != op {
					t.Errorf("insn %d = %s, want %s", i, m.Insns[i].Op, op)
				}
			}
			if m.MaxStack != 2 {
				t.Errorf("MaxStack = %d, want 2", m.MaxStack)
			}
		})
	}
}

func TestAbstract(t *testing.T) {
	m := &desc.Method{Declaring: owner, Name: "run", Return: desc.Void, Modifiers: desc.AccPublic}
	rec := sinktest.NewRecorder()
	if err := methodpool.Abstract().Apply(rec, ctx, m); err != nil {
		t.Fatal(err)
	}
	got := rec.Methods[0]
	if !got.Modifiers.Has(desc.AccAbstract) || got.Code || !got.Ended {
		t.Errorf("abstract method = %+v", got)
	}
}

func TestApplyFailure(t *testing.T) {
	m := &desc.Method{Declaring: owner, Name: "broken", Return: desc.Void}
	rec := sinktest.NewRecorder()
	err := methodpool.Implement(methodpool.Simple(bytecode.Illegal{})).Apply(rec, ctx, m)
	if !errors.Is(err, classerrors.ErrInvalidOperation) {
		t.Fatalf("error = %v", err)
	}
	var ce *classerrors.Error
	if !errors.As(err, &ce) || ce.Member != "broken()V" || ce.Type != owner.InternalName() {
		t.Errorf("error context = %+v", ce)
	}
	if rec.Methods[0].Maxs {
		t.Error("failed body reported maxs")
	}
}

func TestCompoundMergesSizes(t *testing.T) {
	m := &desc.Method{Declaring: owner, Name: "m", Parameters: []desc.Type{desc.Double}, Return: desc.Void}
	a := methodpool.AppenderFunc(func(bytecode.MethodSink, bytecode.Context, *desc.Method) (methodpool.AppenderSize, error) {
		return methodpool.AppenderSize{MaxStack: 5, LocalVariables: 1}, nil
	})
	b := methodpool.AppenderFunc(func(bytecode.MethodSink, bytecode.Context, *desc.Method) (methodpool.AppenderSize, error) {
		return methodpool.AppenderSize{MaxStack: 2, LocalVariables: 7}, nil
	})
	size, err := methodpool.Compound{a, b}.Apply(sinktest.NewMethodRecorder(), ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	if size != (methodpool.AppenderSize{MaxStack: 5, LocalVariables: 7}) {
		t.Errorf("size = %+v", size)
	}
}

func TestMapPool(t *testing.T) {
	run := &desc.Method{Declaring: owner, Name: "run", Return: desc.Void}
	clinit := desc.TypeInitializerOf(owner)
	pool := methodpool.MapPool{}.Set(run, methodpool.Abstract())

	if got := pool.Target(run).Sort(); got != methodpool.SortAbstract {
		t.Errorf("known method sort = %s", got)
	}
	if got := pool.Target(clinit).Sort(); got != methodpool.SortSkip {
		t.Errorf("unknown method sort = %s", got)
	}
	if got := methodpool.Empty.Target(clinit).Sort(); got != methodpool.SortSkip {
		t.Errorf("empty pool sort = %s", got)
	}
}
