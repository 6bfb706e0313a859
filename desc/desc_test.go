package desc

import "testing"

func TestType_StackSize(t *testing.T) {
	tests := []struct {
		typ  Type
		want StackSize
	}{
		{Void, StackZero},
		{Boolean, StackSingle},
		{Int, StackSingle},
		{Float, StackSingle},
		{Long, StackDouble},
		{Double, StackDouble},
		{String, StackSingle},
		{ArrayOf(Long), StackSingle},
	}

	for _, tt := range tests {
		t.Run(tt.typ.Descriptor(), func(t *testing.T) {
			if got := tt.typ.StackSize(); got != tt.want {
				t.Errorf("StackSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestType_Names(t *testing.T) {
	s := ObjectType("com/example/Foo")
	if s.Descriptor() != "Lcom/example/Foo;" {
		t.Errorf("Descriptor() = %q", s.Descriptor())
	}
	if s.Name() != "com.example.Foo" {
		t.Errorf("Name() = %q", s.Name())
	}
	if s.SimpleName() != "Foo" {
		t.Errorf("SimpleName() = %q", s.SimpleName())
	}
	if !s.IsReference() || s.IsPrimitive() {
		t.Error("object type should be a reference")
	}
	arr := ArrayOf(s)
	if arr.Descriptor() != "[Lcom/example/Foo;" || arr.InternalName() != arr.Descriptor() {
		t.Errorf("array descriptor = %q, internal = %q", arr.Descriptor(), arr.InternalName())
	}
	if ObjectType("com/example/Foo") != s {
		t.Error("equal descriptions should compare equal")
	}
}

func TestMethod_Descriptor(t *testing.T) {
	m := &Method{
		Declaring:  ObjectType("Foo"),
		Name:       "bar",
		Parameters: []Type{Int, Long, String},
		Return:     Void,
		Exceptions: []Type{ObjectType("java/io/IOException")},
	}

	if got := m.Descriptor(); got != "(IJLjava/lang/String;)V" {
		t.Errorf("Descriptor() = %q", got)
	}
	if got := m.Signature(); got != "bar(IJLjava/lang/String;)V" {
		t.Errorf("Signature() = %q", got)
	}
	if names := m.ExceptionNames(); len(names) != 1 || names[0] != "java/io/IOException" {
		t.Errorf("ExceptionNames() = %v", names)
	}
}

func TestMethod_Slots(t *testing.T) {
	m := &Method{Name: "m", Parameters: []Type{Int, Long, String}, Return: Void}

	if m.StackSize() != 5 {
		t.Errorf("instance StackSize() = %d, want 5", m.StackSize())
	}
	offsets := []int{1, 2, 4}
	for i, want := range offsets {
		if got := m.ParameterOffset(i); got != want {
			t.Errorf("ParameterOffset(%d) = %d, want %d", i, got, want)
		}
	}

	m.Modifiers = AccStatic
	if m.StackSize() != 4 {
		t.Errorf("static StackSize() = %d, want 4", m.StackSize())
	}
	if m.ParameterOffset(2) != 3 {
		t.Errorf("static ParameterOffset(2) = %d, want 3", m.ParameterOffset(2))
	}
	if (&Method{}).ExceptionNames() != nil {
		t.Error("expected nil exception names")
	}
}

func TestTypeInitializerOf(t *testing.T) {
	m := TypeInitializerOf(ObjectType("Foo"))
	if !m.IsTypeInitializer() || !m.IsStatic() {
		t.Error("type initializer must be static <clinit>")
	}
	if m.Descriptor() != "()V" {
		t.Errorf("Descriptor() = %q", m.Descriptor())
	}
}

func TestVersion(t *testing.T) {
	if !V1_8.AtLeast(V1_5) || V1_4.AtLeast(V1_5) || !V1_5.AtLeast(V1_5) {
		t.Error("AtLeast ordering broken")
	}
	if !V1_4.AtLeast(V1_1) {
		t.Error("1.4 should be newer than 1.1")
	}

	tests := []struct {
		release int
		want    Version
	}{
		{1, V1_1},
		{4, V1_4},
		{5, V1_5},
		{8, V1_8},
		{17, V17},
		{21, V21},
	}
	for _, tt := range tests {
		got, err := ForJava(tt.release)
		if err != nil {
			t.Fatalf("ForJava(%d): %v", tt.release, err)
		}
		if got != tt.want {
			t.Errorf("ForJava(%d) = %v, want %v", tt.release, got, tt.want)
		}
	}
	if _, err := ForJava(0); err == nil {
		t.Error("expected error for release 0")
	}
}

func TestModifiers_String(t *testing.T) {
	m := AccPublic | AccStatic | AccFinal | AccSynthetic
	if got := m.String(); got != "public static final synthetic" {
		t.Errorf("String() = %q", got)
	}
	if !m.Has(AccStatic|AccFinal) || m.Has(AccPrivate) {
		t.Error("Has() mismatch")
	}
}

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"I", Int},
		{"V", Void},
		{"Ljava/lang/String;", String},
		{"[J", ArrayOf(Long)},
		{"[[Ljava/lang/Object;", ArrayOf(ArrayOf(Object))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDescriptor(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseDescriptor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "Q", "L;", "Ljava/lang/String", "II", "[V", "[", "()V"} {
		if _, err := ParseDescriptor(bad); err == nil {
			t.Errorf("ParseDescriptor(%q) succeeded", bad)
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	params, ret, err := ParseMethodDescriptor("(IJ[Ljava/lang/String;)Ljava/lang/Object;")
	if err != nil {
		t.Fatal(err)
	}
	want := []Type{Int, Long, ArrayOf(String)}
	if len(params) != len(want) {
		t.Fatalf("params = %v", params)
	}
	for i := range want {
		if params[i] != want[i] {
			t.Errorf("param %d = %v, want %v", i, params[i], want[i])
		}
	}
	if ret != Object {
		t.Errorf("return = %v", ret)
	}

	if params, ret, err = ParseMethodDescriptor("()V"); err != nil || len(params) != 0 || ret != Void {
		t.Errorf("()V = %v, %v, %v", params, ret, err)
	}

	for _, bad := range []string{"", "I", "(I", "(V)V", "(I)", "(I)VV"} {
		if _, _, err := ParseMethodDescriptor(bad); err == nil {
			t.Errorf("ParseMethodDescriptor(%q) succeeded", bad)
		}
	}
}
