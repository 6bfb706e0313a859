package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wippyai/classgen/classfile"
	"github.com/wippyai/classgen/desc"
)

func testConfig() *config {
	return &config{Type: "com/example/Demo", Java: 8, Naming: "sequential", Output: "."}
}

func TestSynthesize(t *testing.T) {
	s, err := synthesize(testConfig(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	cf, err := classfile.Parse(s.class)
	if err != nil {
		t.Fatal(err)
	}
	if cf.Name != "com/example/Demo" || cf.Version != desc.V1_8 {
		t.Errorf("class %s version %v", cf.Name, cf.Version)
	}
	var methods []string
	for _, m := range cf.Methods {
		methods = append(methods, m.Name)
	}
	want := []string{"<clinit>", "counter$accessor$get$0", "counter$accessor$set$0", "toString$accessor$0"}
	if !slices.Equal(methods, want) {
		t.Errorf("methods = %v, want %v", methods, want)
	}
	if len(cf.Fields) != 4 {
		t.Errorf("fields = %d, want 4", len(cf.Fields))
	}

	if len(s.auxiliaries) != 1 {
		t.Fatalf("auxiliaries = %d", len(s.auxiliaries))
	}
	aux, err := classfile.Parse(s.auxiliaries[0].Bytes)
	if err != nil {
		t.Fatal(err)
	}
	if aux.Name != "com/example/Demo$auxiliary$0" {
		t.Errorf("auxiliary name = %s", aux.Name)
	}
	m := aux.Method("toString")
	if m == nil {
		t.Fatal("auxiliary has no toString delegate")
	}
	if m.Descriptor != "(Lcom/example/Demo;)Ljava/lang/String;" || m.MaxStack != 1 || m.MaxLocals != 1 {
		t.Errorf("delegate = %s maxs (%d, %d)", m.Descriptor, m.MaxStack, m.MaxLocals)
	}
}

func TestSynthesizeOldVersion(t *testing.T) {
	cfg := testConfig()
	cfg.Java = 1
	s, err := synthesize(cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	cf, err := classfile.Parse(s.class)
	if err != nil {
		t.Fatal(err)
	}
	if cf.Version != desc.V1_1 {
		t.Errorf("version = %v", cf.Version)
	}
}

func TestDump(t *testing.T) {
	s, err := synthesize(testConfig(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := dump(&buf, s); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"com/example/Demo (",
		"method static <clinit> ()V",
		`ldc "generated by classgen"`,
		"getstatic java/lang/Integer.TYPE Ljava/lang/Class;",
		"class com/example/Demo$auxiliary$0 extends java/lang/Object",
		"invokevirtual com/example/Demo.toString$accessor$0()Ljava/lang/String;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestWriteClassesAndInspect(t *testing.T) {
	s, err := synthesize(testConfig(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	paths, err := writeClasses(dir, s)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "com", "example", "Demo.class"),
		filepath.Join(dir, "com", "example", "Demo$auxiliary$0.class"),
	}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}

	listing, err := inspect(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(listing, "class com/example/Demo extends java/lang/Object (version 52.0)\n") {
		t.Errorf("listing = %q", listing)
	}

	if _, err := inspect(filepath.Join(dir, "missing.class")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "classgen.yaml")
	yaml := "type: org.acme.Widget\njava: 17\nnaming: random\noutput: build/classes\n"
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	cmd, _, err := root.Find([]string{"write"})
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.ParseFlags([]string{"--java", "11"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd, file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != "org/acme/Widget" {
		t.Errorf("Type = %q", cfg.Type)
	}
	if cfg.Java != 11 {
		t.Errorf("Java = %d, flag should override file", cfg.Java)
	}
	if cfg.Naming != "random" || cfg.Output != "build/classes" {
		t.Errorf("Naming = %q Output = %q", cfg.Naming, cfg.Output)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CLASSGEN_TYPE", "org.acme.FromEnv")
	t.Setenv("CLASSGEN_NAMING", "bogus")

	cmd := newDumpCommand()
	_, err := loadConfig(cmd, "")
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected naming error, got %v", err)
	}

	t.Setenv("CLASSGEN_NAMING", "sequential")
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Type != "org/acme/FromEnv" || cfg.Java != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestSplitMembers(t *testing.T) {
	listing := "class a/B extends java/lang/Object (version 52.0)\n" +
		"    implements java/lang/Runnable\n" +
		"field static x I\n" +
		"method static <clinit> ()V\n" +
		"    iconst_1\n" +
		"    putstatic a/B.x I\n" +
		"    return\n"

	got := splitMembers(listing)
	if len(got) != 3 {
		t.Fatalf("sections = %d", len(got))
	}
	if got[0].title != "class a/B extends java/lang/Object (version 52.0)" || len(got[0].body) != 1 {
		t.Errorf("header = %+v", got[0])
	}
	if got[1].title != "field static x I" || len(got[1].body) != 0 {
		t.Errorf("field = %+v", got[1])
	}
	if !slices.Equal(got[2].body, []string{"iconst_1", "putstatic a/B.x I", "return"}) {
		t.Errorf("method body = %v", got[2].body)
	}
	if len(splitMembers("")) != 0 {
		t.Error("empty listing has sections")
	}
}
