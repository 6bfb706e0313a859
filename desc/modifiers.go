package desc

import "strings"

// Modifiers is a class file access flag set.
type Modifiers uint16

// Access flags as encoded in class files.
const (
	AccPublic       Modifiers = 0x0001
	AccPrivate      Modifiers = 0x0002
	AccProtected    Modifiers = 0x0004
	AccStatic       Modifiers = 0x0008
	AccFinal        Modifiers = 0x0010
	AccSuper        Modifiers = 0x0020 // classes
	AccSynchronized Modifiers = 0x0020 // methods
	AccVolatile     Modifiers = 0x0040 // fields
	AccBridge       Modifiers = 0x0040 // methods
	AccTransient    Modifiers = 0x0080 // fields
	AccVarargs      Modifiers = 0x0080 // methods
	AccNative       Modifiers = 0x0100
	AccInterface    Modifiers = 0x0200
	AccAbstract     Modifiers = 0x0400
	AccStrict       Modifiers = 0x0800
	AccSynthetic    Modifiers = 0x1000
	AccAnnotation   Modifiers = 0x2000
	AccEnum         Modifiers = 0x4000
)

// Has reports whether all flags in m are set.
func (m Modifiers) Has(flags Modifiers) bool {
	return m&flags == flags
}

// IsStatic reports whether AccStatic is set.
func (m Modifiers) IsStatic() bool {
	return m&AccStatic != 0
}

// String renders the member flags in source order.
func (m Modifiers) String() string {
	var parts []string
	names := []struct {
		flag Modifiers
		name string
	}{
		{AccPublic, "public"},
		{AccPrivate, "private"},
		{AccProtected, "protected"},
		{AccStatic, "static"},
		{AccFinal, "final"},
		{AccAbstract, "abstract"},
		{AccNative, "native"},
		{AccSynthetic, "synthetic"},
	}
	for _, n := range names {
		if m&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}
