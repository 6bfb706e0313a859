package synth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wippyai/classgen/desc"
)

// AuxiliaryNaming derives the internal name of the n-th auxiliary type of
// instrumented. Names must differ for different n.
type AuxiliaryNaming interface {
	AuxiliaryName(instrumented desc.Type, n int) string
}

// AuxiliaryNamingFunc adapts a function to AuxiliaryNaming.
type AuxiliaryNamingFunc func(instrumented desc.Type, n int) string

func (f AuxiliaryNamingFunc) AuxiliaryName(instrumented desc.Type, n int) string {
	return f(instrumented, n)
}

// SequentialNaming names auxiliary types <Instrumented>$auxiliary$<n>.
// Output is reproducible across runs.
type SequentialNaming struct{}

func (SequentialNaming) AuxiliaryName(instrumented desc.Type, n int) string {
	return fmt.Sprintf("%s$%s$%d", instrumented.InternalName(), AuxiliarySuffix, n)
}

// RandomNaming names auxiliary types <Instrumented>$auxiliary$<hex> with a
// random suffix, for types that are loaded next to earlier generations of
// the same instrumented type.
type RandomNaming struct{}

func (RandomNaming) AuxiliaryName(instrumented desc.Type, _ int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return instrumented.InternalName() + "$" + AuxiliarySuffix + "$" + suffix
}

// NamingByName returns the strategy registered under name ("sequential" or
// "random").
func NamingByName(name string) (AuxiliaryNaming, bool) {
	switch strings.ToLower(name) {
	case "", "sequential":
		return SequentialNaming{}, true
	case "random":
		return RandomNaming{}, true
	}
	return nil, false
}

func accessorName(base string, n int) string {
	return fmt.Sprintf("%s$%s$%d", base, AccessorSuffix, n)
}

func fieldAccessorName(field, kind string, n int) string {
	return fmt.Sprintf("%s$%s$%s$%d", field, AccessorSuffix, kind, n)
}

func fieldCacheName(n int) string {
	return fmt.Sprintf("%s$%d", FieldCachePrefix, n)
}
