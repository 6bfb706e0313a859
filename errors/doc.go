// Package errors provides structured error types for the classgen module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the generated type's internal name, the member involved,
// a detail message and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindIllegalState).
//		Type("com/example/Foo").
//		Member("cachedValue$0").
//		Detail("context already drained").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IllegalState(errors.PhaseRegister, "com/example/Foo", "context already drained")
//	err := errors.Materialization("com/example/Foo", "Foo$auxiliary$0", cause)
//
// Category checks that ignore the phase use the sentinels:
//
//	if errors.Is(err, classerrors.ErrIllegalState) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
