// Package classgen generates the synthetic support members of a JVM type
// while the type itself is being generated.
//
// # Architecture Overview
//
//	classgen/
//	├── desc/         Types, methods, fields, modifiers and class file versions
//	├── bytecode/     Emission operations, their stack sizes and the sink interfaces
//	├── initializer/  The type initializer chain
//	├── methodpool/   Per-method write decisions and body appenders
//	├── synth/        The generation context: field caches, accessors, auxiliary types, drain
//	├── classfile/    Class file writer, reader and textual printer
//	├── errors/       Structured error types
//	└── cmd/classgen  Command line demo
//
// # Quick Start
//
//	ctx := synth.New(desc.ObjectType("com/example/Foo"), synth.WithVersion(desc.V11))
//
//	field, err := ctx.Cache(bytecode.TextConstant("hello"), desc.String)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bridge, err := ctx.RegisterAccessorFor(bytecode.Special(superMethod, superType))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := classfile.NewWriter(ctx.Instrumented(), superType, ctx.Version())
//	if err := ctx.Drain(w, methodpool.Empty, synth.NoInjectedCode); err != nil {
//	    log.Fatal(err)
//	}
//	data, err := w.Bytes()
//
// Registrations are memoized and drained in registration order. After Drain
// the context rejects every registration with an illegal state error.
//
// # Errors
//
// Failures are *errors.Error values carrying a phase and a kind. Match them
// by kind with the sentinels:
//
//	if errors.Is(err, classerrors.ErrIllegalState) {
//	    // registered after drain
//	}
//
// # Thread Safety
//
// A Context has no internal locking and must be owned by the single pass
// generating its type. Generate several types concurrently with one Context
// per type.
package classgen
