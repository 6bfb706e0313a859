// Package synth implements the generation context of a type under
// construction.
//
// While the members of a type are generated, their code producers call into
// a Context to obtain synthetic support members:
//
//	Cache               a static field computed once in the type initializer
//	RegisterAccessorFor a bridge method performing a special invocation
//	RegisterGetterFor   a method reading a field
//	RegisterSetterFor   a method writing a field
//	Register            a materialized auxiliary type
//
// Every registration is memoized: equal requests yield the member created
// for the first one. When all members are generated, Drain writes the
// combined type initializer and every synthetic member to a ClassSink in
// registration order, after which all registration fails.
//
// Example:
//
//	ctx := synth.New(desc.ObjectType("com/example/Foo"))
//	getter, err := ctx.RegisterGetterFor(field)
//	...
//	w := classfile.NewWriter(ctx.Instrumented(), desc.Object, ctx.Version())
//	err = ctx.Drain(w, methodpool.Empty, synth.NoInjectedCode)
package synth
