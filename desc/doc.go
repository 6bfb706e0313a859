// Package desc describes types, methods and fields as they appear in class files.
//
// These descriptions are the resolved metadata that code generation operates on:
// internal names, descriptors, access flags and operand stack sizes. Nothing in
// this package parses or loads existing classes; callers construct descriptions
// directly.
//
//	owner := desc.ObjectType("com/example/Foo")
//	m := &desc.Method{
//	    Declaring:  owner,
//	    Name:       "greet",
//	    Parameters: []desc.Type{desc.String},
//	    Return:     desc.String,
//	}
//	m.Descriptor() // "(Ljava/lang/String;)Ljava/lang/String;"
package desc
