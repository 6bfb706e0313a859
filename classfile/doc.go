// Package classfile encodes and decodes class files.
//
// Writer and Printer are bytecode.ClassSink implementations: a drained
// synth.Context can be written straight into either, or into both through
// Tee. Parse reads a class file back, and ClassFile.Replay visits its
// members on any sink, decoding method code into instruction calls.
//
// Only the instruction subset produced by the bytecode package is
// supported. Branches, switches and stack map frames are not.
package classfile
