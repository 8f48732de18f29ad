// Package sema validates a parsed s-Java program.
//
// Global statements are checked first, then each method body in
// declaration order. Variable state lives in a symbols.Env built for the
// run; the scope tree is only read. An assignment records the new value in
// the scope it occurs in, so initialising an outer variable inside a block
// is forgotten when the block ends.
//
// Identifier values in declarations and assignments are typed by the
// variable's declared type. Call arguments and if/while conditions use the
// type of the value it currently holds.
package sema
