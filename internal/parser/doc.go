// Package parser builds the scope tree of an s-Java file.
//
// The grammar is line oriented: every physical line is classified by the
// lexer and turned into at most one statement. A stack of open scopes,
// seeded with the global scope, tracks where statements go:
//
//   - method and if/while headers push a new scope;
//   - a "}" line pops it, after checking that a method body ends in return;
//   - end of input with open scopes is an error.
//
// Values stay raw text; typing them is left to package sema. The first
// structural error stops the parse and is returned as *diag.Error.
package parser
