// Package introspect turns Go callables into schema parameter lists.
//
// Two hosts are supported:
//
//   - Source: ParseSource and ParseFile read function declarations with
//     go/parser, pairing each parameter list with its doc comment.
//   - Reflection: FromStruct reads the fields of a tool input struct.
//
// Go parameters have no default values, so the source adapter treats a
// variadic final parameter as optional. A leading context.Context
// parameter is skipped.
//
// Callables that cannot be described (unnamed or duplicate parameters,
// non-struct inputs, missing functions) yield errors wrapping
// ErrUnnamedParam, ErrDuplicateParam, ErrNotStruct or ErrNotFound.
package introspect
