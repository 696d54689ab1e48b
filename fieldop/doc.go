// Package fieldop provides the default per-field operations used by the
// derive synthesizers: equality, three-way comparison, 32-bit hashing and
// text rendering for values of any Go type.
//
// A type's own methods take precedence:
//
//	Equal(T) bool
//	Compare(T) int
//	Hash() int32
//	String() string
//
// Otherwise the operation follows the kind. Basic kinds use the language's
// own comparison; composite kinds are compared structurally, with nil
// ordering before everything else. Hashes are stable across processes.
package fieldop
