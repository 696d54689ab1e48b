// Package derive synthesizes structural operations for Go struct types.
//
// Each synthesizer inspects a type's fields once and returns a function
// that is pure and safe for concurrent use:
//
//	hash, err := derive.Hash[Point]()
//	eq, err := derive.Equal[Point]()
//	cmp, err := derive.Compare[Point]()
//	str, err := derive.Format[Point]()
//
// A target is a struct type, with value semantics, or a pointer to a
// struct type, with reference semantics: identity fast paths and nil
// handling apply only to the latter. Only exported fields participate.
//
// # Exclusions
//
// A field may opt out of individual operations with a struct tag:
//
//	type Session struct {
//	    ID    string
//	    Seen  time.Time `derive:"nohash,noeq,noord"`
//	    Cache []byte    `derive:"-"`
//	}
//
// or at synthesis time with Exclude. Exclusions are not checked against
// each other: a field that distinguishes values under equality must not be
// excluded from hashing.
//
// # Construction and Invocation
//
// BuildConstructor and the Ctor family resolve registered constructors by
// exact parameter types; BuildStaticCall and the Func family resolve
// registered functions and method expressions. See package member for
// registration.
//
// # Serialization
//
// Extract and Inject move fields through the Sink and Source interfaces,
// implemented by package serial.
//
// For types known at compile time, see package codegen and the derive-gen
// command, which generate equivalent methods.
package derive
