// Package member resolves the metadata the derive synthesizers consume.
//
// It supplies, for a struct type, the ordered list of eligible fields with
// per-operation opt-outs read from `derive` struct tags, and it resolves
// constructors and static functions by exact parameter-type match.
//
// # Tags
//
//	type Account struct {
//	    ID      string
//	    Balance int64
//	    Cache   []byte `derive:"-"`              // excluded everywhere
//	    Note    string `derive:"nohash,noeq"`    // formatted and ordered only
//	    Owner   string `derive:"field=owner"`    // serialized as "owner"
//	}
//
// # Related Packages
//
//   - github.com/signadot/derive - Synthesizers
//   - github.com/signadot/derive/codegen - Compile-time derivation
package member
