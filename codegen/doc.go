// Package codegen generates derived methods for annotated struct types.
//
// A struct opts in with a derive directive in its doc comment:
//
//	//derive:hash,eq,ord
//	type Point struct {
//		X, Y int
//		Label string `derive:"noeq,nohash,noord"`
//	}
//
// The directive names the operations to emit:
//
//   - hash: Hash() int32
//   - eq: Equal(T) bool and EqualAny(any) bool
//   - ord: Compare(T) int
//   - text: String() string
//   - serial: ExtractFields(derive.Sink) error and InjectFields(derive.Source) error
//   - all: every operation above
//
// The ptr flag declares the methods on *T and gives them reference
// semantics: a nil receiver hashes to the seed and equals only nil.
//
// Generated methods compute the same results as the functions synthesized
// at run time by package derive, so values may be hashed or compared by
// either without disagreement. Field tags are read from the same derive
// struct tag.
package codegen
