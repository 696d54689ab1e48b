package derive

import "strings"

// NormalizeName returns the property name of a synthesized backing field
// name of the form <Prop>suffix, and raw unchanged otherwise.
//
// Go field names never take that form, but names handed over by foreign
// resolvers or read back from serialized data may.
func NormalizeName(raw string) string {
	rest, ok := strings.CutPrefix(raw, "<")
	if !ok {
		return raw
	}
	prop, _, ok := strings.Cut(rest, ">")
	if !ok || prop == "" {
		return raw
	}
	return prop
}
