package fieldop

import (
	"reflect"

	gocmp "github.com/google/go-cmp/cmp"
)

// composite values are compared structurally, unexported fields included.
var exportAll = gocmp.Exporter(func(reflect.Type) bool { return true })

func buildEqual(t reflect.Type) func(a, b reflect.Value) bool {
	if m, ok := method(t, "Equal", []reflect.Type{t}, boolType); ok {
		return func(a, b reflect.Value) bool {
			if !a.CanInterface() || !b.CanInterface() {
				return equalStructural(a, b)
			}
			if isNil(a) || isNil(b) {
				return isNil(a) && isNil(b)
			}
			return m.Func.Call([]reflect.Value{a, b})[0].Bool()
		}
	}
	switch t.Kind() {
	case reflect.Bool:
		return func(a, b reflect.Value) bool { return a.Bool() == b.Bool() }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) bool { return a.Int() == b.Int() }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) bool { return a.Uint() == b.Uint() }
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) bool { return a.Float() == b.Float() }
	case reflect.Complex64, reflect.Complex128:
		return func(a, b reflect.Value) bool { return a.Complex() == b.Complex() }
	case reflect.String:
		return func(a, b reflect.Value) bool { return a.String() == b.String() }
	default:
		return equalStructural
	}
}

func equalStructural(a, b reflect.Value) bool {
	if a.CanInterface() && b.CanInterface() {
		return gocmp.Equal(a.Interface(), b.Interface(), exportAll)
	}
	// Values reached through unexported fields cannot be handed to cmp.
	return a.Comparable() && b.Comparable() && a.Equal(b)
}
