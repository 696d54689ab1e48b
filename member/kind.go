package member

import "reflect"

// IsNullable determines if a Go type has a nil representation.
// Types that are nullable:
//   - Pointer types (*T) and unsafe.Pointer
//   - Interface types
//   - Slice, map, func and chan types
func IsNullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Interface,
		reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// IsValueSemantics is the negation of IsNullable.
func IsValueSemantics(t reflect.Type) bool {
	return !IsNullable(t)
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func inTypes(ft reflect.Type) []reflect.Type {
	res := make([]reflect.Type, ft.NumIn())
	for i := range res {
		res[i] = ft.In(i)
	}
	return res
}

func outTypes(ft reflect.Type) []reflect.Type {
	res := make([]reflect.Type, ft.NumOut())
	for i := range res {
		res[i] = ft.Out(i)
	}
	return res
}
