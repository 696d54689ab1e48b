package fieldop

import "reflect"

// The generic helpers below apply the default operations of T to typed
// values. Generated code calls them for fields whose type has no direct
// expression.

func Hash[T any](v T) int32 {
	return Lookup(reflect.TypeFor[T]()).Hash(reflect.ValueOf(&v).Elem())
}

func Equal[T any](a, b T) bool {
	return Lookup(reflect.TypeFor[T]()).Equal(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func Compare[T any](a, b T) int {
	return Lookup(reflect.TypeFor[T]()).Compare(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func Text[T any](v T) string {
	return Lookup(reflect.TypeFor[T]()).Text(reflect.ValueOf(&v).Elem())
}
