package fieldop

import (
	"cmp"
	"reflect"
	"sort"
)

// CompareBool orders false before true.
func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func buildCompare(t reflect.Type) func(a, b reflect.Value) int {
	if m, ok := method(t, "Compare", []reflect.Type{t}, intType); ok {
		return func(a, b reflect.Value) int {
			if !a.CanInterface() || !b.CanInterface() {
				return compareKind(t)(a, b)
			}
			if c, done := compareNil(a, b); done {
				return c
			}
			return sign(int(m.Func.Call([]reflect.Value{a, b})[0].Int()))
		}
	}
	return compareKind(t)
}

func compareKind(t reflect.Type) func(a, b reflect.Value) int {
	switch t.Kind() {
	case reflect.Bool:
		return func(a, b reflect.Value) int { return CompareBool(a.Bool(), b.Bool()) }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return CompareFloat(a.Float(), b.Float()) }
	case reflect.Complex64, reflect.Complex128:
		return func(a, b reflect.Value) int {
			x, y := a.Complex(), b.Complex()
			if c := CompareFloat(real(x), real(y)); c != 0 {
				return c
			}
			return CompareFloat(imag(x), imag(y))
		}
	case reflect.String:
		return func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }
	case reflect.Pointer:
		elem := lazy(t.Elem())
		return func(a, b reflect.Value) int {
			if c, done := compareNil(a, b); done {
				return c
			}
			if a.Pointer() == b.Pointer() {
				return 0
			}
			return elem.get().Compare(a.Elem(), b.Elem())
		}
	case reflect.Interface:
		return func(a, b reflect.Value) int {
			if c, done := compareNil(a, b); done {
				return c
			}
			x, y := a.Elem(), b.Elem()
			if x.Type() != y.Type() {
				return cmp.Compare(x.Type().String(), y.Type().String())
			}
			return Lookup(x.Type()).Compare(x, y)
		}
	case reflect.Slice:
		elem := lazy(t.Elem())
		return func(a, b reflect.Value) int {
			if c, done := compareNil(a, b); done {
				return c
			}
			return compareSeq(elem.get(), a, b)
		}
	case reflect.Array:
		elem := lazy(t.Elem())
		return func(a, b reflect.Value) int {
			return compareSeq(elem.get(), a, b)
		}
	case reflect.Map:
		key, val := lazy(t.Key()), lazy(t.Elem())
		return func(a, b reflect.Value) int {
			if c, done := compareNil(a, b); done {
				return c
			}
			return compareMap(key.get(), val.get(), a, b)
		}
	case reflect.Struct:
		fields := structOps(t)
		return func(a, b reflect.Value) int {
			for i, f := range fields {
				if c := f.get().Compare(a.Field(i), b.Field(i)); c != 0 {
					return c
				}
			}
			return 0
		}
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return func(a, b reflect.Value) int {
			if c, done := compareNil(a, b); done {
				return c
			}
			return cmp.Compare(a.Pointer(), b.Pointer())
		}
	default:
		return func(reflect.Value, reflect.Value) int { return 0 }
	}
}

// compareNil orders nil before non-nil. done is false when neither is nil.
func compareNil(a, b reflect.Value) (c int, done bool) {
	an, bn := isNil(a), isNil(b)
	switch {
	case an && bn:
		return 0, true
	case an:
		return -1, true
	case bn:
		return 1, true
	}
	return 0, false
}

// CompareFloat orders by value. Unlike cmp.Compare, a NaN compares as 0
// against anything.
func CompareFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func compareSeq(elem *Ops, a, b reflect.Value) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if c := elem.Compare(a.Index(i), b.Index(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

func compareMap(key, val *Ops, a, b reflect.Value) int {
	ak, bk := sortedKeys(key, a), sortedKeys(key, b)
	n := min(len(ak), len(bk))
	for i := 0; i < n; i++ {
		if c := key.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		if c := val.Compare(a.MapIndex(ak[i]), b.MapIndex(bk[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ak), len(bk))
}

// sortedKeys returns the keys of map value v ordered by the key type's
// default comparison.
func sortedKeys(key *Ops, v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return key.Compare(keys[i], keys[j]) < 0
	})
	return keys
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
