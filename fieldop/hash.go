package fieldop

import (
	"math"
	"reflect"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Seed and Prime are the 32-bit FNV offset basis and prime, as signed values.
const (
	Seed  int32 = -2128831035 // 0x811C9DC5
	Prime int32 = 16777619    // 0x01000193
)

// Hasher is implemented by types that supply their own field hash.
type Hasher interface {
	Hash() int32
}

// HashBool hashes true as 1 and false as 0.
func HashBool(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

// HashInt32 hashes integers of 32 bits or fewer to themselves.
func HashInt32(v int32) int32 {
	return v
}

// HashInt64 folds the high half of v into the low half.
func HashInt64(v int64) int32 {
	return int32(v) ^ int32(v>>32)
}

func HashUint64(v uint64) int32 {
	return int32(uint32(v)) ^ int32(uint32(v>>32))
}

// HashFloat64 hashes the IEEE bits of v with negative zero normalized so that
// 0 == -0 hash alike.
func HashFloat64(v float64) int32 {
	if v == 0 {
		v = 0
	}
	return HashUint64(math.Float64bits(v))
}

func HashFloat32(v float32) int32 {
	if v == 0 {
		v = 0
	}
	return int32(math.Float32bits(v))
}

func HashComplex128(v complex128) int32 {
	return HashFloat64(real(v)) ^ HashFloat64(imag(v))
}

// HashString folds the 64-bit xxhash of s. The result is stable across
// processes.
func HashString(s string) int32 {
	return HashUint64(xxhash.Sum64String(s))
}

// combine mixes an element hash into an order-sensitive running hash.
func combine(h, e int32) int32 {
	return (h ^ e) * Prime
}

var (
	hasherType = reflect.TypeFor[Hasher]()
	timeType   = reflect.TypeFor[time.Time]()
)

func buildHash(t reflect.Type) func(reflect.Value) int32 {
	if t.Implements(hasherType) && t.Kind() != reflect.Interface {
		return func(v reflect.Value) int32 {
			if isNil(v) {
				return 0
			}
			if v.CanInterface() {
				return v.Interface().(Hasher).Hash()
			}
			return 0
		}
	}
	if t == timeType {
		return func(v reflect.Value) int32 {
			if !v.CanInterface() {
				return 0
			}
			return HashInt64(v.Interface().(time.Time).UnixNano())
		}
	}
	if hasEqualMethod(t) {
		// An Equal method may identify values whose fields differ.
		return func(reflect.Value) int32 { return 0 }
	}
	switch t.Kind() {
	case reflect.Bool:
		return func(v reflect.Value) int32 { return HashBool(v.Bool()) }
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return func(v reflect.Value) int32 { return HashInt32(int32(v.Int())) }
	case reflect.Int, reflect.Int64:
		return func(v reflect.Value) int32 { return HashInt64(v.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(v reflect.Value) int32 { return HashUint64(v.Uint()) }
	case reflect.Float32:
		return func(v reflect.Value) int32 { return HashFloat32(float32(v.Float())) }
	case reflect.Float64:
		return func(v reflect.Value) int32 { return HashFloat64(v.Float()) }
	case reflect.Complex64, reflect.Complex128:
		return func(v reflect.Value) int32 { return HashComplex128(v.Complex()) }
	case reflect.String:
		return func(v reflect.Value) int32 { return HashString(v.String()) }
	case reflect.Pointer:
		elem := lazy(t.Elem())
		return func(v reflect.Value) int32 {
			if v.IsNil() {
				return 0
			}
			return elem.get().Hash(v.Elem())
		}
	case reflect.Interface:
		return func(v reflect.Value) int32 {
			if v.IsNil() {
				return 0
			}
			e := v.Elem()
			return Lookup(e.Type()).Hash(e)
		}
	case reflect.Slice:
		elem := lazy(t.Elem())
		return func(v reflect.Value) int32 {
			if v.IsNil() {
				return 0
			}
			return hashSeq(elem.get(), v)
		}
	case reflect.Array:
		elem := lazy(t.Elem())
		return func(v reflect.Value) int32 {
			return hashSeq(elem.get(), v)
		}
	case reflect.Map:
		key, val := lazy(t.Key()), lazy(t.Elem())
		return func(v reflect.Value) int32 {
			if v.IsNil() {
				return 0
			}
			var sum int32
			iter := v.MapRange()
			for iter.Next() {
				sum += combine(combine(Seed, key.get().Hash(iter.Key())), val.get().Hash(iter.Value()))
			}
			return sum
		}
	case reflect.Struct:
		fields := structOps(t)
		return func(v reflect.Value) int32 {
			h := Seed
			for i, f := range fields {
				h = combine(h, f.get().Hash(v.Field(i)))
			}
			return h
		}
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return func(v reflect.Value) int32 {
			if v.IsNil() {
				return 0
			}
			return HashUint64(uint64(v.Pointer()))
		}
	default:
		return func(reflect.Value) int32 { return 0 }
	}
}

func hashSeq(elem *Ops, v reflect.Value) int32 {
	h := Seed
	for i := 0; i < v.Len(); i++ {
		h = combine(h, elem.Hash(v.Index(i)))
	}
	return h
}
