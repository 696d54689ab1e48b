package derive

import (
	"reflect"

	"github.com/signadot/derive/member"
)

// EqualAny synthesizes structural equality of a T against a value of any
// type, over every field not tagged noeq.
//
// The result is true when self and other are the same reference (two nil
// references included). Otherwise it is false when other is nil, when self
// is a nil reference, or when other is not exactly a T carrying the same
// type tag. Remaining fields are compared in declaration order with their
// default equality.
func EqualAny[T any](opts ...Option) (func(self T, other any) bool, error) {
	tg, fields, err := prepare[T]("equality", member.Eq, opts)
	if err != nil {
		return nil, err
	}
	return func(self T, other any) bool {
		sv := valueOf(&self)
		if tg.ref {
			if o, ok := other.(T); ok && sv.Pointer() == reflect.ValueOf(o).Pointer() {
				return true
			}
			if other == nil && sv.IsNil() {
				return true
			}
		}
		if other == nil {
			return false
		}
		o, ok := other.(T)
		if !ok {
			return false
		}
		ov := valueOf(&o)
		if tg.ref && (sv.IsNil() || ov.IsNil()) {
			return false
		}
		if !tg.sameTag(self, o) {
			return false
		}
		x, _ := tg.structOf(sv)
		y, _ := tg.structOf(ov)
		return equalFields(fields, x, y)
	}, nil
}

// Equal synthesizes the typed form of EqualAny.
func Equal[T any](opts ...Option) (func(a, b T) bool, error) {
	tg, fields, err := prepare[T]("equality", member.Eq, opts)
	if err != nil {
		return nil, err
	}
	return func(a, b T) bool {
		av, bv := valueOf(&a), valueOf(&b)
		if tg.ref {
			if av.Pointer() == bv.Pointer() {
				return true
			}
			if av.IsNil() || bv.IsNil() {
				return false
			}
		}
		if !tg.sameTag(a, b) {
			return false
		}
		x, _ := tg.structOf(av)
		y, _ := tg.structOf(bv)
		return equalFields(fields, x, y)
	}, nil
}

func equalFields(fields []field, x, y reflect.Value) bool {
	for i := range fields {
		if !fields[i].equal(x, y) {
			return false
		}
	}
	return true
}
