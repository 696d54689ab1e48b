package derive

import (
	"fmt"
	"reflect"

	"github.com/signadot/derive/debug"
	"github.com/signadot/derive/fieldop"
	"github.com/signadot/derive/member"
)

// Tagged is implemented by types carrying an explicit runtime type tag.
// Equality and ordering treat values with different tags as different
// types. Types that do not implement it are discriminated by their Go type
// alone.
type Tagged interface {
	TypeTag() string
}

var taggedType = reflect.TypeFor[Tagged]()

// target is the type under derivation.
type target struct {
	typ reflect.Type // T
	st  reflect.Type // the struct behind T
	ref bool         // T is a pointer to st
	tag bool         // T implements Tagged
}

func targetOf[T any](op string) (*target, error) {
	t := reflect.TypeFor[T]()
	st, err := member.StructOf(t)
	if err != nil {
		return nil, &UnsupportedTypeError{Type: t, Op: op, Err: err}
	}
	return &target{
		typ: t,
		st:  st,
		ref: t.Kind() == reflect.Pointer,
		tag: t.Implements(taggedType),
	}, nil
}

// structOf returns the struct held by v, a value of T, and false when v is
// a nil reference.
func (tg *target) structOf(v reflect.Value) (reflect.Value, bool) {
	if !tg.ref {
		return v, true
	}
	if v.IsNil() {
		return reflect.Value{}, false
	}
	return v.Elem(), true
}

// sameTag reports whether two non-nil values of T carry the same type tag.
func (tg *target) sameTag(x, y any) bool {
	if !tg.tag {
		return true
	}
	return x.(Tagged).TypeTag() == y.(Tagged).TypeTag()
}

// field is a resolved field with its default operations.
type field struct {
	member.Field
	ops *fieldop.Ops
}

func (f *field) value(sv reflect.Value) reflect.Value {
	return sv.Field(f.Index)
}

func (f *field) isNil(fv reflect.Value) bool {
	return f.Nullable && fv.IsNil()
}

func (f *field) hash(sv reflect.Value) int32 {
	fv := f.value(sv)
	if f.isNil(fv) {
		return 0
	}
	return f.ops.Hash(fv)
}

func (f *field) equal(x, y reflect.Value) bool {
	a, b := f.value(x), f.value(y)
	if f.Nullable {
		an, bn := a.IsNil(), b.IsNil()
		if an || bn {
			return an && bn
		}
	}
	return f.ops.Equal(a, b)
}

func (f *field) compare(x, y reflect.Value) int {
	a, b := f.value(x), f.value(y)
	if f.Nullable {
		an, bn := a.IsNil(), b.IsNil()
		switch {
		case an && bn:
			return 0
		case an:
			return -1
		case bn:
			return 1
		}
	}
	return f.ops.Compare(a, b)
}

func (f *field) text(sv reflect.Value) string {
	fv := f.value(sv)
	if f.isNil(fv) {
		return "null"
	}
	return f.ops.Text(fv)
}

// serialName is the name a field is written under.
func (f *field) serialName() string {
	if f.Rename != "" {
		return f.Rename
	}
	return NormalizeName(f.Name)
}

// prepare resolves the target and the fields of T participating in m.
func prepare[T any](op string, m member.Marker, opts []Option) (*target, []field, error) {
	tg, err := targetOf[T](op)
	if err != nil {
		return nil, nil, err
	}
	cfg := newConfig(opts)
	mfs, err := cfg.fields(tg.typ, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve fields of %s: %w", tg.typ, err)
	}
	fields := make([]field, len(mfs))
	for i := range mfs {
		fields[i] = field{Field: mfs[i], ops: fieldop.Lookup(mfs[i].Type)}
	}
	if debug.Synth() {
		names := make([]any, len(fields))
		for i := range fields {
			names[i] = fields[i].Name
		}
		debug.Logf("derive: %s for %s over fields %s\n", op, tg.typ, names)
	}
	return tg, fields, nil
}

// valueOf returns the addressable reflect.Value of *p.
func valueOf[T any](p *T) reflect.Value {
	return reflect.ValueOf(p).Elem()
}
