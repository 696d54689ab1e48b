package fieldop

import (
	"reflect"
	"sync"

	"github.com/signadot/derive/debug"
)

// Ops holds the default operations for values of one type.
//
// Values passed to the functions must have type Type. Nil handling for
// nullable top-level fields is the caller's concern, but every function
// tolerates nil values of nested pointers, slices, maps and interfaces.
type Ops struct {
	Type    reflect.Type
	Equal   func(a, b reflect.Value) bool
	Compare func(a, b reflect.Value) int
	Hash    func(v reflect.Value) int32
	Text    func(v reflect.Value) string
}

var cache sync.Map // reflect.Type -> *Ops

// Lookup returns the default operations for t. Results are memoized and
// safe for concurrent use.
func Lookup(t reflect.Type) *Ops {
	if ops, ok := cache.Load(t); ok {
		return ops.(*Ops)
	}
	ops := build(t)
	actual, loaded := cache.LoadOrStore(t, ops)
	if !loaded && debug.Fields() {
		debug.Logf("fieldop: built ops for %s\n", t)
	}
	return actual.(*Ops)
}

func build(t reflect.Type) *Ops {
	return &Ops{
		Type:    t,
		Equal:   buildEqual(t),
		Compare: buildCompare(t),
		Hash:    buildHash(t),
		Text:    buildText(t),
	}
}

// lazyOps defers the lookup of a component type until first use, which
// keeps recursive types from recursing at build time.
type lazyOps struct {
	t    reflect.Type
	once sync.Once
	ops  *Ops
}

func lazy(t reflect.Type) *lazyOps {
	return &lazyOps{t: t}
}

func (l *lazyOps) get() *Ops {
	l.once.Do(func() {
		l.ops = Lookup(l.t)
	})
	return l.ops
}

func structOps(t reflect.Type) []*lazyOps {
	res := make([]*lazyOps, t.NumField())
	for i := range res {
		res[i] = lazy(t.Field(i).Type)
	}
	return res
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Interface,
		reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// method returns the method of t called name whose signature, receiver
// included, is in -> out.
func method(t reflect.Type, name string, in []reflect.Type, out reflect.Type) (reflect.Method, bool) {
	if t.Kind() == reflect.Interface {
		return reflect.Method{}, false
	}
	m, ok := t.MethodByName(name)
	if !ok {
		return m, false
	}
	ft := m.Type
	if ft.NumIn() != len(in)+1 || ft.NumOut() != 1 || ft.Out(0) != out {
		return m, false
	}
	for i, it := range in {
		if ft.In(i+1) != it {
			return m, false
		}
	}
	return m, true
}

func hasEqualMethod(t reflect.Type) bool {
	_, ok := method(t, "Equal", []reflect.Type{t}, boolType)
	return ok
}

var (
	boolType = reflect.TypeFor[bool]()
	intType  = reflect.TypeFor[int]()
)
