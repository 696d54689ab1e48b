package derive

import (
	"fmt"
	"reflect"

	"github.com/signadot/derive/member"
)

// BuildStaticCall resolves a static function of host taking exactly
// argTypes and satisfying pred, and returns a wrapper forwarding to it. A
// nil pred accepts any candidate. The wrapper returns nil for functions
// without results, the result for functions with one, and a []any
// otherwise.
//
// ok is false when nothing matches; callers may treat that as the
// capability being absent.
func BuildStaticCall(host reflect.Type, argTypes []reflect.Type, pred member.Predicate, opts ...Option) (fn func(args ...any) (any, error), ok bool) {
	if len(argTypes) > MaxParams {
		return nil, false
	}
	m, ok := newConfig(opts).resolver.StaticMethod(host, argTypes, pred)
	if !ok {
		return nil, false
	}
	return func(args ...any) (any, error) {
		if len(args) != len(m.Params) {
			return nil, fmt.Errorf("%s.%s takes %d arguments, got %d", host, m.Name, len(m.Params), len(args))
		}
		in, err := argValues(args, m.Params)
		if err != nil {
			return nil, err
		}
		out := m.Fn.Call(in)
		switch len(out) {
		case 0:
			return nil, nil
		case 1:
			return out[0].Interface(), nil
		}
		res := make([]any, len(out))
		for i := range out {
			res[i] = out[i].Interface()
		}
		return res, nil
	}, true
}

// staticMethod resolves a function of host taking params and returning
// exactly one result of type result.
func staticMethod(host reflect.Type, params []reflect.Type, result reflect.Type, pred member.Predicate, opts []Option) (*member.Method, bool) {
	if pred == nil {
		pred = member.Any
	}
	returns := func(m *member.Method) bool {
		return len(m.Results) == 1 && m.Results[0] == result && pred(m)
	}
	return newConfig(opts).resolver.StaticMethod(host, params, returns)
}

func Func1[Host, A, R any](pred member.Predicate, opts ...Option) (func(A) R, bool) {
	params := []reflect.Type{reflect.TypeFor[A]()}
	m, ok := staticMethod(reflect.TypeFor[Host](), params, reflect.TypeFor[R](), pred, opts)
	if !ok {
		return nil, false
	}
	if fn, ok := m.Fn.Interface().(func(A) R); ok {
		return fn, true
	}
	return func(a A) R {
		return as[R](m.Fn.Call([]reflect.Value{valueOf(&a)})[0])
	}, true
}

func Func2[Host, A, B, R any](pred member.Predicate, opts ...Option) (func(A, B) R, bool) {
	params := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
	m, ok := staticMethod(reflect.TypeFor[Host](), params, reflect.TypeFor[R](), pred, opts)
	if !ok {
		return nil, false
	}
	if fn, ok := m.Fn.Interface().(func(A, B) R); ok {
		return fn, true
	}
	return func(a A, b B) R {
		return as[R](m.Fn.Call([]reflect.Value{valueOf(&a), valueOf(&b)})[0])
	}, true
}

func Func3[Host, A, B, C, R any](pred member.Predicate, opts ...Option) (func(A, B, C) R, bool) {
	params := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
	m, ok := staticMethod(reflect.TypeFor[Host](), params, reflect.TypeFor[R](), pred, opts)
	if !ok {
		return nil, false
	}
	if fn, ok := m.Fn.Interface().(func(A, B, C) R); ok {
		return fn, true
	}
	return func(a A, b B, c C) R {
		return as[R](m.Fn.Call([]reflect.Value{valueOf(&a), valueOf(&b), valueOf(&c)})[0])
	}, true
}

func Func4[Host, A, B, C, D, R any](pred member.Predicate, opts ...Option) (func(A, B, C, D) R, bool) {
	params := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
	m, ok := staticMethod(reflect.TypeFor[Host](), params, reflect.TypeFor[R](), pred, opts)
	if !ok {
		return nil, false
	}
	if fn, ok := m.Fn.Interface().(func(A, B, C, D) R); ok {
		return fn, true
	}
	return func(a A, b B, c C, d D) R {
		return as[R](m.Fn.Call([]reflect.Value{valueOf(&a), valueOf(&b), valueOf(&c), valueOf(&d)})[0])
	}, true
}

// Func1Any resolves a single-argument function of Host whose parameter has
// type arg and returns a wrapper taking an erased argument. A value for a
// value-semantics parameter must have exactly type arg; a value for a
// nullable parameter must be nil or assignable to it. Anything else fails
// with a *TypeMismatchError when the wrapper is called.
func Func1Any[Host, R any](arg reflect.Type, pred member.Predicate, opts ...Option) (func(any) (R, error), bool) {
	m, ok := staticMethod(reflect.TypeFor[Host](), []reflect.Type{arg}, reflect.TypeFor[R](), pred, opts)
	if !ok {
		return nil, false
	}
	return func(x any) (R, error) {
		v, err := checkedValue(x, arg, argName(0))
		if err != nil {
			var zero R
			return zero, err
		}
		return as[R](m.Fn.Call([]reflect.Value{v})[0]), nil
	}, true
}
