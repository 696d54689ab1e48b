package derive

import (
	"fmt"
	"reflect"

	"github.com/signadot/derive/debug"
	"github.com/signadot/derive/member"
)

// MaxParams is the largest constructor or function arity supported.
const MaxParams = 4

func constructor(result reflect.Type, params []reflect.Type, opts []Option) (*member.Constructor, error) {
	if len(params) > MaxParams {
		return nil, fmt.Errorf("constructor of %s: %d parameters exceeds the maximum of %d", result, len(params), MaxParams)
	}
	cfg := newConfig(opts)
	c, ok := cfg.resolver.Constructor(result, params)
	if !ok {
		return nil, &MemberNotFoundError{Type: result, Member: "constructor", Params: params}
	}
	if debug.Synth() {
		debug.Logf("derive: constructor %s for %s\n", c.Fn.Type(), result)
	}
	return c, nil
}

// BuildConstructor resolves a constructor of result taking exactly params
// and returns a function forwarding its arguments to it positionally.
// Failure to resolve is reported here, not when the function is called.
func BuildConstructor(result reflect.Type, params []reflect.Type, opts ...Option) (func(args ...any) (any, error), error) {
	c, err := constructor(result, params, opts)
	if err != nil {
		return nil, err
	}
	return func(args ...any) (any, error) {
		if len(args) != len(c.Params) {
			return nil, fmt.Errorf("constructor of %s takes %d arguments, got %d", c.Result, len(c.Params), len(args))
		}
		in, err := argValues(args, c.Params)
		if err != nil {
			return nil, err
		}
		return c.Fn.Call(in)[0].Interface(), nil
	}, nil
}

func Ctor0[R any](opts ...Option) (func() R, error) {
	c, err := constructor(reflect.TypeFor[R](), nil, opts)
	if err != nil {
		return nil, err
	}
	if fn, ok := c.Fn.Interface().(func() R); ok {
		return fn, nil
	}
	return func() R {
		return as[R](c.Fn.Call(nil)[0])
	}, nil
}

func Ctor1[A, R any](opts ...Option) (func(A) R, error) {
	c, err := constructor(reflect.TypeFor[R](), []reflect.Type{reflect.TypeFor[A]()}, opts)
	if err != nil {
		return nil, err
	}
	if fn, ok := c.Fn.Interface().(func(A) R); ok {
		return fn, nil
	}
	return func(a A) R {
		return as[R](c.Fn.Call([]reflect.Value{valueOf(&a)})[0])
	}, nil
}

func Ctor2[A, B, R any](opts ...Option) (func(A, B) R, error) {
	c, err := constructor(reflect.TypeFor[R](), []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}, opts)
	if err != nil {
		return nil, err
	}
	if fn, ok := c.Fn.Interface().(func(A, B) R); ok {
		return fn, nil
	}
	return func(a A, b B) R {
		return as[R](c.Fn.Call([]reflect.Value{valueOf(&a), valueOf(&b)})[0])
	}, nil
}

func Ctor3[A, B, C, R any](opts ...Option) (func(A, B, C) R, error) {
	params := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
	c, err := constructor(reflect.TypeFor[R](), params, opts)
	if err != nil {
		return nil, err
	}
	if fn, ok := c.Fn.Interface().(func(A, B, C) R); ok {
		return fn, nil
	}
	return func(a A, b B, cc C) R {
		return as[R](c.Fn.Call([]reflect.Value{valueOf(&a), valueOf(&b), valueOf(&cc)})[0])
	}, nil
}

func Ctor4[A, B, C, D, R any](opts ...Option) (func(A, B, C, D) R, error) {
	params := []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
	c, err := constructor(reflect.TypeFor[R](), params, opts)
	if err != nil {
		return nil, err
	}
	if fn, ok := c.Fn.Interface().(func(A, B, C, D) R); ok {
		return fn, nil
	}
	return func(a A, b B, cc C, d D) R {
		return as[R](c.Fn.Call([]reflect.Value{valueOf(&a), valueOf(&b), valueOf(&cc), valueOf(&d)})[0])
	}, nil
}
