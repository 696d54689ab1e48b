package derive

import (
	"reflect"
	"strconv"

	"github.com/signadot/derive/member"
)

// checkedValue converts an erased value to t. A value-semantics t requires
// the dynamic type to be exactly t; a nullable t accepts nil and any
// assignable value.
func checkedValue(v any, t reflect.Type, where string) (reflect.Value, error) {
	if v == nil {
		if member.IsNullable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, &TypeMismatchError{Field: where, Expected: t}
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return rv, nil
	}
	if member.IsNullable(t) && rv.Type().AssignableTo(t) {
		res := reflect.New(t).Elem()
		res.Set(rv)
		return res, nil
	}
	return reflect.Value{}, &TypeMismatchError{Field: where, Expected: t, Actual: rv.Type()}
}

// as returns the result of a reflective call as an R. Nil interface results
// become the zero R.
func as[R any](v reflect.Value) R {
	var r R
	if v.IsValid() {
		reflect.ValueOf(&r).Elem().Set(v)
	}
	return r
}

// argValues converts each of args to its declared parameter type.
func argValues(args []any, params []reflect.Type) ([]reflect.Value, error) {
	in := make([]reflect.Value, len(args))
	for i := range args {
		v, err := checkedValue(args[i], params[i], argName(i))
		if err != nil {
			return nil, err
		}
		in[i] = v
	}
	return in, nil
}

func argName(i int) string {
	return "argument " + strconv.Itoa(i)
}
