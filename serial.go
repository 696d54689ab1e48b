package derive

import (
	"fmt"
	"reflect"

	"github.com/signadot/derive/member"
)

// Sink receives named field values during extraction.
type Sink interface {
	AddValue(name string, v any) error
}

// Source supplies named field values during injection. t is the declared
// type of the field being read; a Source may use it to decode or convert.
type Source interface {
	Value(name string, t reflect.Type) (any, error)
}

// Extract synthesizes a function writing every field of T not tagged
// noserial into a Sink, in declaration order. Nil nullable fields are
// written as nil.
func Extract[T any](opts ...Option) (func(self T, sink Sink) error, error) {
	tg, fields, err := prepare[T]("extraction", member.Serial, opts)
	if err != nil {
		return nil, err
	}
	names := serialNames(fields)
	return func(self T, sink Sink) error {
		if sink == nil {
			return &NullArgumentError{Param: "sink"}
		}
		sv, ok := tg.structOf(valueOf(&self))
		if !ok {
			return &NullArgumentError{Param: "self"}
		}
		for i := range fields {
			fv := fields[i].value(sv)
			var v any
			if !fields[i].isNil(fv) {
				v = fv.Interface()
			}
			if err := sink.AddValue(names[i], v); err != nil {
				return fmt.Errorf("failed to extract %s: %w", names[i], err)
			}
		}
		return nil
	}, nil
}

// Inject synthesizes a function reading every field of T not tagged
// noserial from a Source into *dst. When T is a pointer type and *dst is
// nil, a new value is allocated and stored only once every field is read.
//
// Values for value-semantics fields must have exactly the field's type;
// values for nullable fields must be nil or assignable to it.
func Inject[T any](opts ...Option) (func(dst *T, src Source) error, error) {
	tg, fields, err := prepare[T]("injection", member.Serial, opts)
	if err != nil {
		return nil, err
	}
	names := serialNames(fields)
	return func(dst *T, src Source) error {
		if src == nil {
			return &NullArgumentError{Param: "source"}
		}
		if dst == nil {
			return &NullArgumentError{Param: "dst"}
		}
		dv, out := valueOf(dst), reflect.Value{}
		if tg.ref {
			if dv.IsNil() {
				out = dv
				dv = reflect.New(tg.st)
			}
			dv = dv.Elem()
		}
		for i := range fields {
			f := &fields[i]
			v, err := src.Value(names[i], f.Type)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", names[i], err)
			}
			rv, err := checkedValue(v, f.Type, names[i])
			if err != nil {
				return err
			}
			f.value(dv).Set(rv)
		}
		if out.IsValid() {
			out.Set(dv.Addr())
		}
		return nil
	}, nil
}

// ReadField reads name from src as a T with the same checks Inject
// applies.
func ReadField[T any](src Source, name string) (T, error) {
	var zero T
	if src == nil {
		return zero, &NullArgumentError{Param: "source"}
	}
	t := reflect.TypeFor[T]()
	v, err := src.Value(name, t)
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", name, err)
	}
	rv, err := checkedValue(v, t, name)
	if err != nil {
		return zero, err
	}
	return as[T](rv), nil
}

// WriteField writes v to sink under name the way Extract writes a field.
// A nil value of a nullable type is written as nil.
func WriteField[T any](sink Sink, name string, v T) error {
	if sink == nil {
		return &NullArgumentError{Param: "sink"}
	}
	var x any
	if rv := reflect.ValueOf(&v).Elem(); !member.IsNullable(rv.Type()) || !rv.IsNil() {
		x = rv.Interface()
	}
	if err := sink.AddValue(name, x); err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}
	return nil
}

// ReadInto is like ReadField but stores the value in *dst, leaving it
// unchanged on error.
func ReadInto[T any](src Source, name string, dst *T) error {
	if dst == nil {
		return &NullArgumentError{Param: "dst"}
	}
	v, err := ReadField[T](src, name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func serialNames(fields []field) []string {
	names := make([]string, len(fields))
	for i := range fields {
		names[i] = fields[i].serialName()
	}
	return names
}
