package derive

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrMemberNotFound is matched by *MemberNotFoundError.
	ErrMemberNotFound = errors.New("member not found")

	// ErrUnsupportedType is matched by *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNullArgument is matched by *NullArgumentError.
	ErrNullArgument = errors.New("null argument")

	// ErrTypeMismatch is matched by *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// MemberNotFoundError is returned at synthesis time when a required
// constructor or function cannot be resolved.
type MemberNotFoundError struct {
	Type   reflect.Type
	Member string
	Params []reflect.Type
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("no %s of %s taking (%s)", e.Member, e.Type, typeList(e.Params))
}

func (e *MemberNotFoundError) Is(target error) bool {
	return target == ErrMemberNotFound
}

// UnsupportedTypeError is returned at synthesis time when the target type is
// not a struct or a pointer to a struct.
type UnsupportedTypeError struct {
	Type reflect.Type
	Op   string
	Err  error
}

func (e *UnsupportedTypeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot derive %s for %s: %v", e.Op, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot derive %s for %s", e.Op, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

func (e *UnsupportedTypeError) Unwrap() error {
	return e.Err
}

// NullArgumentError is returned by a synthesized function when a required
// argument is nil.
type NullArgumentError struct {
	Param string
}

func (e *NullArgumentError) Error() string {
	return fmt.Sprintf("argument %s cannot be nil", e.Param)
}

func (e *NullArgumentError) Is(target error) bool {
	return target == ErrNullArgument
}

// TypeMismatchError is returned by a synthesized function when an erased
// value cannot be unwrapped or cast to the expected type. Actual is nil
// when the value was nil.
type TypeMismatchError struct {
	Field    string
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	actual := "nil"
	if e.Actual != nil {
		actual = e.Actual.String()
	}
	if e.Field != "" {
		return fmt.Sprintf("type mismatch at %s: expected %s, got %s", e.Field, e.Expected, actual)
	}
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, actual)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeList(ts []reflect.Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
