package serial

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/segmentio/encoding/json"
)

var (
	// ErrMissing is returned by Value for a name that was never added.
	ErrMissing = errors.New("missing value")

	// ErrDuplicate is returned by AddValue for a name added twice.
	ErrDuplicate = errors.New("duplicate value")
)

// Info is an ordered collection of named values. It is the sink written by
// derive.Extract and the source read by derive.Inject.
//
// The zero value is ready to use. An Info is not safe for concurrent
// mutation.
type Info struct {
	names  []string
	values map[string]any
}

// New returns an empty Info.
func New() *Info {
	return &Info{}
}

// AddValue records v under name. Names must be unique.
func (in *Info) AddValue(name string, v any) error {
	if _, ok := in.values[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	if in.values == nil {
		in.values = make(map[string]any)
	}
	in.names = append(in.names, name)
	in.values[name] = v
	return nil
}

// Get returns the value stored under name as it was added or decoded.
func (in *Info) Get(name string) (any, bool) {
	v, ok := in.values[name]
	return v, ok
}

// Value returns the value stored under name, converted to t where the
// stored value is not already a t:
//
//   - numbers convert between numeric types when no precision is lost;
//   - strings and bools convert to named types of the same kind;
//   - decoded documents (maps, slices, JSON text) are decoded into t.
//
// A nil value is returned as nil.
func (in *Info) Value(name string, t reflect.Type) (any, error) {
	v, ok := in.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	res, err := convert(v, t)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s as %s: %w", name, t, err)
	}
	return res, nil
}

// Names returns the names in the order they were added.
func (in *Info) Names() []string {
	return append([]string(nil), in.names...)
}

func (in *Info) Len() int {
	return len(in.names)
}

// rawJSON holds undecoded JSON text until its target type is known.
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) {
	return r, nil
}

func (r *rawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

var nullJSON = []byte("null")

func convert(v any, t reflect.Type) (any, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(rawJSON); ok {
		if bytes.Equal(bytes.TrimSpace(raw), nullJSON) {
			return nil, nil
		}
		return decodeJSON(raw, t)
	}
	rv := reflect.ValueOf(v)
	vt := rv.Type()
	if vt == t {
		return v, nil
	}
	if vt.AssignableTo(t) {
		if t.Kind() == reflect.Interface {
			return v, nil
		}
		return rv.Convert(t).Interface(), nil
	}
	if sameClass(vt.Kind(), t.Kind()) && vt.ConvertibleTo(t) {
		cv := rv.Convert(t)
		if cv.Convert(vt).Interface() != v || negative(rv) != negative(cv) {
			return nil, fmt.Errorf("%v does not fit in %s", v, t)
		}
		return cv.Interface(), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data, t)
}

func decodeJSON(data []byte, t reflect.Type) (any, error) {
	p := reflect.New(t)
	if err := json.Unmarshal(data, p.Interface()); err != nil {
		return nil, err
	}
	return p.Elem().Interface(), nil
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	}
	return false
}

type class int

const (
	otherClass class = iota
	numberClass
	stringClass
	boolClass
	complexClass
)

func classOf(k reflect.Kind) class {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return numberClass
	case reflect.String:
		return stringClass
	case reflect.Bool:
		return boolClass
	case reflect.Complex64, reflect.Complex128:
		return complexClass
	}
	return otherClass
}

func sameClass(a, b reflect.Kind) bool {
	c := classOf(a)
	return c != otherClass && c == classOf(b)
}
