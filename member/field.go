package member

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/signadot/derive/debug"
)

// Marker tags a field as excluded from one or more derived operations.
type Marker uint8

const (
	Hash Marker = 1 << iota
	Eq
	Ord
	Text
	Serial

	None Marker = 0
	All         = Hash | Eq | Ord | Text | Serial
)

var markerNames = []struct {
	m    Marker
	name string
}{
	{Hash, "hash"},
	{Eq, "eq"},
	{Ord, "ord"},
	{Text, "text"},
	{Serial, "serial"},
}

func (m Marker) String() string {
	if m == None {
		return "none"
	}
	var parts []string
	for _, mn := range markerNames {
		if m&mn.m != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseMarker parses one operation name, or "all".
func ParseMarker(s string) (Marker, error) {
	if s == "all" {
		return All, nil
	}
	for _, mn := range markerNames {
		if mn.name == s {
			return mn.m, nil
		}
	}
	return None, fmt.Errorf("unknown operation %q", s)
}

// ErrNotStruct is returned when field resolution is asked for a type that
// is neither a struct nor a pointer to one.
var ErrNotStruct = errors.New("not a struct type")

// Field describes one eligible field of a struct type.
type Field struct {
	// Name is the Go field name.
	Name string

	// Rename is the serialization name given with field=, or empty.
	Rename string

	// Type is the declared type of the field.
	Type reflect.Type

	// Nullable is set for kinds that have a nil representation.
	Nullable bool

	// Ordinal is the declaration position among eligible fields.
	Ordinal int

	// Index is the index of the field in the struct, for reflect.Value.Field.
	Index int

	// Exclude holds the operations the field opts out of.
	Exclude Marker
}

// Excluded reports whether the field opts out of m.
func (f *Field) Excluded(m Marker) bool {
	return f.Exclude&m != 0
}

// StructOf returns the struct type behind t, dereferencing one pointer level.
func StructOf(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotStruct)
	}
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	return st, nil
}

// StructFields returns every eligible field of t, in declaration order,
// ignoring markers. Only exported fields are eligible; an embedded exported
// field counts as a single field.
func StructFields(t reflect.Type) ([]Field, error) {
	st, err := StructOf(t)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, st.NumField())
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() || sf.Name == "_" {
			continue
		}
		ft, err := ParseFieldTag(sf.Tag.Get(TagName))
		if err != nil {
			return nil, fmt.Errorf("failed to parse tag on field %s.%s: %w", st.Name(), sf.Name, err)
		}
		fields = append(fields, Field{
			Name:     sf.Name,
			Rename:   ft.Rename,
			Type:     sf.Type,
			Nullable: IsNullable(sf.Type),
			Ordinal:  len(fields),
			Index:    i,
			Exclude:  ft.Exclude,
		})
	}
	if debug.Fields() {
		debug.Logf("member: %s has %d eligible fields\n", st, len(fields))
	}
	return fields, nil
}

// Filter drops the fields excluded from m, preserving order.
func Filter(fields []Field, m Marker) []Field {
	res := make([]Field, 0, len(fields))
	for i := range fields {
		if fields[i].Excluded(m) {
			continue
		}
		res = append(res, fields[i])
	}
	return res
}
