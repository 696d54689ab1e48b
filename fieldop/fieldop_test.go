package fieldop

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

type fixedHash struct{ N int }

func (fixedHash) Hash() int32 { return 42 }

type caseless struct{ S string }

func (c caseless) Equal(o caseless) bool { return strings.EqualFold(c.S, o.S) }

type handle struct{ Name string }

func (h *handle) Equal(o *handle) bool { return strings.EqualFold(h.Name, o.Name) }

type holder struct{ H *handle }

type reversed int

func (r reversed) Compare(o reversed) int { return int(o) - int(r) }

type node struct {
	V    int
	Next *node
}

type withHidden struct {
	n    int
	Tags []string
}

func TestHashHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  int32
		want int32
	}{
		{"int64 small", HashInt64(3), 3},
		{"int64 minus one folds", HashInt64(-1), 0},
		{"int32 minus one", HashInt32(-1), -1},
		{"uint64 high half", HashUint64(1 << 32), 1},
		{"bool true", HashBool(true), 1},
		{"bool false", HashBool(false), 0},
		{"float64 zero", HashFloat64(0), 0},
		{"float64 negative zero", HashFloat64(math.Copysign(0, -1)), 0},
		{"float32 negative zero", HashFloat32(float32(math.Copysign(0, -1))), 0},
		{"float32 one", HashFloat32(1), int32(math.Float32bits(1))},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if HashString("hi") != HashString("hi") {
		t.Error("string hash must be deterministic")
	}
}

func TestHashKinds(t *testing.T) {
	x := 5
	if got := Hash(3); got != 3 {
		t.Errorf("Hash(3) = %d", got)
	}
	if got := Hash(int8(-2)); got != -2 {
		t.Errorf("Hash(int8(-2)) = %d", got)
	}
	if got := Hash[*int](nil); got != 0 {
		t.Errorf("nil pointer hash = %d", got)
	}
	if got := Hash(&x); got != 5 {
		t.Errorf("pointer hash must follow the pointee, got %d", got)
	}
	if got := Hash[[]int](nil); got != 0 {
		t.Errorf("nil slice hash = %d", got)
	}
	if got := Hash(fixedHash{N: 1}); got != 42 {
		t.Errorf("Hash method ignored, got %d", got)
	}
	if got := Hash(caseless{"A"}); got != 0 {
		t.Errorf("type with Equal and no Hash must hash to 0, got %d", got)
	}

	a, b := holder{&handle{"A"}}, holder{&handle{"a"}}
	if !Equal(a, b) {
		t.Fatal("pointer receiver Equal ignored")
	}
	if Hash(a) != Hash(b) {
		t.Error("values equal through a pointer receiver Equal must hash alike")
	}

	m1 := map[string]int{"a": 1, "b": 2, "c": 3}
	m2 := map[string]int{"c": 3, "b": 2, "a": 1}
	if Hash(m1) != Hash(m2) {
		t.Error("map hash must not depend on iteration order")
	}

	t1 := time.Unix(100, 0).UTC()
	t2 := t1.In(time.FixedZone("plus1", 3600))
	if !Equal(t1, t2) {
		t.Fatal("same instant must be equal")
	}
	if Hash(t1) != Hash(t2) {
		t.Error("same instant must hash alike")
	}
}

func TestEqual(t *testing.T) {
	a, b := 7, 7
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"ints", Equal(1, 1), true},
		{"strings differ", Equal("a", "b"), false},
		{"slices", Equal([]int{1, 2}, []int{1, 2}), true},
		{"nil vs empty slice", Equal([]int(nil), []int{}), false},
		{"pointers by pointee", Equal(&a, &b), true},
		{"nil pointers", Equal[*int](nil, nil), true},
		{"nil vs non-nil pointer", Equal[*int](nil, &a), false},
		{"maps", Equal(map[string]int{"x": 1}, map[string]int{"x": 1}), true},
		{"unexported fields", Equal(withHidden{n: 1}, withHidden{n: 2}), false},
		{"equal method", Equal(caseless{"Go"}, caseless{"GO"}), true},
		{"NaN", Equal(math.NaN(), math.NaN()), false},
		{"interfaces", Equal[any](1, 1), true},
		{"interfaces of different types", Equal[any](1, int64(1)), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	x := 1
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"ints", Compare(1, 2), -1},
		{"strings", Compare("b", "a"), 1},
		{"false before true", Compare(false, true), -1},
		{"nil pointer first", Compare[*int](nil, &x), -1},
		{"pointer vs nil", Compare[*int](&x, nil), 1},
		{"slices lexicographic", Compare([]int{1, 2}, []int{1, 3}), -1},
		{"shorter prefix first", Compare([]int{1}, []int{1, 2}), -1},
		{"nil slice first", Compare[[]int](nil, []int{}), -1},
		{"maps by value", Compare(map[string]int{"a": 1}, map[string]int{"a": 2}), -1},
		{"maps by key", Compare(map[string]int{"b": 1}, map[string]int{"a": 1}), 1},
		{"interfaces by type name", Compare[any](1, "a"), -1},
		{"structs field-wise", Compare(node{V: 1}, node{V: 2}), -1},
		{"compare method", Compare(reversed(1), reversed(2)), 1},
		{"NaN", Compare(math.NaN(), 1.0), 0},
		{"arrays", Compare([2]int{1, 2}, [2]int{1, 2}), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	x := 5
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"int", Text(3), "3"},
		{"nil pointer", Text[*int](nil), "null"},
		{"pointer", Text(&x), "5"},
		{"stringer", Text(time.Second), "1s"},
		{"slice", Text([]int{1, 2}), "[1 2]"},
		{"nil slice", Text[[]int](nil), "null"},
		{"nil map", Text[map[string]int](nil), "null"},
		{"string", Text("hi"), "hi"},
		{"interface holding nil pointer", Text[any]((*int)(nil)), "null"},
		{"nil interface", Text[fmt.Stringer](nil), "null"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestRecursiveType(t *testing.T) {
	a := &node{V: 1, Next: &node{V: 2}}
	b := &node{V: 1, Next: &node{V: 2}}
	c := &node{V: 1, Next: &node{V: 3}}
	if !Equal(a, b) || Equal(a, c) {
		t.Error("recursive equality")
	}
	if Hash(a) != Hash(b) {
		t.Error("recursive hash")
	}
	if Compare(a, c) != -1 {
		t.Error("recursive compare")
	}
}

func TestLookupMemoized(t *testing.T) {
	typ := reflect.TypeFor[[]string]()
	if Lookup(typ) != Lookup(typ) {
		t.Error("Lookup must return the same Ops for a type")
	}
	if Lookup(typ).Type != typ {
		t.Error("Ops.Type mismatch")
	}
}
