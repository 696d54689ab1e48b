package member

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
)

type account struct {
	ID       string
	Balance  int64
	Tags     []string `derive:"nohash"`
	Note     *string  `derive:"noeq,noord,field=note"`
	internal int
	Cache    map[string]int `derive:"-"`
}

type embedded struct {
	Label
	Count int
}

type Label struct {
	Text string
}

func TestStructFields(t *testing.T) {
	fields, err := StructFields(reflect.TypeFor[account]())
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(fields))
	for i := range fields {
		names[i] = fields[i].Name
		if fields[i].Ordinal != i {
			t.Errorf("field %s ordinal %d, want %d", fields[i].Name, fields[i].Ordinal, i)
		}
	}
	want := []string{"ID", "Balance", "Tags", "Note", "Cache"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	if fields[0].Nullable || fields[1].Nullable {
		t.Error("string and int64 fields must have value semantics")
	}
	if !fields[2].Nullable || !fields[3].Nullable || !fields[4].Nullable {
		t.Error("slice, pointer and map fields must be nullable")
	}
	if fields[3].Rename != "note" {
		t.Errorf("rename = %q", fields[3].Rename)
	}
	if fields[4].Index != 5 {
		t.Errorf("Cache index = %d, want 5", fields[4].Index)
	}
}

func TestStructFieldsPointerAndEmbedded(t *testing.T) {
	fields, err := StructFields(reflect.TypeFor[*embedded]())
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 || fields[0].Name != "Label" || fields[1].Name != "Count" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}

func TestStructFieldsNotStruct(t *testing.T) {
	_, err := StructFields(reflect.TypeFor[int]())
	if !errors.Is(err, ErrNotStruct) {
		t.Fatalf("expected ErrNotStruct, got %v", err)
	}
	_, err = StructFields(reflect.TypeFor[**account]())
	if !errors.Is(err, ErrNotStruct) {
		t.Fatalf("expected ErrNotStruct for double pointer, got %v", err)
	}
}

func TestStructFieldsBadTag(t *testing.T) {
	type bad struct {
		X int `derive:"nohsah"`
	}
	if _, err := StructFields(reflect.TypeFor[bad]()); err == nil {
		t.Fatal("expected tag error")
	}
}

func TestRegistryFieldsFilter(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		m    Marker
		want []string
	}{
		{Hash, []string{"ID", "Balance", "Note"}},
		{Eq, []string{"ID", "Balance", "Tags"}},
		{Ord, []string{"ID", "Balance", "Tags"}},
		{Text, []string{"ID", "Balance", "Tags", "Note"}},
		{Serial, []string{"ID", "Balance", "Tags", "Note"}},
	}
	for _, tt := range tests {
		fields, err := r.Fields(reflect.TypeFor[account](), tt.m)
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, f := range fields {
			got = append(got, f.Name)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.m, got, tt.want)
		}
	}
}

type point struct{ X, Y int }

func newPoint(x, y int) point { return point{X: x, Y: y} }

func (p point) Add(q point) point { return point{p.X + q.X, p.Y + q.Y} }
func (p point) Neg() point        { return point{-p.X, -p.Y} }

func TestRegistryConstructor(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterConstructor(newPoint); err != nil {
		t.Fatal(err)
	}
	intT := reflect.TypeFor[int]()
	c, ok := r.Constructor(reflect.TypeFor[point](), []reflect.Type{intT, intT})
	if !ok {
		t.Fatal("constructor not found")
	}
	out := c.Fn.Call([]reflect.Value{reflect.ValueOf(1), reflect.ValueOf(2)})
	if got := out[0].Interface().(point); got != (point{1, 2}) {
		t.Errorf("got %+v", got)
	}
	if _, ok := r.Constructor(reflect.TypeFor[point](), []reflect.Type{intT}); ok {
		t.Error("arity mismatch must not resolve")
	}
	if _, ok := r.Constructor(reflect.TypeFor[point](), []reflect.Type{reflect.TypeFor[int64](), intT}); ok {
		t.Error("no implicit conversion allowed")
	}
	if _, ok := r.Constructor(reflect.TypeFor[*point](), []reflect.Type{intT, intT}); ok {
		t.Error("result type must match exactly")
	}
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterConstructor(42); err == nil {
		t.Error("expected error for non-func")
	}
	if err := r.RegisterConstructor(func(...int) point { return point{} }); err == nil {
		t.Error("expected error for variadic")
	}
	if err := r.RegisterConstructor(func() (point, error) { return point{}, nil }); err == nil {
		t.Error("expected error for two results")
	}
	if err := r.RegisterFunc(reflect.TypeFor[point](), "", strconv.Itoa); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestRegistryStaticMethod(t *testing.T) {
	r := NewRegistry()
	host := reflect.TypeFor[point]()
	if err := r.RegisterFunc(host, "Itoa", strconv.Itoa); err != nil {
		t.Fatal(err)
	}
	intT := reflect.TypeFor[int]()

	m, ok := r.StaticMethod(host, []reflect.Type{intT}, Named("Itoa"))
	if !ok || m.Receiver {
		t.Fatalf("registered func not found: %+v", m)
	}
	if _, ok := r.StaticMethod(host, []reflect.Type{intT}, Named("Other")); ok {
		t.Error("predicate must filter")
	}

	// method expressions: receiver first
	m, ok = r.StaticMethod(host, []reflect.Type{host, host}, nil)
	if !ok || m.Name != "Add" || !m.Receiver {
		t.Fatalf("method expression not found: %+v", m)
	}
	m, ok = r.StaticMethod(host, []reflect.Type{host}, Named("Neg"))
	if !ok {
		t.Fatal("Neg not found")
	}
	out := m.Fn.Call([]reflect.Value{reflect.ValueOf(point{1, 2})})
	if got := out[0].Interface().(point); got != (point{-1, -2}) {
		t.Errorf("got %+v", got)
	}
	if _, ok := r.StaticMethod(nil, nil, nil); ok {
		t.Error("nil host must not resolve")
	}
}

func TestDefaultRegistry(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	SetDefault(nil)
	if err := RegisterFunc[point]("Quote", strconv.Quote); err != nil {
		t.Fatal(err)
	}
	if _, ok := Default().StaticMethod(reflect.TypeFor[point](), []reflect.Type{reflect.TypeFor[string]()}, Named("Quote")); !ok {
		t.Error("func registered through default registry not found")
	}
}
