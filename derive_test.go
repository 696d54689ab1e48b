package derive

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/derive/fieldop"
	"github.com/signadot/derive/member"
)

type Point struct {
	X int
	Y string
}

type Point2 struct {
	X int
	Y string
}

type Empty struct{}

type Pair[A, B any] struct {
	First  A
	Second B
}

type Doc struct {
	Title string
	Tags  []string `derive:"noeq,noord,nohash"`
	Owner *string
	Seen  int `derive:"-"`
	Rev   int `derive:"field=revision"`
}

type shape struct {
	Kind string `derive:"-"`
	W    int
}

func (s shape) TypeTag() string { return s.Kind }

func mustFn[F any](fn F, err error) func(t *testing.T) F {
	return func(t *testing.T) F {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return fn
	}
}

func TestPointScenario(t *testing.T) {
	p := Point{X: 3, Y: "hi"}

	str := mustFn(Format[Point]())(t)
	if got := str(p); got != "Point(3, hi)" {
		t.Errorf("Format = %q", got)
	}

	hash := mustFn(Hash[Point]())(t)
	want := fieldop.Seed
	want ^= fieldop.Prime + fieldop.HashInt64(3)
	want ^= fieldop.Prime + fieldop.HashString("hi")
	if got := hash(p); got != want {
		t.Errorf("Hash = %d, want %d", got, want)
	}
	if got := hash(p); got != -2118981643 {
		t.Errorf("Hash = %d, want stable value -2118981643", got)
	}

	eq := mustFn(EqualAny[Point]())(t)
	if !eq(p, Point{3, "hi"}) {
		t.Error("equal instances must be equal")
	}
	if eq(p, Point{3, "bye"}) {
		t.Error("different Y must be unequal")
	}

	cmpFn := mustFn(Compare[Point]())(t)
	if c := cmpFn(p, Point{4, "hi"}); c >= 0 {
		t.Errorf("Compare = %d, want negative", c)
	}
}

func TestEqualAny(t *testing.T) {
	eq := mustFn(EqualAny[Point]())(t)
	p := Point{1, "a"}
	tests := []struct {
		name  string
		other any
		want  bool
	}{
		{"reflexive", p, true},
		{"nil", nil, false},
		{"different type same fields", Point2{1, "a"}, false},
		{"pointer to same type", &p, false},
		{"unrelated", "a", false},
	}
	for _, tt := range tests {
		if got := eq(p, tt.other); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReferenceSemantics(t *testing.T) {
	eqAny := mustFn(EqualAny[*Point]())(t)
	eq := mustFn(Equal[*Point]())(t)
	cmpFn := mustFn(Compare[*Point]())(t)
	hash := mustFn(Hash[*Point]())(t)
	str := mustFn(Format[*Point]())(t)

	x := &Point{1, "a"}
	y := &Point{1, "a"}
	var null *Point

	if !eqAny(x, x) || !eq(x, x) {
		t.Error("identity must be equal")
	}
	if !eqAny(x, y) || !eq(x, y) {
		t.Error("structurally equal references must be equal")
	}
	if eqAny(null, x) || eq(null, x) || eq(x, null) {
		t.Error("nil against non-nil must be unequal")
	}
	if eqAny(x, nil) || eqAny(x, null) {
		t.Error("non-nil against nil must be unequal")
	}
	if !eqAny(null, nil) || !eq(null, null) {
		t.Error("nil against nil is the same reference")
	}
	if c := cmpFn(null, x); c != -1 {
		t.Errorf("Compare(nil, x) = %d", c)
	}
	if c := cmpFn(x, null); c != 1 {
		t.Errorf("Compare(x, nil) = %d", c)
	}
	if c := cmpFn(null, null); c != 0 {
		t.Errorf("Compare(nil, nil) = %d", c)
	}
	if hash(null) != fieldop.Seed {
		t.Error("nil reference must hash to the seed")
	}
	if hash(x) != hash(y) {
		t.Error("equal values must hash alike")
	}
	if got := str(null); got != "(null)" {
		t.Errorf("Format(nil) = %q", got)
	}
	if got := str(x); got != "Point(1, a)" {
		t.Errorf("Format = %q", got)
	}
}

func TestTypeTags(t *testing.T) {
	eq := mustFn(Equal[shape]())(t)
	eqAny := mustFn(EqualAny[shape]())(t)
	cmpFn := mustFn(Compare[shape]())(t)

	sq := shape{Kind: "square", W: 2}
	ci := shape{Kind: "circle", W: 2}
	if eq(sq, ci) || eqAny(sq, ci) {
		t.Error("different tags must be unequal")
	}
	if cmpFn(sq, ci) != -1 || cmpFn(ci, sq) != -1 {
		t.Error("different tags compare as -1")
	}
	if !eq(sq, shape{Kind: "square", W: 2}) {
		t.Error("same tag and fields must be equal")
	}
}

func TestExclusions(t *testing.T) {
	owner := "ann"
	a := Doc{Title: "t", Tags: []string{"x"}, Owner: &owner, Seen: 1, Rev: 2}
	b := Doc{Title: "t", Tags: []string{"y"}, Owner: &owner, Seen: 9, Rev: 2}

	eq := mustFn(Equal[Doc]())(t)
	hash := mustFn(Hash[Doc]())(t)
	cmpFn := mustFn(Compare[Doc]())(t)
	str := mustFn(Format[Doc]())(t)

	if !eq(a, b) {
		t.Error("excluded fields must not affect equality")
	}
	if hash(a) != hash(b) {
		t.Error("excluded fields must not affect the hash")
	}
	if cmpFn(a, b) != 0 {
		t.Error("excluded fields must not affect ordering")
	}
	if got := str(a); got != "Doc(t, [x], ann, 2)" {
		t.Errorf("Format = %q", got)
	}
	a.Owner = nil
	if got := str(a); got != "Doc(t, [x], null, 2)" {
		t.Errorf("Format with nil field = %q", got)
	}

	eqNoRev := mustFn(Equal[Doc](Exclude(member.Eq, "Rev")))(t)
	b.Rev = 3
	if eq(a, b) {
		t.Error("Rev participates by default")
	}
	b.Owner = nil
	if !eqNoRev(a, b) {
		t.Error("Exclude option must drop Rev")
	}
}

func TestOrderingProperties(t *testing.T) {
	cmpFn := mustFn(Compare[Point]())(t)
	eq := mustFn(Equal[Point]())(t)
	values := []Point{{1, "a"}, {1, "b"}, {0, "z"}, {2, ""}, {1, "a"}}
	for _, a := range values {
		for _, b := range values {
			ab, ba := cmpFn(a, b), cmpFn(b, a)
			if sign(ab) != -sign(ba) {
				t.Errorf("Compare(%v, %v) = %d but reverse = %d", a, b, ab, ba)
			}
			if (ab == 0) != eq(a, b) {
				t.Errorf("Compare(%v, %v) = %d disagrees with equality", a, b, ab)
			}
		}
	}
	sorted := append([]Point(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return cmpFn(sorted[i], sorted[j]) < 0 })
	want := []Point{{0, "z"}, {1, "a"}, {1, "a"}, {1, "b"}, {2, ""}}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

func TestFormatNames(t *testing.T) {
	str := mustFn(Format[Empty]())(t)
	if got := str(Empty{}); got != "Empty" {
		t.Errorf("zero-field type = %q", got)
	}
	pair := mustFn(Format[Pair[int, string]]())(t)
	if got := pair(Pair[int, string]{1, "x"}); got != "Pair(1, x)" {
		t.Errorf("generic type = %q", got)
	}
}

func TestUnsupportedType(t *testing.T) {
	_, err := Hash[int]()
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	var ute *UnsupportedTypeError
	if !errors.As(err, &ute) || ute.Type != reflect.TypeFor[int]() {
		t.Errorf("unexpected error %#v", err)
	}
	if _, err := Compare[**Point](); !errors.Is(err, member.ErrNotStruct) {
		t.Errorf("expected wrapped ErrNotStruct, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"<Name>k__BackingField", "Name"},
		{"Name", "Name"},
		{"<>x", "<>x"},
		{"<Open", "<Open"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.raw); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	hash := mustFn(Hash[Point]())(t)
	p := Point{7, "seven"}
	want := hash(p)
	done := make(chan int32)
	for i := 0; i < 8; i++ {
		go func() { done <- hash(p) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func ExampleFormat() {
	str, err := Format[Point]()
	if err != nil {
		panic(err)
	}
	fmt.Println(str(Point{X: 3, Y: "hi"}))
	// Output: Point(3, hi)
}
