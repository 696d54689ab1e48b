package record

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/derive"
	"github.com/signadot/derive/serial"
)

type Version struct {
	Major, Minor, Patch int
	Label               string `derive:"noord,noeq,nohash"`
}

func TestOf(t *testing.T) {
	rt, err := Of[Version]()
	if err != nil {
		t.Fatal(err)
	}
	again, err := Of[Version]()
	if err != nil {
		t.Fatal(err)
	}
	if rt != again {
		t.Error("Of must return the cached record type")
	}

	a := Version{1, 2, 3, "a"}
	b := Version{1, 2, 3, "b"}
	if !rt.Equal(a, b) || !rt.EqualAny(a, b) {
		t.Error("labels are excluded from equality")
	}
	if rt.Hash(a) != rt.Hash(b) {
		t.Error("equal values must hash alike")
	}
	if got := rt.String(a); got != "Version(1, 2, 3, a)" {
		t.Errorf("String = %q", got)
	}
	if !rt.Less(Version{1, 2, 3, ""}, Version{1, 10, 0, ""}) {
		t.Error("ordering is field-wise, not textual")
	}
}

func TestSort(t *testing.T) {
	rt := MustOf[Version]()
	vs := []Version{{2, 0, 0, "x"}, {1, 9, 9, "y"}, {1, 10, 0, "z"}, {1, 9, 9, "w"}}
	rt.Sort(vs)
	want := []Version{{1, 9, 9, "y"}, {1, 9, 9, "w"}, {1, 10, 0, "z"}, {2, 0, 0, "x"}}
	if diff := cmp.Diff(want, vs); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialization(t *testing.T) {
	rt := MustOf[*Version]()
	info := serial.New()
	if err := rt.Extract(&Version{1, 2, 3, "rc"}, info); err != nil {
		t.Fatal(err)
	}
	var v *Version
	if err := rt.Inject(&v, info); err != nil {
		t.Fatal(err)
	}
	if *v != (Version{1, 2, 3, "rc"}) {
		t.Errorf("round trip = %+v", v)
	}
}

func TestConcurrentOf(t *testing.T) {
	type pair struct{ A, B string }
	var wg sync.WaitGroup
	results := make([]*Type[pair], 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = MustOf[pair]()
		}()
	}
	wg.Wait()
	for _, rt := range results[1:] {
		if rt != results[0] {
			t.Fatal("concurrent first use must share one synthesis")
		}
	}
}

func TestOfUnsupported(t *testing.T) {
	if _, err := Of[string](); !errors.Is(err, derive.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustOf must panic")
		}
	}()
	MustOf[[]int]()
}
