// Package record caches the derived operations of a type so each is
// synthesized at most once per process.
//
//	rt := record.MustOf[Point]()
//	rt.Equal(a, b)
//	rt.Sort(points)
package record

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/signadot/derive"
)

// Type holds every derived operation of T.
type Type[T any] struct {
	hash     func(T) int32
	equal    func(a, b T) bool
	equalAny func(self T, other any) bool
	compare  func(x, y T) int
	format   func(T) string
	extract  func(self T, sink derive.Sink) error
	inject   func(dst *T, src derive.Source) error
}

var (
	types sync.Map // reflect.Type -> any (*Type[T])
	group singleflight.Group
)

// Of returns the cached operations of T, synthesizing them on first use.
// Concurrent first calls share a single synthesis. Types are derived with
// the default resolver and the exclusions declared in struct tags.
func Of[T any]() (*Type[T], error) {
	key := reflect.TypeFor[T]()
	if rt, ok := types.Load(key); ok {
		return rt.(*Type[T]), nil
	}
	v, err, _ := group.Do(fmt.Sprintf("%p", key), func() (any, error) {
		if rt, ok := types.Load(key); ok {
			return rt, nil
		}
		rt, err := build[T]()
		if err != nil {
			return nil, err
		}
		types.Store(key, rt)
		return rt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Type[T]), nil
}

// MustOf is like Of but panics on error.
func MustOf[T any]() *Type[T] {
	rt, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return rt
}

func build[T any]() (*Type[T], error) {
	var (
		rt  Type[T]
		err error
	)
	if rt.hash, err = derive.Hash[T](); err != nil {
		return nil, buildErr[T](err)
	}
	if rt.equal, err = derive.Equal[T](); err != nil {
		return nil, buildErr[T](err)
	}
	if rt.equalAny, err = derive.EqualAny[T](); err != nil {
		return nil, buildErr[T](err)
	}
	if rt.compare, err = derive.Compare[T](); err != nil {
		return nil, buildErr[T](err)
	}
	if rt.format, err = derive.Format[T](); err != nil {
		return nil, buildErr[T](err)
	}
	if rt.extract, err = derive.Extract[T](); err != nil {
		return nil, buildErr[T](err)
	}
	if rt.inject, err = derive.Inject[T](); err != nil {
		return nil, buildErr[T](err)
	}
	return &rt, nil
}

func buildErr[T any](err error) error {
	return fmt.Errorf("failed to derive record type %s: %w", reflect.TypeFor[T](), err)
}

func (rt *Type[T]) Hash(v T) int32 {
	return rt.hash(v)
}

func (rt *Type[T]) Equal(a, b T) bool {
	return rt.equal(a, b)
}

func (rt *Type[T]) EqualAny(self T, other any) bool {
	return rt.equalAny(self, other)
}

func (rt *Type[T]) Compare(x, y T) int {
	return rt.compare(x, y)
}

func (rt *Type[T]) Less(x, y T) bool {
	return rt.compare(x, y) < 0
}

func (rt *Type[T]) String(v T) string {
	return rt.format(v)
}

func (rt *Type[T]) Extract(v T, sink derive.Sink) error {
	return rt.extract(v, sink)
}

func (rt *Type[T]) Inject(dst *T, src derive.Source) error {
	return rt.inject(dst, src)
}

// Sort sorts vs in place by the derived ordering. The sort is stable.
func (rt *Type[T]) Sort(vs []T) {
	slices.SortStableFunc(vs, rt.compare)
}
