package derive

import "github.com/signadot/derive/member"

// Compare synthesizes a three-way comparison of T over every field not
// tagged noord.
//
// The same reference compares as 0. A nil reference sorts before any
// non-nil one. Values with different type tags compare as -1, which is
// deterministic but not a total order. Otherwise the first field, in
// declaration order, that compares nonzero decides.
func Compare[T any](opts ...Option) (func(x, y T) int, error) {
	tg, fields, err := prepare[T]("ordering", member.Ord, opts)
	if err != nil {
		return nil, err
	}
	return func(x, y T) int {
		xv, yv := valueOf(&x), valueOf(&y)
		if tg.ref {
			if xv.Pointer() == yv.Pointer() {
				return 0
			}
			if xv.IsNil() {
				return -1
			}
			if yv.IsNil() {
				return 1
			}
		}
		if !tg.sameTag(x, y) {
			return -1
		}
		xs, _ := tg.structOf(xv)
		ys, _ := tg.structOf(yv)
		for i := range fields {
			if c := fields[i].compare(xs, ys); c != 0 {
				return c
			}
		}
		return 0
	}, nil
}
