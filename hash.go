package derive

import (
	"github.com/signadot/derive/fieldop"
	"github.com/signadot/derive/member"
)

// Hash synthesizes a hash function for T over every field not tagged
// nohash.
//
// Starting from the 32-bit FNV offset basis, each field in declaration
// order is mixed in as
//
//	h ^= 0x01000193 + fieldHash
//
// with int32 wrap-around, where fieldHash is 0 for a nil nullable field.
// A nil *S hashes to the offset basis.
func Hash[T any](opts ...Option) (func(T) int32, error) {
	tg, fields, err := prepare[T]("hash", member.Hash, opts)
	if err != nil {
		return nil, err
	}
	return func(self T) int32 {
		h := fieldop.Seed
		sv, ok := tg.structOf(valueOf(&self))
		if !ok {
			return h
		}
		for i := range fields {
			h ^= fieldop.Prime + fields[i].hash(sv)
		}
		return h
	}, nil
}
