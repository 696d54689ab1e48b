package derive

import (
	"reflect"
	"strings"

	"github.com/signadot/derive/member"
)

// Format synthesizes a text conversion for T over every field not tagged
// notext, rendering
//
//	Name(v1, v2, ...)
//
// where nil nullable fields render as null. A T with no such fields renders
// as its bare name and a nil *S renders as (null).
func Format[T any](opts ...Option) (func(T) string, error) {
	tg, fields, err := prepare[T]("text", member.Text, opts)
	if err != nil {
		return nil, err
	}
	name := SimpleName(tg.st)
	if len(fields) == 0 {
		return func(self T) string {
			if _, ok := tg.structOf(valueOf(&self)); !ok {
				return "(null)"
			}
			return name
		}, nil
	}
	return func(self T) string {
		sv, ok := tg.structOf(valueOf(&self))
		if !ok {
			return "(null)"
		}
		var b strings.Builder
		b.WriteString(name)
		b.WriteByte('(')
		for i := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fields[i].text(sv))
		}
		b.WriteByte(')')
		return b.String()
	}, nil
}

// SimpleName returns the unqualified name of t with any generic arity
// suffix (Name`2) or instantiation suffix (Name[int]) removed. Anonymous
// types use their type literal.
func SimpleName(t reflect.Type) string {
	name := t.Name()
	if name == "" {
		return t.String()
	}
	if i := strings.IndexAny(name, "`["); i > 0 {
		name = name[:i]
	}
	return name
}
