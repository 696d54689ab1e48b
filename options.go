package derive

import (
	"reflect"

	"github.com/signadot/derive/member"
)

// Option configures a synthesizer.
type Option interface {
	apply(*config)
}

type config struct {
	resolver member.Resolver
	exclude  map[string]member.Marker
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.resolver == nil {
		c.resolver = member.Default()
	}
	return c
}

// WithResolver sets the member resolver. The default is member.Default().
func WithResolver(r member.Resolver) Option {
	return optionFunc(func(c *config) {
		c.resolver = r
	})
}

// Exclude removes the named fields from the operations in m, in addition to
// any exclusions declared in struct tags.
func Exclude(m member.Marker, names ...string) Option {
	return optionFunc(func(c *config) {
		if c.exclude == nil {
			c.exclude = make(map[string]member.Marker)
		}
		for _, name := range names {
			c.exclude[name] |= m
		}
	})
}

// fields resolves the fields of t participating in m.
func (c *config) fields(t reflect.Type, m member.Marker) ([]member.Field, error) {
	fields, err := c.resolver.Fields(t, m)
	if err != nil {
		return nil, err
	}
	if len(c.exclude) == 0 {
		return fields, nil
	}
	res := fields[:0:0]
	for _, f := range fields {
		if c.exclude[f.Name]&m != 0 {
			continue
		}
		res = append(res, f)
	}
	return res, nil
}
