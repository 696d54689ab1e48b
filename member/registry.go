package member

import (
	"fmt"
	"reflect"
	"sync"
)

// Constructor is a resolved construction function. It is consumed during
// synthesis and not retained by the resolver's callers.
type Constructor struct {
	Result reflect.Type
	Params []reflect.Type
	Fn     reflect.Value
}

// Method is a resolved static function. Receiver is set when the candidate
// is a method expression of the host type, in which case the receiver is the
// first parameter.
type Method struct {
	Name     string
	Host     reflect.Type
	Params   []reflect.Type
	Results  []reflect.Type
	Receiver bool
	Fn       reflect.Value
}

// Predicate filters static method candidates.
type Predicate func(*Method) bool

// Resolver supplies type metadata to the synthesizers. Lookups report
// absence with false instead of failing; callers decide whether absence is
// fatal.
type Resolver interface {
	// Fields returns the eligible fields of t in declaration order, minus
	// those excluded from m.
	Fields(t reflect.Type, m Marker) ([]Field, error)

	// Constructor finds a constructor of result whose parameters are
	// exactly params.
	Constructor(result reflect.Type, params []reflect.Type) (*Constructor, bool)

	// StaticMethod finds the first function of host whose parameters are
	// exactly params and which satisfies pred.
	StaticMethod(host reflect.Type, params []reflect.Type, pred Predicate) (*Method, bool)
}

// Registry is the default Resolver. Constructors and static functions are
// registered explicitly; fields come from reflection and derive struct tags.
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors []*Constructor
	funcs map[reflect.Type][]*Method
}

var _ Resolver = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[reflect.Type][]*Method),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. A nil registry resets it to
// an empty one.
func SetDefault(r *Registry) {
	if r == nil {
		r = NewRegistry()
	}
	defaultRegistry = r
}

func (r *Registry) Fields(t reflect.Type, m Marker) ([]Field, error) {
	fields, err := StructFields(t)
	if err != nil {
		return nil, err
	}
	return Filter(fields, m), nil
}

// RegisterConstructor registers fn, a non-variadic function with exactly one
// result, as a constructor of its result type.
func (r *Registry) RegisterConstructor(fn any) error {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("constructor must be a non-nil func, got %T", fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("constructor %s must not be variadic", ft)
	}
	if ft.NumOut() != 1 {
		return fmt.Errorf("constructor %s must have exactly one result", ft)
	}
	c := &Constructor{
		Result: ft.Out(0),
		Params: inTypes(ft),
		Fn:     fv,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors = append(r.ctors, c)
	return nil
}

// RegisterFunc registers fn as a static function named name on host.
func (r *Registry) RegisterFunc(host reflect.Type, name string, fn any) error {
	if host == nil {
		return fmt.Errorf("host type cannot be nil")
	}
	if name == "" {
		return fmt.Errorf("function name cannot be empty")
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("function %s must be a non-nil func, got %T", name, fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("function %s must not be variadic", name)
	}
	m := &Method{
		Name:    name,
		Host:    host,
		Params:  inTypes(ft),
		Results: outTypes(ft),
		Fn:      fv,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[host] = append(r.funcs[host], m)
	return nil
}

func (r *Registry) Constructor(result reflect.Type, params []reflect.Type) (*Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.ctors {
		if c.Result == result && sameTypes(c.Params, params) {
			return c, true
		}
	}
	return nil, false
}

func (r *Registry) StaticMethod(host reflect.Type, params []reflect.Type, pred Predicate) (*Method, bool) {
	if host == nil {
		return nil, false
	}
	if pred == nil {
		pred = Any
	}
	r.mu.RLock()
	registered := r.funcs[host]
	r.mu.RUnlock()
	for _, m := range registered {
		if sameTypes(m.Params, params) && pred(m) {
			return m, true
		}
	}
	if host.Kind() == reflect.Interface {
		return nil, false
	}
	// reflect returns method sets sorted by name.
	for i := 0; i < host.NumMethod(); i++ {
		rm := host.Method(i)
		ft := rm.Func.Type()
		if ft.IsVariadic() {
			continue
		}
		m := &Method{
			Name:     rm.Name,
			Host:     host,
			Params:   inTypes(ft),
			Results:  outTypes(ft),
			Receiver: true,
			Fn:       rm.Func,
		}
		if sameTypes(m.Params, params) && pred(m) {
			return m, true
		}
	}
	return nil, false
}

// RegisterConstructor registers fn with the default registry.
func RegisterConstructor(fn any) error {
	return Default().RegisterConstructor(fn)
}

// RegisterFunc registers fn as a static function of Host with the default
// registry.
func RegisterFunc[Host any](name string, fn any) error {
	return Default().RegisterFunc(reflect.TypeFor[Host](), name, fn)
}
