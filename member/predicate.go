package member

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Any accepts every candidate.
func Any(*Method) bool { return true }

// Named accepts candidates called name.
func Named(name string) Predicate {
	return func(m *Method) bool {
		return m.Name == name
	}
}

// methodEnv is the environment visible to expression predicates.
type methodEnv struct {
	Name     string
	Host     string
	NumIn    int
	NumOut   int
	Receiver bool
}

// ExprPredicate compiles a boolean expression over a candidate's Name, Host,
// NumIn, NumOut and Receiver, for example
//
//	Name startsWith "Parse" && !Receiver
func ExprPredicate(src string) (Predicate, error) {
	prg, err := expr.Compile(src, expr.Env(methodEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid predicate %q: %w", src, err)
	}
	return exprPredicate(prg), nil
}

func exprPredicate(prg *vm.Program) Predicate {
	return func(m *Method) bool {
		env := methodEnv{
			Name:     m.Name,
			Host:     m.Host.String(),
			NumIn:    len(m.Params),
			NumOut:   len(m.Results),
			Receiver: m.Receiver,
		}
		out, err := expr.Run(prg, env)
		if err != nil {
			return false
		}
		b, _ := out.(bool)
		return b
	}
}
