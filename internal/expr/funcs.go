package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/nn"
)

type function struct {
	arity int
	build func(args []autodiff.Node) autodiff.Node
}

func unary(f func(autodiff.Node) autodiff.Node) function {
	return function{arity: 1, build: func(args []autodiff.Node) autodiff.Node { return f(args[0]) }}
}

var functions = map[string]function{
	"log": unary(func(a autodiff.Node) autodiff.Node { return autodiff.Log(a) }),
	"exp": unary(nn.Exp),
	"pow": {arity: 2, build: func(args []autodiff.Node) autodiff.Node {
		return autodiff.Pow(args[0], args[1])
	}},
	"sqrt": unary(func(a autodiff.Node) autodiff.Node {
		return autodiff.Pow(a, autodiff.NewConstant(0.5))
	}),
	"sigmoid":  unary(nn.Sigmoid),
	"softplus": unary(nn.Softplus),
	"tanh":     unary(nn.Tanh),
}

// Functions returns the names of the supported functions, sorted.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func call(e *hclsyntax.FunctionCallExpr, env Env) (autodiff.Node, error) {
	fn, ok := functions[e.Name]
	if !ok {
		return nil, newParseError(e.NameRange, fmt.Sprintf("unknown function %q (have %s)", e.Name, strings.Join(Functions(), ", ")))
	}
	if e.ExpandFinal {
		return nil, newParseError(e.Range(), "argument expansion is not supported")
	}
	if len(e.Args) != fn.arity {
		return nil, newParseError(e.Range(), fmt.Sprintf("%s takes %d argument(s), got %d", e.Name, fn.arity, len(e.Args)))
	}

	args := make([]autodiff.Node, len(e.Args))
	for i, arg := range e.Args {
		n, err := build(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return fn.build(args), nil
}
