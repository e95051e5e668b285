// Package expr parses infix arithmetic text into an autodiff graph.
//
// Parsing is delegated to the HCL native syntax, whose expression grammar
// already covers numbers, names, + - * /, unary minus, parentheses and
// function calls with the usual precedence:
//
//	(x + y) * (y + 3)
//	log(x*x + x*y + y*y) * x * y
//	pow(2, -x) / sqrt(y)
//
// Names resolve through an Env; every occurrence of a name yields the same
// Node, so a name used twice becomes a shared sub-graph.
package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/born-ml/gradgraph/internal/autodiff"
)

// Env maps names to graph nodes.
type Env map[string]autodiff.Node

// Parse parses src and builds its graph over env.
func Parse(src string, env Env) (autodiff.Node, error) {
	syntax, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fromDiagnostics(diags)
	}
	return build(syntax, env)
}

// Names returns the distinct root names src refers to, in order of appearance.
func Names(src string) ([]string, error) {
	syntax, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fromDiagnostics(diags)
	}

	var names []string
	seen := make(map[string]struct{})
	for _, traversal := range syntax.Variables() {
		name := traversal.RootName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// build converts one HCL syntax node.
func build(e hclsyntax.Expression, env Env) (autodiff.Node, error) {
	switch e := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		v, err := number(e.Val, e.SrcRange)
		if err != nil {
			return nil, err
		}
		return autodiff.NewConstant(v), nil

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return nil, newParseError(e.SrcRange, "attribute and index access are not supported")
		}
		name := e.Traversal.RootName()
		n, ok := env[name]
		if !ok {
			return nil, newParseError(e.SrcRange, fmt.Sprintf("unknown name %q", name))
		}
		return n, nil

	case *hclsyntax.ParenthesesExpr:
		return build(e.Expression, env)

	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return nil, newParseError(e.SrcRange, "unsupported unary operator")
		}
		operand, err := build(e.Val, env)
		if err != nil {
			return nil, err
		}
		if c, ok := operand.(*autodiff.Constant); ok {
			return autodiff.NewConstant(-c.Value()), nil
		}
		return autodiff.Sub(autodiff.NewConstant(0), operand), nil

	case *hclsyntax.BinaryOpExpr:
		combine, ok := binaryOps[e.Op]
		if !ok {
			return nil, newParseError(e.SrcRange, "unsupported binary operator")
		}
		lhs, err := build(e.LHS, env)
		if err != nil {
			return nil, err
		}
		rhs, err := build(e.RHS, env)
		if err != nil {
			return nil, err
		}
		return combine(lhs, rhs), nil

	case *hclsyntax.FunctionCallExpr:
		return call(e, env)

	default:
		return nil, newParseError(e.Range(), fmt.Sprintf("unsupported expression %T", e))
	}
}

var binaryOps = map[*hclsyntax.Operation]func(a, b autodiff.Node) autodiff.Node{
	hclsyntax.OpAdd:      func(a, b autodiff.Node) autodiff.Node { return autodiff.Add(a, b) },
	hclsyntax.OpSubtract: func(a, b autodiff.Node) autodiff.Node { return autodiff.Sub(a, b) },
	hclsyntax.OpMultiply: func(a, b autodiff.Node) autodiff.Node { return autodiff.Mul(a, b) },
	hclsyntax.OpDivide:   func(a, b autodiff.Node) autodiff.Node { return autodiff.Div(a, b) },
}

// number extracts a finite float64 from a numeric literal.
func number(v cty.Value, rng hcl.Range) (float64, error) {
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.Number {
		return 0, newParseError(rng, fmt.Sprintf("expected a number, got %s", v.Type().FriendlyName()))
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}
