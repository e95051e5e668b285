// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// A computation is a directed acyclic graph of nodes. Leaves are Constants
// and Variables; interior nodes are Expressions that apply a binary operator
// (Log is unary) to their children. Forward evaluates and memoizes, Backward
// pushes the chain rule from the root down to every Variable.
//
// Example:
//
//	import "github.com/born-ml/gradgraph/autodiff"
//
//	func main() {
//	    x := autodiff.NewVariable("x", 1)
//	    y := autodiff.NewVariable("y", 2)
//	    f := autodiff.Mul(autodiff.Add(x, y), autodiff.Add(y, autodiff.NewConstant(3)))
//
//	    v, _ := f.Forward()        // 15
//	    _ = autodiff.Backward(f)   // x.Derivative() == 5, y.Derivative() == 8
//
//	    // Change an input and re-evaluate.
//	    x.Set(2)
//	    f.Reset()
//	}
//
// Derivatives accumulate across backward passes until Reset. Nodes are not
// safe for concurrent use.
package autodiff

import (
	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
)

// Node is a vertex of the computation graph.
type Node = autodiff.Node

// Constant is a fixed leaf value.
type Constant = autodiff.Constant

// Variable is a differentiable leaf.
type Variable = autodiff.Variable

// Expression is an operator applied to one or two child nodes.
type Expression = autodiff.Expression

// NewConstant creates a constant leaf.
func NewConstant(value float64) *Constant {
	return autodiff.NewConstant(value)
}

// NewVariable creates a named variable with zero derivative.
func NewVariable(name string, value float64) *Variable {
	return autodiff.NewVariable(name, value)
}

// Op identifies an operator.
type Op = ops.Op

// Operators.
const (
	OpAdd = ops.Add
	OpSub = ops.Sub
	OpMul = ops.Mul
	OpDiv = ops.Div
	OpPow = ops.Pow
	OpLog = ops.Log
)

// Apply builds an expression for op, checking arity.
func Apply(op Op, operands ...Node) (*Expression, error) {
	return autodiff.Apply(op, operands...)
}

// Add returns a + b.
func Add(a, b Node) *Expression { return autodiff.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Node) *Expression { return autodiff.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b Node) *Expression { return autodiff.Mul(a, b) }

// Div returns a / b.
func Div(a, b Node) *Expression { return autodiff.Div(a, b) }

// Pow returns a^b.
func Pow(a, b Node) *Expression { return autodiff.Pow(a, b) }

// Log returns ln(a).
func Log(a Node) *Expression { return autodiff.Log(a) }

// Backward seeds root with 1 and propagates derivatives to every Variable.
// Root must have been evaluated since its Variables last changed.
func Backward(root Node) error {
	return autodiff.Backward(root)
}

// Variables lists the Variables reachable from root, once each.
func Variables(root Node) []*Variable {
	return autodiff.Variables(root)
}

// Gradients maps every reachable Variable to its accumulated derivative.
func Gradients(root Node) map[*Variable]float64 {
	return autodiff.Gradients(root)
}

// Gradient checking

// DefaultEpsilon is the default finite difference step.
const DefaultEpsilon = autodiff.DefaultEpsilon

// GradientCheck compares one analytic derivative with its numeric estimate.
type GradientCheck = autodiff.GradientCheck

// NumericalGradient estimates d root / d v by central differences.
func NumericalGradient(root Node, v *Variable, eps float64) (float64, error) {
	return autodiff.NumericalGradient(root, v, eps)
}

// CheckGradients compares every reachable Variable's derivative with
// NumericalGradient.
func CheckGradients(root Node, eps float64) ([]GradientCheck, error) {
	return autodiff.CheckGradients(root, eps)
}

// Errors

// ErrDomain is matched by operator domain failures such as log(0) or x/0.
var ErrDomain = ops.ErrDomain

// DomainError describes an operator domain failure.
type DomainError = ops.DomainError

// ErrStaleState is matched when Backward runs on an unevaluated or outdated graph.
var ErrStaleState = autodiff.ErrStaleState

// StaleStateError describes a stale graph.
type StaleStateError = autodiff.StaleStateError
