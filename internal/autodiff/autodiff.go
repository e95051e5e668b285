// Package autodiff implements reverse-mode automatic differentiation over
// scalar expression graphs.
//
// A graph is made of three kinds of Node:
//   - Constant: an immutable number, never receives a gradient
//   - Variable: a mutable leaf that accumulates ∂output/∂variable
//   - Expression: an operator from the ops table applied to one or two children
//
// Forward evaluation is a post-order traversal that memoizes every
// Expression's value. Backward differentiation is a pre-order traversal from
// the output that multiplies the upstream factor by each edge's partial
// derivative and adds the result into the Variables it reaches, so a Variable
// shared by several paths receives the sum of their contributions.
//
// Usage:
//
//	x := autodiff.NewVariable("x", 1)
//	y := autodiff.NewVariable("y", 2)
//	f := autodiff.Mul(autodiff.Add(x, y), autodiff.Add(y, autodiff.NewConstant(3)))
//
//	v, err := f.Forward()        // 15
//	err = autodiff.Backward(f)   // x.Derivative() == 5, y.Derivative() == 8
//	f.Reset()                    // ready for a new assignment
//
// Nodes are not safe for concurrent use.
package autodiff

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/gradgraph/internal/autodiff/ops"
)

// Node is a vertex of an expression graph.
type Node interface {
	// Forward returns the node's value. Expressions compute it once and
	// return the cached value until Reset.
	Forward() (float64, error)

	// Backward propagates upstream = ∂output/∂(this node) to the leaves.
	// Expressions read their children's cached values, so Forward must have
	// run on the current assignment.
	Backward(upstream float64) error

	// Reset clears accumulated derivatives and cached values of every node
	// reachable from this one.
	Reset()
}

// clock stamps Variable assignments so stale memos can be detected.
var clock atomic.Uint64

// Constant is a leaf holding an immutable value.
type Constant struct {
	value float64
}

// NewConstant creates a constant leaf.
func NewConstant(value float64) *Constant {
	return &Constant{value: value}
}

// Value returns the constant's value.
func (c *Constant) Value() float64 { return c.value }

// Forward returns the constant's value.
func (c *Constant) Forward() (float64, error) { return c.value, nil }

// Backward is a no-op: constants never accumulate a gradient.
func (c *Constant) Backward(float64) error { return nil }

// Reset is a no-op.
func (c *Constant) Reset() {}

// String implements fmt.Stringer.
func (c *Constant) String() string { return fmt.Sprintf("%g", c.value) }

// Variable is a mutable leaf that accumulates its derivative.
type Variable struct {
	name       string
	value      float64
	derivative float64
	version    uint64 // clock value of the last Set
}

// NewVariable creates a variable leaf with a zero derivative.
// The name is used by reports and may be empty.
func NewVariable(name string, value float64) *Variable {
	return &Variable{name: name, value: value}
}

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Value returns the current value.
func (v *Variable) Value() float64 { return v.value }

// Set assigns a new value. Cached values of every Expression above v are
// stale afterwards; call Reset on the output before the next Forward.
func (v *Variable) Set(value float64) {
	v.value = value
	v.version = clock.Add(1)
}

// Derivative returns the derivative accumulated since the last Reset.
func (v *Variable) Derivative() float64 { return v.derivative }

// Forward returns the current value.
func (v *Variable) Forward() (float64, error) { return v.value, nil }

// Backward adds upstream to the accumulated derivative.
func (v *Variable) Backward(upstream float64) error {
	v.derivative += upstream
	return nil
}

// Reset zeroes the accumulated derivative.
func (v *Variable) Reset() { v.derivative = 0 }

// String implements fmt.Stringer.
func (v *Variable) String() string {
	if v.name == "" {
		return fmt.Sprintf("var(%g)", v.value)
	}
	return v.name
}

// Expression applies an operator to its children and caches the result.
// Unary operators have a nil right child.
type Expression struct {
	op          ops.Op
	left, right Node

	memo   float64
	cached bool
	stamp  uint64 // newest Variable version seen when memo was computed

	live bool // some Variable is reachable through a child
}

func newExpression(op ops.Op, left, right Node) *Expression {
	return &Expression{
		op:    op,
		left:  left,
		right: right,
		live:  dependsOnVariable(left) || (right != nil && dependsOnVariable(right)),
	}
}

// Apply builds an Expression for op over operands, checking the arity.
func Apply(op ops.Op, operands ...Node) (*Expression, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("autodiff: unknown operator %v", op)
	}
	if len(operands) != op.Arity() {
		return nil, fmt.Errorf("autodiff: %s takes %d operand(s), got %d", op, op.Arity(), len(operands))
	}
	for i, n := range operands {
		if n == nil {
			return nil, fmt.Errorf("autodiff: %s operand %d is nil", op, i)
		}
	}
	if op.Arity() == 1 {
		return newExpression(op, operands[0], nil), nil
	}
	return newExpression(op, operands[0], operands[1]), nil
}

// Add returns a + b.
func Add(a, b Node) *Expression { return newExpression(ops.Add, a, b) }

// Sub returns a - b.
func Sub(a, b Node) *Expression { return newExpression(ops.Sub, a, b) }

// Mul returns a * b.
func Mul(a, b Node) *Expression { return newExpression(ops.Mul, a, b) }

// Div returns a / b.
func Div(a, b Node) *Expression { return newExpression(ops.Div, a, b) }

// Pow returns a^b.
func Pow(a, b Node) *Expression { return newExpression(ops.Pow, a, b) }

// Log returns ln(a).
func Log(a Node) *Expression { return newExpression(ops.Log, a, nil) }

// Op returns the expression's operator.
func (e *Expression) Op() ops.Op { return e.op }

// Left returns the first operand.
func (e *Expression) Left() Node { return e.left }

// Right returns the second operand, or nil for unary operators.
func (e *Expression) Right() Node { return e.right }

// Cached returns the memoized value and whether one is set.
func (e *Expression) Cached() (float64, bool) { return e.memo, e.cached }

// Forward evaluates the children, applies the operator and caches the result.
// Later calls return the cached value without visiting the children.
func (e *Expression) Forward() (float64, error) {
	if e.cached {
		return e.memo, nil
	}

	a, err := e.left.Forward()
	if err != nil {
		return 0, err
	}
	var b float64
	if e.right != nil {
		if b, err = e.right.Forward(); err != nil {
			return 0, err
		}
	}

	v, err := e.op.Forward(a, b)
	if err != nil {
		return 0, err
	}

	e.memo = v
	e.cached = true
	e.stamp = versionOf(e.left)
	if e.right != nil {
		e.stamp = max(e.stamp, versionOf(e.right))
	}
	return v, nil
}

// Backward multiplies upstream by the operator's partials and recurses into
// the children, left first. Children without a reachable Variable are skipped.
func (e *Expression) Backward(upstream float64) error {
	if !e.cached {
		return &StaleStateError{Node: e.op.String(), Reason: reasonNotEvaluated}
	}

	a, err := e.left.Forward()
	if err != nil {
		return err
	}
	var b float64
	if e.right != nil {
		if b, err = e.right.Forward(); err != nil {
			return err
		}
	}

	if dependsOnVariable(e.left) {
		da, err := e.op.DA(a, b)
		if err != nil {
			return err
		}
		if err := e.left.Backward(upstream * da); err != nil {
			return err
		}
	}

	if e.right != nil && dependsOnVariable(e.right) {
		db, err := e.op.DB(a, b)
		if err != nil {
			return err
		}
		if err := e.right.Backward(upstream * db); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops the cached value and resets both children.
func (e *Expression) Reset() {
	e.memo = 0
	e.cached = false
	e.stamp = 0
	e.left.Reset()
	if e.right != nil {
		e.right.Reset()
	}
}

// String renders the expression in prefix form, e.g. "mul(add(x, y), 3)".
func (e *Expression) String() string {
	if e.right == nil {
		return fmt.Sprintf("%s(%v)", e.op, e.left)
	}
	return fmt.Sprintf("%s(%v, %v)", e.op, e.left, e.right)
}

// dependsOnVariable reports whether a gradient sent into n can reach a Variable.
// Unknown Node implementations are assumed to need it.
func dependsOnVariable(n Node) bool {
	switch n := n.(type) {
	case *Constant:
		return false
	case *Expression:
		return n.live
	default:
		return true
	}
}

// versionOf returns the newest Variable version n's value was computed from.
func versionOf(n Node) uint64 {
	switch n := n.(type) {
	case *Variable:
		return n.version
	case *Expression:
		return n.stamp
	default:
		return 0
	}
}
