// Package ops defines the operator table for scalar automatic differentiation.
//
// Each operator is identified by an Op tag and described by a Rule holding
// three pure functions of the forward-evaluated operand values a and b:
//   - Forward: the operator's result
//   - DA: ∂output/∂a evaluated at (a, b)
//   - DB: ∂output/∂b evaluated at (a, b)
//
// Supported operators:
//   - Add: a + b (dA = 1, dB = 1)
//   - Sub: a - b (dA = 1, dB = -1)
//   - Mul: a * b (dA = b, dB = a)
//   - Div: a / b (dA = 1/b, dB = -a/b²)
//   - Pow: a^b (dA = b·a^(b-1), dB = a^b·ln(a))
//   - Log: ln(a), unary (dA = 1/a)
//
// Rules never produce NaN or Inf silently: evaluations outside an operator's
// domain return a *DomainError.
package ops

import "fmt"

// Op tags an entry of the operator table.
type Op uint8

// Operator tags.
const (
	Add Op = iota
	Sub
	Mul
	Div
	Pow
	Log

	numOps
)

// Func is a pure numeric rule over the operand values a and b.
// Unary operators ignore b.
type Func func(a, b float64) (float64, error)

// Rule is the forward rule and the two partial derivative rules of an operator.
type Rule struct {
	Name    string
	Arity   int  // 1 for unary operators, 2 otherwise
	Forward Func // output
	DA      Func // ∂output/∂a
	DB      Func // ∂output/∂b, nil for unary operators
}

// table maps every Op to its Rule. Indexed by Op, so adding a tag without a
// rule leaves a zero Rule that Valid rejects.
var table = [numOps]Rule{
	Add: addRule,
	Sub: subRule,
	Mul: mulRule,
	Div: divRule,
	Pow: powRule,
	Log: logRule,
}

// Valid reports whether op names an entry of the operator table.
func (op Op) Valid() bool {
	return op < numOps && table[op].Forward != nil
}

// Rule returns the operator's rule. It panics on an unknown tag, which can
// only come from a programming error.
func (op Op) Rule() Rule {
	if !op.Valid() {
		panic(fmt.Sprintf("ops: unknown operator %d", uint8(op)))
	}
	return table[op]
}

// Arity returns 1 for unary operators and 2 for binary ones.
func (op Op) Arity() int {
	return op.Rule().Arity
}

// String returns the operator name.
func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return table[op].Name
}

// Forward applies the operator's forward rule.
func (op Op) Forward(a, b float64) (float64, error) {
	return op.Rule().Forward(a, b)
}

// DA evaluates ∂output/∂a at (a, b).
func (op Op) DA(a, b float64) (float64, error) {
	return op.Rule().DA(a, b)
}

// DB evaluates ∂output/∂b at (a, b). Unary operators have no second operand
// and report a zero partial.
func (op Op) DB(a, b float64) (float64, error) {
	r := op.Rule()
	if r.DB == nil {
		return 0, nil
	}
	return r.DB(a, b)
}

// All returns every operator tag in table order.
func All() []Op {
	all := make([]Op, 0, numOps)
	for op := Op(0); op < numOps; op++ {
		all = append(all, op)
	}
	return all
}
