package ops

import "math"

// logRule is the natural logarithm: output = ln(a). It is unary; b is ignored.
//
// Backward pass:
//
//	d(ln a)/da = 1/a
//
// Both rules require a > 0.
var logRule = Rule{
	Name:  "log",
	Arity: 1,
	Forward: func(a, _ float64) (float64, error) {
		if a <= 0 {
			return 0, newDomainError(Log, "forward", a, 0, "logarithm of non-positive value")
		}
		return math.Log(a), nil
	},
	DA: func(a, _ float64) (float64, error) {
		if a <= 0 {
			return 0, newDomainError(Log, "dA", a, 0, "logarithm of non-positive value")
		}
		return 1 / a, nil
	},
}
