package ops

import "math"

// powRule is exponentiation: output = a^b.
//
// Backward pass:
//   - d(a^b)/da = b·a^(b-1)
//   - d(a^b)/db = a^b·ln(a), defined for a > 0 only
//
// Results that leave the finite reals (0^-1, (-8)^(1/3), overflow) are
// reported as domain errors.
var powRule = Rule{
	Name:  "pow",
	Arity: 2,
	Forward: func(a, b float64) (float64, error) {
		return finite(Pow, "forward", a, b, math.Pow(a, b))
	},
	DA: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, nil
		}
		return finite(Pow, "dA", a, b, b*math.Pow(a, b-1))
	},
	DB: func(a, b float64) (float64, error) {
		if a <= 0 {
			return 0, newDomainError(Pow, "dB", a, b, "logarithm of non-positive base")
		}
		return finite(Pow, "dB", a, b, math.Pow(a, b)*math.Log(a))
	},
}

// finite passes v through unless it is NaN or ±Inf.
func finite(op Op, rule string, a, b, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newDomainError(op, rule, a, b, "result is not a finite number")
	}
	return v, nil
}
