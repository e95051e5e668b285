package ops

// divRule is division: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
//
// Every rule rejects b == 0.
var divRule = Rule{
	Name:  "div",
	Arity: 2,
	Forward: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, newDomainError(Div, "forward", a, b, "division by zero")
		}
		return a / b, nil
	},
	DA: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, newDomainError(Div, "dA", a, b, "division by zero")
		}
		return 1 / b, nil
	},
	DB: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, newDomainError(Div, "dB", a, b, "division by zero")
		}
		return -a / (b * b), nil
	},
}
