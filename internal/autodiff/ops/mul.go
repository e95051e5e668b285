package ops

// mulRule is multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
var mulRule = Rule{
	Name:  "mul",
	Arity: 2,
	Forward: func(a, b float64) (float64, error) {
		return a * b, nil
	},
	DA: func(_, b float64) (float64, error) {
		return b, nil
	},
	DB: func(a, _ float64) (float64, error) {
		return a, nil
	},
}
