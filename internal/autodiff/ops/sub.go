package ops

// subRule is subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
var subRule = Rule{
	Name:  "sub",
	Arity: 2,
	Forward: func(a, b float64) (float64, error) {
		return a - b, nil
	},
	DA: one,
	DB: func(_, _ float64) (float64, error) {
		return -1, nil
	},
}
