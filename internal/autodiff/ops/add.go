package ops

// addRule is addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
var addRule = Rule{
	Name:  "add",
	Arity: 2,
	Forward: func(a, b float64) (float64, error) {
		return a + b, nil
	},
	DA: one,
	DB: one,
}

// one is the constant partial shared by the linear operators.
func one(_, _ float64) (float64, error) {
	return 1, nil
}
