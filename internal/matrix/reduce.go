package matrix

import "github.com/born-ml/gradgraph/internal/autodiff"

// ReduceSum folds every cell into a chain of Add expressions seeded with
// Constant(0), in row-major order.
func ReduceSum(m Matrix) (autodiff.Node, error) {
	return fold(m, 0, func(acc, n autodiff.Node) autodiff.Node { return autodiff.Add(acc, n) })
}

// ReduceProd folds every cell into a chain of Mul expressions seeded with
// Constant(1), in row-major order.
func ReduceProd(m Matrix) (autodiff.Node, error) {
	return fold(m, 1, func(acc, n autodiff.Node) autodiff.Node { return autodiff.Mul(acc, n) })
}

func fold(m Matrix, identity float64, step func(acc, n autodiff.Node) autodiff.Node) (autodiff.Node, error) {
	if _, err := m.Shape(); err != nil {
		return nil, err
	}

	var acc autodiff.Node = autodiff.NewConstant(identity)
	for _, row := range m {
		for _, n := range row {
			acc = step(acc, n)
		}
	}
	return acc, nil
}
