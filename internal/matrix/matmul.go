package matrix

import "github.com/born-ml/gradgraph/internal/autodiff"

// MatMul builds the product graph (M, K) @ (K, N) -> (M, N).
//
// Each output cell is a chain of Add expressions seeded from Constant(0):
//
//	C[i][j] = ((0 + A[i][0]·B[0][j]) + A[i][1]·B[1][j]) + ...
//
// so its depth equals K. Input cells are shared by every product that uses
// them, which makes the result a DAG.
func MatMul(a, b Matrix) (Matrix, error) {
	sa, err := a.Shape()
	if err != nil {
		return nil, err
	}
	sb, err := b.Shape()
	if err != nil {
		return nil, err
	}
	if sa.Empty() || sb.Empty() {
		return nil, &ShapeError{Op: "matmul", Left: sa, Right: sb, Details: "empty operand"}
	}
	if sa.Cols != sb.Rows {
		return nil, &ShapeError{Op: "matmul", Left: sa, Right: sb}
	}

	m, k, n := sa.Rows, sa.Cols, sb.Cols
	return New(m, n, func(i, j int) autodiff.Node {
		var acc autodiff.Node = autodiff.NewConstant(0)
		for p := 0; p < k; p++ {
			acc = autodiff.Add(acc, autodiff.Mul(a[i][p], b[p][j]))
		}
		return acc
	})
}
