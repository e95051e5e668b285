package matrix

import "github.com/born-ml/gradgraph/internal/autodiff"

// CombineFunc builds the node for one output cell from the two input cells.
type CombineFunc func(a, b autodiff.Node) autodiff.Node

// Combine returns a matrix with cell (r, c) = op(a[r][c], b[r][c]).
// The operands must have the same shape.
func Combine(a, b Matrix, op CombineFunc) (Matrix, error) {
	sa, err := a.Shape()
	if err != nil {
		return nil, err
	}
	sb, err := b.Shape()
	if err != nil {
		return nil, err
	}
	if !sa.Equal(sb) {
		return nil, &ShapeError{Op: "combine", Left: sa, Right: sb}
	}

	return New(sa.Rows, sa.Cols, func(r, c int) autodiff.Node {
		return op(a[r][c], b[r][c])
	})
}

// Add returns the elementwise sum a + b.
func Add(a, b Matrix) (Matrix, error) {
	return Combine(a, b, func(x, y autodiff.Node) autodiff.Node { return autodiff.Add(x, y) })
}

// Sub returns the elementwise difference a - b.
func Sub(a, b Matrix) (Matrix, error) {
	return Combine(a, b, func(x, y autodiff.Node) autodiff.Node { return autodiff.Sub(x, y) })
}

// Mul returns the elementwise product a ⊙ b.
func Mul(a, b Matrix) (Matrix, error) {
	return Combine(a, b, func(x, y autodiff.Node) autodiff.Node { return autodiff.Mul(x, y) })
}

// Div returns the elementwise quotient a / b.
func Div(a, b Matrix) (Matrix, error) {
	return Combine(a, b, func(x, y autodiff.Node) autodiff.Node { return autodiff.Div(x, y) })
}
