package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Softmax normalizes a column vector into a probability distribution:
//
//	softmax(x)[i] = e^(x[i] - max(x)) / Σ_j e^(x[j] - max(x))
//
// The shift by max(x) keeps exponentials from overflowing and does not change
// the result or its gradient. It is taken from the current values of the
// inputs, which are evaluated while the graph is built, so a softmax built
// before the inputs change keeps the old shift (still exact, possibly less
// stable).
func Softmax(col matrix.Matrix) (matrix.Matrix, error) {
	if err := checkColumn(col); err != nil {
		return nil, err
	}

	shift := math.Inf(-1)
	for r, row := range col {
		v, err := row[0].Forward()
		if err != nil {
			return nil, fmt.Errorf("softmax: row %d: %w", r, err)
		}
		shift = math.Max(shift, v)
	}

	maxNode := autodiff.NewConstant(shift)
	return normalize(col, func(x autodiff.Node) autodiff.Node {
		return Exp(autodiff.Sub(x, maxNode))
	})
}

// NaiveSoftmax is Softmax without the max shift. It overflows for inputs
// beyond roughly 709.
func NaiveSoftmax(col matrix.Matrix) (matrix.Matrix, error) {
	if err := checkColumn(col); err != nil {
		return nil, err
	}
	return normalize(col, Exp)
}

// normalize divides exp(x) for every cell by the sum over all cells.
func normalize(col matrix.Matrix, exp Activation) (matrix.Matrix, error) {
	exps, err := matrix.Map(col, exp)
	if err != nil {
		return nil, err
	}
	sum, err := matrix.ReduceSum(exps)
	if err != nil {
		return nil, err
	}
	return matrix.Map(exps, func(e autodiff.Node) autodiff.Node {
		return autodiff.Div(e, sum)
	})
}

func checkColumn(m matrix.Matrix) error {
	s, err := m.Shape()
	if err != nil {
		return err
	}
	if s.Cols != 1 || s.Rows == 0 {
		return &matrix.ShapeError{Op: "softmax", Left: s, Details: "want a non-empty column vector"}
	}
	return nil
}
