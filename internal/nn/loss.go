package nn

import (
	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Epsilon keeps logarithm arguments away from zero in the cross entropy losses.
const Epsilon = 1e-8

// SSE returns the sum of squared errors Σ (predictions - targets)².
func SSE(predictions, targets matrix.Matrix) (autodiff.Node, error) {
	diff, err := matrix.Sub(predictions, targets)
	if err != nil {
		return nil, err
	}
	squared, err := matrix.Mul(diff, diff)
	if err != nil {
		return nil, err
	}
	return matrix.ReduceSum(squared)
}

// MSE returns the mean squared error: SSE divided by the number of cells.
//
// MSE is commonly used for regression tasks where the goal is to predict
// continuous values.
func MSE(predictions, targets matrix.Matrix) (autodiff.Node, error) {
	sse, err := SSE(predictions, targets)
	if err != nil {
		return nil, err
	}
	s, err := predictions.Shape()
	if err != nil {
		return nil, err
	}
	if s.Empty() {
		return sse, nil
	}
	return autodiff.Div(sse, autodiff.NewConstant(float64(s.NumElements()))), nil
}

// CrossEntropy returns -Σ truth · ln(predictions + ε).
//
// predictions are expected to be probabilities (e.g. a Softmax output) and
// truth a one-hot or soft label matrix of the same shape.
func CrossEntropy(predictions, truth matrix.Matrix) (autodiff.Node, error) {
	logs, err := matrix.Map(predictions, logEps)
	if err != nil {
		return nil, err
	}
	terms, err := matrix.Mul(truth, logs)
	if err != nil {
		return nil, err
	}
	sum, err := matrix.ReduceSum(terms)
	if err != nil {
		return nil, err
	}
	return Neg(sum), nil
}

// BinaryCrossEntropy returns
//
//	-Σ truth · ln(p + ε) + (1 - truth) · ln(1 - p + ε)
//
// for independent per-cell probabilities p (e.g. Sigmoid outputs).
func BinaryCrossEntropy(predictions, truth matrix.Matrix) (autodiff.Node, error) {
	one := autodiff.NewConstant(1)

	pos, err := matrix.Combine(truth, predictions, func(t, p autodiff.Node) autodiff.Node {
		return autodiff.Mul(t, logEps(p))
	})
	if err != nil {
		return nil, err
	}
	neg, err := matrix.Combine(truth, predictions, func(t, p autodiff.Node) autodiff.Node {
		return autodiff.Mul(autodiff.Sub(one, t), logEps(autodiff.Sub(one, p)))
	})
	if err != nil {
		return nil, err
	}
	terms, err := matrix.Add(pos, neg)
	if err != nil {
		return nil, err
	}
	sum, err := matrix.ReduceSum(terms)
	if err != nil {
		return nil, err
	}
	return Neg(sum), nil
}

func logEps(x autodiff.Node) autodiff.Node {
	return autodiff.Log(autodiff.Add(x, autodiff.NewConstant(Epsilon)))
}
