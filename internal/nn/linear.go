package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias row with shape [1, out_features], added to every row
//   - y is the output with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	layer, err := nn.NewLinear("fc1", 3, 2, rand.New(rand.NewSource(1)))
//	output, err := layer.Forward(input) // shape: [batch, 2]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      matrix.Matrix // [out_features, in_features]
	bias        matrix.Matrix // [1, out_features]
}

// NewLinear creates a new Linear layer whose Variables are named
// "<name>.weight[r][c]" and "<name>.bias[0][c]".
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) (*Linear, error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, fmt.Errorf("linear %s: features must be positive, got in=%d out=%d", name, inFeatures, outFeatures)
	}

	weight, err := Xavier(name+".weight", inFeatures, outFeatures, matrix.Shape{Rows: outFeatures, Cols: inFeatures}, rng)
	if err != nil {
		return nil, err
	}
	bias, err := Zeros(name+".bias", matrix.Shape{Rows: 1, Cols: outFeatures})
	if err != nil {
		return nil, err
	}

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}, nil
}

// Forward builds y = x @ W.T + b.
func (l *Linear) Forward(input matrix.Matrix) (matrix.Matrix, error) {
	s, err := input.Shape()
	if err != nil {
		return nil, err
	}
	if s.Cols != l.inFeatures {
		return nil, &matrix.ShapeError{
			Op:      "linear",
			Left:    s,
			Details: fmt.Sprintf("expected %d input features, got %d", l.inFeatures, s.Cols),
		}
	}

	wt, err := matrix.Transpose(l.weight)
	if err != nil {
		return nil, err
	}
	xw, err := matrix.MatMul(input, wt)
	if err != nil {
		return nil, err
	}

	return matrix.New(s.Rows, l.outFeatures, func(r, c int) autodiff.Node {
		return autodiff.Add(xw[r][c], l.bias[0][c])
	})
}

// Parameters returns the weight Variables followed by the bias Variables.
func (l *Linear) Parameters() []*autodiff.Variable {
	return append(l.weight.Variables(), l.bias.Variables()...)
}

// Weight returns the weight matrix [out_features, in_features].
func (l *Linear) Weight() matrix.Matrix {
	return l.weight
}

// Bias returns the bias row [1, out_features].
func (l *Linear) Bias() matrix.Matrix {
	return l.bias
}
