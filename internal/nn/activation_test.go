package nn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/matrix"
)

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// TestActivations_Forward checks activations against math package values.
func TestActivations_Forward(t *testing.T) {
	tests := []struct {
		name string
		act  Activation
		ref  func(float64) float64
	}{
		{"exp", Exp, math.Exp},
		{"neg", Neg, func(x float64) float64 { return -x }},
		{"sigmoid", Sigmoid, sigmoid},
		{"softplus", Softplus, func(x float64) float64 { return math.Log(1 + math.Exp(x)) }},
		{"tanh", Tanh, math.Tanh},
	}

	for _, tt := range tests {
		for _, x := range []float64{-2, -0.5, 0, 1, 3} {
			got, err := tt.act(autodiff.NewConstant(x)).Forward()
			require.NoError(t, err)
			assert.InDelta(t, tt.ref(x), got, 1e-12, "%s(%v)", tt.name, x)
		}
	}
}

// TestActivations_Gradient checks activation gradients using finite differences.
func TestActivations_Gradient(t *testing.T) {
	for name, act := range map[string]Activation{
		"exp": Exp, "sigmoid": Sigmoid, "softplus": Softplus, "tanh": Tanh,
	} {
		x := autodiff.NewVariable("x", 0.7)
		checks, err := autodiff.CheckGradients(act(x), 1e-5)
		require.NoError(t, err)
		require.Len(t, checks, 1)
		assert.True(t, checks[0].Within(1e-7), "%s: analytic %v numeric %v", name, checks[0].Analytic, checks[0].Numeric)
	}
}

func TestSigmoid_Derivative(t *testing.T) {
	x := autodiff.NewVariable("x", 1)
	f := Sigmoid(x)

	_, err := f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))

	s := sigmoid(1)
	assert.InDelta(t, s*(1-s), x.Derivative(), 1e-12)
}

func TestActivation_AsModule(t *testing.T) {
	in, err := matrix.NewConstants([][]float64{{0, 1}, {-1, 2}})
	require.NoError(t, err)

	out, err := Activation(Sigmoid).Forward(in)
	require.NoError(t, err)
	got, err := out.Eval()
	require.NoError(t, err)

	assert.InDelta(t, 0.5, got[0][0], 1e-12)
	assert.InDelta(t, sigmoid(2), got[1][1], 1e-12)
	assert.Nil(t, Activation(Tanh).Parameters())
}

func TestSoftmax(t *testing.T) {
	logits, err := matrix.NewVariables("z", [][]float64{{1}, {2}, {3}})
	require.NoError(t, err)

	probs, err := Softmax(logits)
	require.NoError(t, err)
	got, err := probs.Eval()
	require.NoError(t, err)

	den := math.Exp(1) + math.Exp(2) + math.Exp(3)
	sum := 0.0
	for i, row := range got {
		assert.InDelta(t, math.Exp(float64(i+1))/den, row[0], 1e-12)
		sum += row[0]
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestSoftmax_LargeInputs(t *testing.T) {
	logits, err := matrix.NewConstants([][]float64{{1000}, {1001}})
	require.NoError(t, err)

	probs, err := Softmax(logits)
	require.NoError(t, err)
	got, err := probs.Eval()
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.E), got[0][0], 1e-12)

	naive, err := NaiveSoftmax(logits)
	require.NoError(t, err)
	_, err = naive.Eval()
	assert.True(t, errors.Is(err, ops.ErrDomain))
}

func TestSoftmax_RequiresColumn(t *testing.T) {
	row, err := matrix.NewConstants([][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = Softmax(row)
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch))
	_, err = NaiveSoftmax(matrix.Matrix{})
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch))
}
