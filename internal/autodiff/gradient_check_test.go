package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff"
)

const gradTolerance = 1e-6

func c(v float64) *autodiff.Constant { return autodiff.NewConstant(v) }

// TestCheckGradients_Functions compares backward-pass gradients with central
// differences over a set of composite functions.
func TestCheckGradients_Functions(t *testing.T) {
	tests := []struct {
		name  string
		build func(x, y *autodiff.Variable) autodiff.Node
	}{
		{
			"x^3·(x+3y)/(y²·x)",
			func(x, y *autodiff.Variable) autodiff.Node {
				num := autodiff.Mul(autodiff.Pow(x, c(3)), autodiff.Add(x, autodiff.Mul(c(3), y)))
				den := autodiff.Mul(autodiff.Pow(y, c(2)), x)
				return autodiff.Div(num, den)
			},
		},
		{
			"log(x²+xy+y²)·x·y",
			func(x, y *autodiff.Variable) autodiff.Node {
				inner := autodiff.Add(autodiff.Add(autodiff.Mul(x, x), autodiff.Mul(x, y)), autodiff.Mul(y, y))
				return autodiff.Mul(autodiff.Mul(autodiff.Log(inner), x), y)
			},
		},
		{
			"tanh via e^x",
			func(x, _ *autodiff.Variable) autodiff.Node {
				e := c(math.E)
				pos := autodiff.Pow(e, x)
				neg := autodiff.Pow(e, autodiff.Mul(c(-1), x))
				return autodiff.Div(autodiff.Sub(pos, neg), autodiff.Add(pos, neg))
			},
		},
		{
			"2^(-x)·y^x",
			func(x, y *autodiff.Variable) autodiff.Node {
				return autodiff.Mul(autodiff.Pow(c(2), autodiff.Mul(c(-1), x)), autodiff.Pow(y, x))
			},
		},
		{
			"x-y",
			func(x, y *autodiff.Variable) autodiff.Node {
				return autodiff.Sub(x, y)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := autodiff.NewVariable("x", 1)
			y := autodiff.NewVariable("y", 2)
			f := tt.build(x, y)

			checks, err := autodiff.CheckGradients(f, autodiff.DefaultEpsilon)
			require.NoError(t, err)
			require.NotEmpty(t, checks)

			for _, check := range checks {
				assert.True(t, check.Within(gradTolerance),
					"d/d%s: analytic %v, numeric %v", check.Variable, check.Analytic, check.Numeric)
				assert.Equal(t, check.Analytic, check.Variable.Derivative())
			}
		})
	}
}

func TestNumericalGradient_RestoresValue(t *testing.T) {
	f, x, y := workedExample(1, 2)

	dx, err := autodiff.NumericalGradient(f, x, 1e-5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, dx, 1e-6)

	dy, err := autodiff.NumericalGradient(f, y, 0)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, dy, 1e-6)

	assert.Equal(t, 1.0, x.Value())
	assert.Equal(t, 2.0, y.Value())

	v, err := f.Forward()
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)
}

func TestNumericalGradient_DomainError(t *testing.T) {
	x := autodiff.NewVariable("x", 0)
	f := autodiff.Log(x)

	_, err := autodiff.NumericalGradient(f, x, 1e-3)
	assert.Error(t, err)
	assert.Equal(t, 0.0, x.Value())
}

func TestGradientCheck_Within(t *testing.T) {
	check := autodiff.GradientCheck{Analytic: 100, Numeric: 100.00001}
	assert.True(t, check.Within(1e-6))
	assert.False(t, autodiff.GradientCheck{Analytic: 0.5, Numeric: 0.6}.Within(1e-3))
}
