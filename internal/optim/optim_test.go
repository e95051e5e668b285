package optim_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
	"github.com/born-ml/gradgraph/internal/optim"
)

// backward evaluates f and accumulates its gradient.
func backward(t *testing.T, f autodiff.Node) {
	t.Helper()
	f.Reset()
	_, err := f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	x := autodiff.NewVariable("x", 2)
	f := autodiff.Mul(x, x)

	opt := optim.NewSGD([]*autodiff.Variable{x}, optim.SGDConfig{LR: 0.1})
	backward(t, f)
	opt.Step()

	// x_new = 2 - 0.1 * 4
	assert.InDelta(t, 1.6, x.Value(), 1e-12)
	assert.Equal(t, 4.0, x.Derivative())

	opt.ZeroGrad()
	assert.Zero(t, x.Derivative())
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	x := autodiff.NewVariable("x", 2)
	f := autodiff.Add(x, autodiff.NewConstant(0)) // gradient is always 1

	opt := optim.NewSGD([]*autodiff.Variable{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	backward(t, f)
	opt.Step()
	assert.InDelta(t, 1.9, x.Value(), 1e-12)

	backward(t, f)
	opt.Step()
	// velocity = 0.9 * 1 + 1 = 1.9
	assert.InDelta(t, 1.71, x.Value(), 1e-12)
}

func TestSGD_DefaultLR(t *testing.T) {
	assert.Equal(t, 0.01, optim.NewSGD(nil, optim.SGDConfig{}).GetLR())
	assert.Equal(t, 0.001, optim.NewAdam(nil, optim.AdamConfig{}).GetLR())
}

// TestAdam_FirstStep checks that the first bias-corrected step moves each
// parameter by about lr against the sign of its gradient.
func TestAdam_FirstStep(t *testing.T) {
	x := autodiff.NewVariable("x", 2)
	y := autodiff.NewVariable("y", -1)
	f := autodiff.Sub(autodiff.Mul(x, x), autodiff.Mul(autodiff.NewConstant(5), y))

	opt := optim.NewAdam([]*autodiff.Variable{x, y}, optim.AdamConfig{LR: 0.01})
	backward(t, f)
	opt.Step()

	assert.InDelta(t, 1.99, x.Value(), 1e-8)
	assert.InDelta(t, -0.99, y.Value(), 1e-8)
}

func TestMinimize_Quadratic(t *testing.T) {
	tests := []struct {
		name  string
		opt   func(params []*autodiff.Variable) optim.Optimizer
		steps int
	}{
		{"sgd", func(p []*autodiff.Variable) optim.Optimizer {
			return optim.NewSGD(p, optim.SGDConfig{LR: 0.1})
		}, 100},
		{"sgd momentum", func(p []*autodiff.Variable) optim.Optimizer {
			return optim.NewSGD(p, optim.SGDConfig{LR: 0.05, Momentum: 0.5})
		}, 200},
		{"adam", func(p []*autodiff.Variable) optim.Optimizer {
			return optim.NewAdam(p, optim.AdamConfig{LR: 0.1})
		}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// f = (x - 3)² + (y + 1)²
			x := autodiff.NewVariable("x", 0)
			y := autodiff.NewVariable("y", 0)
			two := autodiff.NewConstant(2)
			f := autodiff.Add(
				autodiff.Pow(autodiff.Sub(x, autodiff.NewConstant(3)), two),
				autodiff.Pow(autodiff.Add(y, autodiff.NewConstant(1)), two),
			)

			history, err := optim.Minimize(f, tt.opt([]*autodiff.Variable{x, y}), tt.steps)
			require.NoError(t, err)
			require.Len(t, history, tt.steps)

			assert.Equal(t, 10.0, history[0])
			assert.Less(t, history[len(history)-1], 1e-3)
			assert.InDelta(t, 3, x.Value(), 1e-2)
			assert.InDelta(t, -1, y.Value(), 1e-2)

			_, cached := f.Cached()
			assert.False(t, cached)
		})
	}
}

func TestMinimize_DomainError(t *testing.T) {
	x := autodiff.NewVariable("x", 1)
	f := autodiff.Log(x)

	// d ln(x)/dx = 1 at x = 1, so one step with lr 2 moves x to -1.
	history, err := optim.Minimize(f, optim.NewSGD([]*autodiff.Variable{x}, optim.SGDConfig{LR: 2}), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ops.ErrDomain))
	assert.Equal(t, []float64{0}, history)
	assert.Equal(t, -1.0, x.Value())
	assert.Contains(t, err.Error(), "step 1")
}

func TestMinimize_ZeroSteps(t *testing.T) {
	x := autodiff.NewVariable("x", 1)
	history, err := optim.Minimize(autodiff.Mul(x, x), optim.NewSGD(nil, optim.SGDConfig{}), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.False(t, math.IsNaN(x.Value()))
}
