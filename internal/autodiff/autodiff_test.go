package autodiff_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/autodiff/ops"
)

// countingNode wraps a Node and counts Forward calls.
type countingNode struct {
	autodiff.Node
	forwards int
}

func (c *countingNode) Forward() (float64, error) {
	c.forwards++
	return c.Node.Forward()
}

// workedExample builds f = (x + y) * (y + 3).
func workedExample(x, y float64) (f *autodiff.Expression, vx, vy *autodiff.Variable) {
	vx = autodiff.NewVariable("x", x)
	vy = autodiff.NewVariable("y", y)
	three := autodiff.NewConstant(3)
	f = autodiff.Mul(autodiff.Add(vx, vy), autodiff.Add(vy, three))
	return f, vx, vy
}

func TestWorkedExample(t *testing.T) {
	f, x, y := workedExample(1, 2)

	v, err := f.Forward()
	require.NoError(t, err)
	assert.Equal(t, 15.0, v)

	require.NoError(t, autodiff.Backward(f))
	assert.Equal(t, 5.0, x.Derivative())
	assert.Equal(t, 8.0, y.Derivative())
}

func TestForward_MatchesDirectEvaluation(t *testing.T) {
	x := autodiff.NewVariable("x", 1.5)
	y := autodiff.NewVariable("y", 0.5)
	two := autodiff.NewConstant(2)

	tests := []struct {
		name string
		node autodiff.Node
		want float64
	}{
		{"add", autodiff.Add(x, y), 2.0},
		{"sub", autodiff.Sub(x, y), 1.0},
		{"mul", autodiff.Mul(x, y), 0.75},
		{"div", autodiff.Div(x, y), 3.0},
		{"pow", autodiff.Pow(x, two), 2.25},
		{"log of square", autodiff.Log(autodiff.Pow(y, two)), -1.3862943611198906},
		{"nested", autodiff.Div(autodiff.Sub(autodiff.Mul(x, x), y), autodiff.Add(y, two)), (1.5*1.5 - 0.5) / 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.Forward()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestForward_Memoizes(t *testing.T) {
	x := &countingNode{Node: autodiff.NewVariable("x", 2)}
	y := &countingNode{Node: autodiff.NewVariable("y", 3)}
	f := autodiff.Mul(x, y)

	first, err := f.Forward()
	require.NoError(t, err)
	second, err := f.Forward()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, x.forwards)
	assert.Equal(t, 1, y.forwards)

	cached, ok := f.Cached()
	assert.True(t, ok)
	assert.Equal(t, 6.0, cached)
}

func TestForward_SharedSubexpressionEvaluatedOnce(t *testing.T) {
	x := &countingNode{Node: autodiff.NewVariable("x", 2)}
	shared := autodiff.Add(x, autodiff.NewConstant(1))
	f := autodiff.Mul(shared, shared)

	v, err := f.Forward()
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
	assert.Equal(t, 1, x.forwards)
}

// TestBackward_Diamond checks that a Variable reached through two parents
// receives the sum of both path contributions.
func TestBackward_Diamond(t *testing.T) {
	x := autodiff.NewVariable("x", 2)
	u := autodiff.Add(x, autodiff.NewConstant(1)) // x + 1
	v := autodiff.Mul(x, autodiff.NewConstant(3)) // 3x
	f := autodiff.Mul(u, v)                       // 3x² + 3x

	got, err := f.Forward()
	require.NoError(t, err)
	assert.Equal(t, 18.0, got)

	require.NoError(t, autodiff.Backward(f))
	// df/dx = v·1 + u·3 = 6 + 9
	assert.Equal(t, 15.0, x.Derivative())
}

func TestBackward_SameNodeBothOperands(t *testing.T) {
	x := autodiff.NewVariable("x", 3)
	f := autodiff.Mul(x, x)

	_, err := f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))
	assert.Equal(t, 6.0, x.Derivative())
}

func TestBackward_AccumulatesWithoutReset(t *testing.T) {
	f, x, y := workedExample(1, 2)
	_, err := f.Forward()
	require.NoError(t, err)

	require.NoError(t, autodiff.Backward(f))
	require.NoError(t, autodiff.Backward(f))

	assert.Equal(t, 10.0, x.Derivative())
	assert.Equal(t, 16.0, y.Derivative())
}

func TestReset(t *testing.T) {
	f, x, y := workedExample(1, 2)
	_, err := f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))

	f.Reset()
	assert.Zero(t, x.Derivative())
	assert.Zero(t, y.Derivative())
	_, ok := f.Cached()
	assert.False(t, ok)

	_, err = f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))
	assert.Equal(t, 5.0, x.Derivative())
	assert.Equal(t, 8.0, y.Derivative())
}

func TestReset_InvalidatesMemoAfterSet(t *testing.T) {
	f, x, y := workedExample(1, 2)
	_, err := f.Forward()
	require.NoError(t, err)

	x.Set(2)
	y.Set(1)
	f.Reset()

	v, err := f.Forward()
	require.NoError(t, err)
	assert.Equal(t, 12.0, v) // (2+1)*(1+3)

	require.NoError(t, autodiff.Backward(f))
	assert.Equal(t, 4.0, x.Derivative())
	assert.Equal(t, 7.0, y.Derivative())
}

func TestBackward_StaleState(t *testing.T) {
	t.Run("before forward", func(t *testing.T) {
		f, _, _ := workedExample(1, 2)
		err := autodiff.Backward(f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, autodiff.ErrStaleState))
	})

	t.Run("variable set after forward", func(t *testing.T) {
		f, x, _ := workedExample(1, 2)
		_, err := f.Forward()
		require.NoError(t, err)

		x.Set(5)
		err = autodiff.Backward(f)

		var stale *autodiff.StaleStateError
		require.True(t, errors.As(err, &stale))
		assert.Equal(t, "x", stale.Node)
		assert.Zero(t, x.Derivative())
	})

	t.Run("set before forward is fine", func(t *testing.T) {
		f, x, _ := workedExample(1, 2)
		x.Set(4)
		_, err := f.Forward()
		require.NoError(t, err)
		require.NoError(t, autodiff.Backward(f))
		assert.Equal(t, 5.0, x.Derivative())
	})
}

func TestBackward_LeafRoot(t *testing.T) {
	x := autodiff.NewVariable("x", 7)
	require.NoError(t, autodiff.Backward(x))
	assert.Equal(t, 1.0, x.Derivative())

	require.NoError(t, autodiff.Backward(autodiff.NewConstant(1)))
}

func TestDomainErrors_Propagate(t *testing.T) {
	x := autodiff.NewVariable("x", -1)

	_, err := autodiff.Add(autodiff.NewConstant(1), autodiff.Log(x)).Forward()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ops.ErrDomain))

	y := autodiff.NewVariable("y", 2)
	_, err = autodiff.Div(autodiff.NewConstant(1), autodiff.Sub(y, y)).Forward()
	assert.True(t, errors.Is(err, ops.ErrDomain))
}

func TestDomainErrors_Backward(t *testing.T) {
	// ∂(a^b)/∂b needs ln(a), undefined for a = -2.
	a := autodiff.NewVariable("a", -2)
	b := autodiff.NewVariable("b", 3)
	f := autodiff.Pow(a, b)

	v, err := f.Forward()
	require.NoError(t, err)
	assert.Equal(t, -8.0, v)

	err = autodiff.Backward(f)
	var de *ops.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ops.Pow, de.Op)
	assert.Equal(t, "dB", de.Rule)
}

// TestBackward_SkipsConstantPartials checks that x^3 differentiates at a
// negative x: the exponent's partial would need ln(x) but nothing consumes it.
func TestBackward_SkipsConstantPartials(t *testing.T) {
	x := autodiff.NewVariable("x", -2)
	f := autodiff.Pow(x, autodiff.Add(autodiff.NewConstant(1), autodiff.NewConstant(2)))

	_, err := f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))
	assert.Equal(t, 12.0, x.Derivative())
}

func TestApply(t *testing.T) {
	x := autodiff.NewVariable("x", 4)

	e, err := autodiff.Apply(ops.Log, x)
	require.NoError(t, err)
	assert.Nil(t, e.Right())
	assert.Equal(t, ops.Log, e.Op())

	e, err = autodiff.Apply(ops.Div, x, autodiff.NewConstant(2))
	require.NoError(t, err)
	v, err := e.Forward()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = autodiff.Apply(ops.Add, x)
	assert.Error(t, err)
	_, err = autodiff.Apply(ops.Log, x, x)
	assert.Error(t, err)
	_, err = autodiff.Apply(ops.Mul, x, nil)
	assert.Error(t, err)
	_, err = autodiff.Apply(ops.Op(99), x, x)
	assert.Error(t, err)
}

func TestVariables_DedupedInVisitOrder(t *testing.T) {
	f, x, y := workedExample(1, 2)
	z := autodiff.NewVariable("z", 0)
	g := autodiff.Add(f, autodiff.Mul(z, x))

	assert.Equal(t, []*autodiff.Variable{x, y, z}, autodiff.Variables(g))
	assert.Empty(t, autodiff.Variables(autodiff.NewConstant(1)))
}

func TestGradients(t *testing.T) {
	f, x, y := workedExample(1, 2)
	_, err := f.Forward()
	require.NoError(t, err)
	require.NoError(t, autodiff.Backward(f))

	assert.Equal(t, map[*autodiff.Variable]float64{x: 5, y: 8}, autodiff.Gradients(f))
}

func TestExpression_String(t *testing.T) {
	f, _, _ := workedExample(1, 2)
	assert.Equal(t, "mul(add(x, y), add(y, 3))", f.String())
	assert.Equal(t, "log(var(2))", autodiff.Log(autodiff.NewVariable("", 2)).String())
}
