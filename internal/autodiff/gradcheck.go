package autodiff

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the finite difference step used when none is given.
const DefaultEpsilon = 1e-5

// NumericalGradient estimates ∂root/∂v with a central difference:
//
//	(f(v+ε) - f(v-ε)) / 2ε
//
// The graph is reset around each evaluation, so accumulated derivatives are
// lost. v keeps its original value and the graph is left reset.
func NumericalGradient(root Node, v *Variable, eps float64) (float64, error) {
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	orig := v.Value()
	defer func() {
		v.Set(orig)
		root.Reset()
	}()

	eval := func(at float64) (float64, error) {
		v.Set(at)
		root.Reset()
		return root.Forward()
	}

	plus, err := eval(orig + eps)
	if err != nil {
		return 0, fmt.Errorf("evaluating at %s+ε: %w", v, err)
	}
	minus, err := eval(orig - eps)
	if err != nil {
		return 0, fmt.Errorf("evaluating at %s-ε: %w", v, err)
	}

	return (plus - minus) / (2 * eps), nil
}

// GradientCheck compares the backward-pass derivative of one Variable with
// its finite difference estimate.
type GradientCheck struct {
	Variable *Variable
	Analytic float64
	Numeric  float64
}

// Error returns |Analytic - Numeric| scaled by max(1, |Analytic|, |Numeric|).
func (c GradientCheck) Error() float64 {
	scale := math.Max(1, math.Max(math.Abs(c.Analytic), math.Abs(c.Numeric)))
	return math.Abs(c.Analytic-c.Numeric) / scale
}

// Within reports whether the scaled error is at most tol.
func (c GradientCheck) Within(tol float64) bool {
	return c.Error() <= tol
}

// CheckGradients runs a backward pass from root and compares every reachable
// Variable's derivative with NumericalGradient.
//
// On success the graph is left evaluated with the analytic derivatives
// accumulated, as after a plain Forward and Backward.
func CheckGradients(root Node, eps float64) ([]GradientCheck, error) {
	vars := Variables(root)

	analytic, err := forwardBackward(root)
	if err != nil {
		return nil, err
	}

	checks := make([]GradientCheck, len(vars))
	for i, v := range vars {
		numeric, err := NumericalGradient(root, v, eps)
		if err != nil {
			return nil, err
		}
		checks[i] = GradientCheck{Variable: v, Analytic: analytic[v], Numeric: numeric}
	}

	if _, err := forwardBackward(root); err != nil {
		return nil, err
	}
	return checks, nil
}

// forwardBackward resets root, evaluates it and runs one backward pass.
func forwardBackward(root Node) (map[*Variable]float64, error) {
	root.Reset()
	if _, err := root.Forward(); err != nil {
		return nil, err
	}
	if err := Backward(root); err != nil {
		return nil, err
	}
	return Gradients(root), nil
}
