// Package optim implements gradient-based optimizers over autodiff Variables.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - Minimize: the reset/forward/backward/step training loop
//
// Example usage:
//
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
//
//	for epoch := range epochs {
//	    loss.Reset()
//	    if _, err := loss.Forward(); err != nil {
//	        return err
//	    }
//	    if err := autodiff.Backward(loss); err != nil {
//	        return err
//	    }
//	    opt.Step()
//	}
package optim

import "github.com/born-ml/gradgraph/internal/autodiff"

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step updates every parameter from its accumulated derivative.
	//
	// Parameter values change through Variable.Set, so graphs that contain
	// them must be Reset before the next Forward.
	Step()

	// ZeroGrad clears all parameter derivatives.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// zeroGrad resets the derivative of each parameter.
func zeroGrad(params []*autodiff.Variable) {
	for _, p := range params {
		p.Reset()
	}
}
