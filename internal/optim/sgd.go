package optim

import "github.com/born-ml/gradgraph/internal/autodiff"

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens oscillations.
type SGD struct {
	params     []*autodiff.Variable
	lr         float64
	momentum   float64
	velocities []float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	sgd := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(params []*autodiff.Variable, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]float64, len(params)),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	for i, p := range s.params {
		grad := p.Derivative()
		if s.momentum != 0 {
			s.velocities[i] = s.momentum*s.velocities[i] + grad
			grad = s.velocities[i]
		}
		p.Set(p.Value() - s.lr*grad)
	}
}

// ZeroGrad clears all parameter derivatives.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}
