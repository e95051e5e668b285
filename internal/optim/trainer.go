package optim

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/gradgraph/internal/autodiff"
)

// Minimize runs steps iterations of reset, forward, backward and opt.Step
// on loss, and returns the loss value seen at each iteration (before its
// update).
func Minimize(loss autodiff.Node, opt Optimizer, steps int) ([]float64, error) {
	history := make([]float64, 0, steps)

	for step := 0; step < steps; step++ {
		loss.Reset()
		v, err := loss.Forward()
		if err != nil {
			return history, fmt.Errorf("step %d: forward: %w", step, err)
		}
		if err := autodiff.Backward(loss); err != nil {
			return history, fmt.Errorf("step %d: backward: %w", step, err)
		}
		opt.Step()
		opt.ZeroGrad()

		history = append(history, v)
		slog.Debug("optimizer step", "step", step, "loss", v, "lr", opt.GetLR())
	}

	loss.Reset()
	return history, nil
}
