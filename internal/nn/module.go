// Package nn builds neural network graphs from scalar autodiff nodes.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Linear: Fully connected layer with Variable weights
//   - Sequential: Container for stacking modules
//   - Activations: Sigmoid, Softplus, Tanh, Softmax
//   - Loss functions: SSE, MSE, CrossEntropy, BinaryCrossEntropy
//
// Every function only wires expressions together; evaluation and
// differentiation happen through the resulting output node.
package nn

import (
	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Module is the base interface for all neural network components.
//
// Forward builds the output graph for an input matrix; calling it twice
// builds two graphs that share the module's parameters.
type Module interface {
	Forward(input matrix.Matrix) (matrix.Matrix, error)

	// Parameters returns the module's trainable Variables.
	Parameters() []*autodiff.Variable
}
