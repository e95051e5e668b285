// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"
	"math/rand"

	"github.com/born-ml/gradgraph/autodiff"
	"github.com/born-ml/gradgraph/internal/nn"
	"github.com/born-ml/gradgraph/matrix"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer, err := nn.NewLinear("fc1", 784, 128, rand.New(rand.NewSource(1)))
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) (*Linear, error) {
	return nn.NewLinear(name, inFeatures, outFeatures, rng)
}

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a container that applies modules in order.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Activations

// Activation maps one node to an expression over it. Converted activations
// are Modules without parameters.
type Activation = nn.Activation

// Exp returns e^x.
func Exp(x autodiff.Node) autodiff.Node { return nn.Exp(x) }

// Sigmoid returns 1 / (1 + e^(-x)).
func Sigmoid(x autodiff.Node) autodiff.Node { return nn.Sigmoid(x) }

// Softplus returns ln(1 + e^x).
func Softplus(x autodiff.Node) autodiff.Node { return nn.Softplus(x) }

// Tanh returns the hyperbolic tangent.
func Tanh(x autodiff.Node) autodiff.Node { return nn.Tanh(x) }

// Softmax normalizes a column vector, shifted by its current maximum.
func Softmax(col matrix.Matrix) (matrix.Matrix, error) { return nn.Softmax(col) }

// NaiveSoftmax normalizes a column vector without shifting.
func NaiveSoftmax(col matrix.Matrix) (matrix.Matrix, error) { return nn.NaiveSoftmax(col) }

// Loss functions

// Epsilon guards logarithms in the cross entropy losses.
const Epsilon = nn.Epsilon

// MSE is the mean squared error.
func MSE(predictions, targets matrix.Matrix) (autodiff.Node, error) {
	return nn.MSE(predictions, targets)
}

// SSE is the sum of squared errors.
func SSE(predictions, targets matrix.Matrix) (autodiff.Node, error) {
	return nn.SSE(predictions, targets)
}

// CrossEntropy is -Σ truth·log(predictions + ε).
func CrossEntropy(predictions, truth matrix.Matrix) (autodiff.Node, error) {
	return nn.CrossEntropy(predictions, truth)
}

// BinaryCrossEntropy is the cross entropy of independent Bernoulli outputs.
func BinaryCrossEntropy(predictions, truth matrix.Matrix) (autodiff.Node, error) {
	return nn.BinaryCrossEntropy(predictions, truth)
}

// Initialization

// Xavier creates Variables drawn from the Glorot uniform distribution.
func Xavier(name string, fanIn, fanOut int, s matrix.Shape, rng *rand.Rand) (matrix.Matrix, error) {
	return nn.Xavier(name, fanIn, fanOut, s, rng)
}

// Zeros creates zero-valued Variables.
func Zeros(name string, s matrix.Shape) (matrix.Matrix, error) {
	return nn.Zeros(name, s)
}

// Checkpoints

// Checkpoint is a snapshot of parameter values with training metadata.
type Checkpoint = nn.Checkpoint

// ErrCheckpoint is matched when a checkpoint does not fit its parameters.
var ErrCheckpoint = nn.ErrCheckpoint

// NewCheckpoint captures the current values of params.
func NewCheckpoint(params []*autodiff.Variable, step int, loss float64) *Checkpoint {
	return nn.NewCheckpoint(params, step, loss)
}

// LoadCheckpoint reads a checkpoint written by Checkpoint.Save.
func LoadCheckpoint(r io.Reader) (*Checkpoint, error) {
	return nn.LoadCheckpoint(r)
}
