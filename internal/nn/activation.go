package nn

import (
	"math"

	"github.com/born-ml/gradgraph/internal/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Activation maps one node to a new expression over it.
type Activation func(autodiff.Node) autodiff.Node

// Exp returns e^x, built as Pow(e, x).
func Exp(x autodiff.Node) autodiff.Node {
	return autodiff.Pow(autodiff.NewConstant(math.E), x)
}

// Neg returns -x, built as 0 - x.
func Neg(x autodiff.Node) autodiff.Node {
	return autodiff.Sub(autodiff.NewConstant(0), x)
}

// Sigmoid returns σ(x) = 1 / (1 + e^(-x)).
//
// σ squashes values to the range (0, 1), making it useful for binary
// classification outputs.
func Sigmoid(x autodiff.Node) autodiff.Node {
	one := autodiff.NewConstant(1)
	return autodiff.Div(one, autodiff.Add(one, Exp(Neg(x))))
}

// Softplus returns ln(1 + e^x), a smooth approximation of ReLU.
func Softplus(x autodiff.Node) autodiff.Node {
	return autodiff.Log(autodiff.Add(autodiff.NewConstant(1), Exp(x)))
}

// Tanh returns (e^x - e^(-x)) / (e^x + e^(-x)).
func Tanh(x autodiff.Node) autodiff.Node {
	pos, neg := Exp(x), Exp(Neg(x))
	return autodiff.Div(autodiff.Sub(pos, neg), autodiff.Add(pos, neg))
}

// Forward applies the activation to every cell, so an Activation can be
// used as a Module:
//
//	model := nn.NewSequential(layer, nn.Activation(nn.Sigmoid))
func (a Activation) Forward(input matrix.Matrix) (matrix.Matrix, error) {
	return matrix.Map(input, a)
}

// Parameters returns nil: activations have no trainable parameters.
func (a Activation) Parameters() []*autodiff.Variable {
	return nil
}
