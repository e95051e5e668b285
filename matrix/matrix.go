// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix builds graphs over rectangular grids of autodiff nodes.
//
// A Matrix is a [][]autodiff.Node; every operation returns a new grid whose
// cells are expressions over the input cells, so gradients flow back to the
// individual Variables:
//
//	w, _ := matrix.NewVariables("W", [][]float64{{1.1, 1.2}, {1.3, 1.4}})
//	x, _ := matrix.NewVariables("x", [][]float64{{1}, {2}})
//	wx, _ := matrix.MatMul(w, x)
//	f, _ := matrix.ReduceSum(wx)
//	_, _ = f.Forward()
//	_ = autodiff.Backward(f)
//	text, _ := matrix.Format(w, matrix.Derivatives)
package matrix

import (
	"github.com/born-ml/gradgraph/autodiff"
	"github.com/born-ml/gradgraph/internal/matrix"
)

// Matrix is a row-major grid of nodes.
type Matrix = matrix.Matrix

// Shape is a (rows, cols) pair.
type Shape = matrix.Shape

// ShapeError reports incompatible or ragged operands.
type ShapeError = matrix.ShapeError

// ErrShapeMismatch is matched by every ShapeError.
var ErrShapeMismatch = matrix.ErrShapeMismatch

// New fills a rows x cols matrix.
func New(rows, cols int, fill func(r, c int) autodiff.Node) (Matrix, error) {
	return matrix.New(rows, cols, fill)
}

// NewVariables creates a Variable per value, named name[r][c].
func NewVariables(name string, values [][]float64) (Matrix, error) {
	return matrix.NewVariables(name, values)
}

// NewConstants creates a Constant per value.
func NewConstants(values [][]float64) (Matrix, error) {
	return matrix.NewConstants(values)
}

// Full creates a matrix of one repeated constant.
func Full(s Shape, value float64) (Matrix, error) {
	return matrix.Full(s, value)
}

// Add returns a + b elementwise.
func Add(a, b Matrix) (Matrix, error) { return matrix.Add(a, b) }

// Sub returns a - b elementwise.
func Sub(a, b Matrix) (Matrix, error) { return matrix.Sub(a, b) }

// Mul returns a ⊙ b.
func Mul(a, b Matrix) (Matrix, error) { return matrix.Mul(a, b) }

// Div returns a / b elementwise.
func Div(a, b Matrix) (Matrix, error) { return matrix.Div(a, b) }

// MatMul returns the matrix product a @ b.
func MatMul(a, b Matrix) (Matrix, error) { return matrix.MatMul(a, b) }

// Transpose swaps rows and columns, sharing cells.
func Transpose(m Matrix) (Matrix, error) { return matrix.Transpose(m) }

// Map applies f to every cell.
func Map(m Matrix, f func(autodiff.Node) autodiff.Node) (Matrix, error) { return matrix.Map(m, f) }

// ReduceSum adds every cell.
func ReduceSum(m Matrix) (autodiff.Node, error) { return matrix.ReduceSum(m) }

// ReduceProd multiplies every cell.
func ReduceProd(m Matrix) (autodiff.Node, error) { return matrix.ReduceProd(m) }

// Accessor reads one number from a node.
type Accessor = matrix.Accessor

// Values evaluates a node.
func Values(n autodiff.Node) (float64, error) { return matrix.Values(n) }

// Derivatives reads a leaf's accumulated derivative.
func Derivatives(n autodiff.Node) (float64, error) { return matrix.Derivatives(n) }

// Format renders m through get as nested bracketed rows.
func Format(m Matrix, get Accessor) (string, error) { return matrix.Format(m, get) }
