// Package matrix builds expression graphs over rectangular grids of scalar
// nodes.
//
// A Matrix is a row-major [][]autodiff.Node. The helpers never compute
// anything themselves: elementwise combination, matrix multiplication and
// reductions only wire autodiff expressions together, so the result is an
// ordinary graph that is evaluated and differentiated through its output
// node.
//
// Example:
//
//	x, _ := matrix.NewVariables("x", [][]float64{{1}, {2}})
//	y, _ := matrix.NewVariables("y", [][]float64{{3, 4}})
//	xy, _ := matrix.MatMul(x, y)
//	f, _ := matrix.ReduceSum(xy)
//
//	f.Forward()
//	autodiff.Backward(f)
//	fmt.Println(matrix.Format(x, matrix.Derivatives))
package matrix

import (
	"fmt"

	"github.com/born-ml/gradgraph/internal/autodiff"
)

// Matrix is a row-major grid of nodes. A valid Matrix is rectangular.
type Matrix [][]autodiff.Node

// New creates a rows×cols matrix whose cells are produced by fill.
func New(rows, cols int, fill func(r, c int) autodiff.Node) (Matrix, error) {
	s := Shape{Rows: rows, Cols: cols}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m := make(Matrix, rows)
	for r := range m {
		m[r] = make([]autodiff.Node, cols)
		for c := range m[r] {
			m[r][c] = fill(r, c)
		}
	}
	return m, nil
}

// NewVariables creates a matrix of Variables named name[r][c].
func NewVariables(name string, values [][]float64) (Matrix, error) {
	s, err := shapeOf(values)
	if err != nil {
		return nil, err
	}
	return New(s.Rows, s.Cols, func(r, c int) autodiff.Node {
		return autodiff.NewVariable(fmt.Sprintf("%s[%d][%d]", name, r, c), values[r][c])
	})
}

// NewConstants creates a matrix of Constants.
func NewConstants(values [][]float64) (Matrix, error) {
	s, err := shapeOf(values)
	if err != nil {
		return nil, err
	}
	return New(s.Rows, s.Cols, func(r, c int) autodiff.Node {
		return autodiff.NewConstant(values[r][c])
	})
}

// Full creates a matrix of the given shape with every cell a Constant of value.
func Full(s Shape, value float64) (Matrix, error) {
	return New(s.Rows, s.Cols, func(int, int) autodiff.Node {
		return autodiff.NewConstant(value)
	})
}

// Shape returns the matrix dimensions, or a *ShapeError if rows differ in length.
func (m Matrix) Shape() (Shape, error) {
	return shapeOf(m)
}

// Variables returns the cells that are Variables, in row-major order.
func (m Matrix) Variables() []*autodiff.Variable {
	var vars []*autodiff.Variable
	for _, row := range m {
		for _, n := range row {
			if v, ok := n.(*autodiff.Variable); ok {
				vars = append(vars, v)
			}
		}
	}
	return vars
}

// Reset resets every cell.
func (m Matrix) Reset() {
	for _, row := range m {
		for _, n := range row {
			n.Reset()
		}
	}
}

// Eval evaluates every cell.
func (m Matrix) Eval() ([][]float64, error) {
	return collect(m, Values)
}

// Map applies f to every cell.
func Map(m Matrix, f func(autodiff.Node) autodiff.Node) (Matrix, error) {
	s, err := m.Shape()
	if err != nil {
		return nil, err
	}
	return New(s.Rows, s.Cols, func(r, c int) autodiff.Node {
		return f(m[r][c])
	})
}

// Transpose returns the transposed matrix. Cells are shared, not copied.
func Transpose(m Matrix) (Matrix, error) {
	s, err := m.Shape()
	if err != nil {
		return nil, err
	}
	return New(s.Cols, s.Rows, func(r, c int) autodiff.Node {
		return m[c][r]
	})
}

// collect applies get to every cell.
func collect(m Matrix, get Accessor) ([][]float64, error) {
	if _, err := m.Shape(); err != nil {
		return nil, err
	}
	out := make([][]float64, len(m))
	for r, row := range m {
		out[r] = make([]float64, len(row))
		for c, n := range row {
			v, err := get(n)
			if err != nil {
				return nil, fmt.Errorf("cell [%d][%d]: %w", r, c, err)
			}
			out[r][c] = v
		}
	}
	return out, nil
}
