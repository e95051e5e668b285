package matrix

import "fmt"

// Shape holds the dimensions of a rectangular matrix.
type Shape struct {
	Rows, Cols int
}

// NumElements returns the number of cells.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Empty reports whether the shape has no cells.
func (s Shape) Empty() bool {
	return s.NumElements() == 0
}

// Validate checks that both dimensions are non-negative.
func (s Shape) Validate() error {
	if s.Rows < 0 || s.Cols < 0 {
		return fmt.Errorf("invalid shape %v: dimensions must be >= 0", s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s == other
}

// String renders the shape as "RxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// shapeOf returns the shape of rows, rejecting ragged input.
func shapeOf[T any](rows [][]T) (Shape, error) {
	if len(rows) == 0 {
		return Shape{}, nil
	}
	s := Shape{Rows: len(rows), Cols: len(rows[0])}
	for r, row := range rows {
		if len(row) != s.Cols {
			return Shape{}, &ShapeError{
				Op:      "shape",
				Details: fmt.Sprintf("row %d has %d columns, want %d", r, len(row), s.Cols),
			}
		}
	}
	return s, nil
}
