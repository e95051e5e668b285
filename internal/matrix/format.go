package matrix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/gradgraph/internal/autodiff"
)

// ErrNoDerivative is returned by Derivatives for cells that are not leaves.
var ErrNoDerivative = errors.New("node has no derivative accessor")

// Accessor reads one number from a node, e.g. its value or its derivative.
type Accessor func(autodiff.Node) (float64, error)

// Values evaluates the node.
func Values(n autodiff.Node) (float64, error) {
	return n.Forward()
}

// Derivatives returns a Variable's accumulated derivative. Constants report 0.
func Derivatives(n autodiff.Node) (float64, error) {
	switch n := n.(type) {
	case *autodiff.Variable:
		return n.Derivative(), nil
	case *autodiff.Constant:
		return 0, nil
	default:
		return 0, fmt.Errorf("%T: %w", n, ErrNoDerivative)
	}
}

// Format renders the matrix under get as nested bracketed rows:
//
//	[[1, 2],
//	 [3, 4]]
func Format(m Matrix, get Accessor) (string, error) {
	cells, err := collect(m, get)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for r, row := range cells {
		if r > 0 {
			sb.WriteString(",\n ")
		}
		sb.WriteByte('[')
		for c, v := range row {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String(), nil
}
