package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/gradgraph/internal/matrix"
)

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// Passing the same rng seed reproduces the same weights.
func Xavier(name string, fanIn, fanOut int, s matrix.Shape, rng *rand.Rand) (matrix.Matrix, error) {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	values := make([][]float64, s.Rows)
	for r := range values {
		values[r] = make([]float64, s.Cols)
		for c := range values[r] {
			//nolint:gosec // Using math/rand for weight initialization (not security-critical)
			values[r][c] = (rng.Float64()*2.0 - 1.0) * bound
		}
	}
	return matrix.NewVariables(name, values)
}

// Zeros creates a matrix of Variables initialized to zero.
//
// This is commonly used for bias initialization.
func Zeros(name string, s matrix.Shape) (matrix.Matrix, error) {
	values := make([][]float64, s.Rows)
	for r := range values {
		values[r] = make([]float64, s.Cols)
	}
	return matrix.NewVariables(name, values)
}
