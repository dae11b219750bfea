// Package similarity provides the vector similarity primitives used by the
// relationship builder and the in-memory vector store.
//
// All functions are pure and stateless. Cosine is the canonical scoring
// function for embedding vectors: it returns a value in [-1, 1], though
// typical embedding models produce values in [0, 1].
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors of unequal length are
// compared. Use errors.Is() to test for it.
var ErrDimensionMismatch = errors.New("similarity: dimension mismatch")

// Cosine computes the cosine similarity between two equal-length vectors.
//
// Returns ErrDimensionMismatch if the vectors have different lengths.
// Returns 0 when either vector has zero magnitude; this is the defined
// degenerate case and avoids division by zero.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: len(a)=%d, len(b)=%d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, sumA, sumB float64
	for i := range a {
		dot += a[i] * b[i]
		sumA += a[i] * a[i]
		sumB += b[i] * b[i]
	}

	if sumA == 0 || sumB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(sumA) * math.Sqrt(sumB)), nil
}

// Dot computes the dot product of two equal-length vectors.
// Returns ErrDimensionMismatch if the vectors have different lengths.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: len(a)=%d, len(b)=%d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot, nil
}

// Norm computes the Euclidean (L2) norm of a vector.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
