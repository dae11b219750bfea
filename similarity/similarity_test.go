package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine_SelfSimilarity(t *testing.T) {
	v := []float64{0.1, 0.5, -0.3, 0.8}

	score, err := Cosine(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosine_Orthogonal(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}

	score, err := Cosine(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestCosine_Opposite(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}

	score, err := Cosine(a, b)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, score, 1e-9)
}

func TestCosine_ZeroVector(t *testing.T) {
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	score, err := Cosine(zero, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = Cosine(v, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = Cosine(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{1, 2, 3}

	_, err := Cosine(a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCosine_KnownValue(t *testing.T) {
	a := []float64{1, 1}
	b := []float64{1, 0}

	score, err := Cosine(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.7071067811865475, score, 1e-12)
}

func TestDot(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	dot, err := Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, dot)

	_, err = Dot(a, []float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNorm(t *testing.T) {
	assert.Equal(t, 5.0, Norm([]float64{3, 4}))
	assert.Equal(t, 0.0, Norm(nil))
}
