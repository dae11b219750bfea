package toolerr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("edit-graph", "add-node", ErrCodeDuplicateNode, "node cats already exists")

	assert.Equal(t, "edit-graph", err.Tool)
	assert.Equal(t, "add-node", err.Operation)
	assert.Equal(t, ErrCodeDuplicateNode, err.Code)
	assert.Equal(t, "node cats already exists", err.Message)
	assert.Nil(t, err.Cause)
	assert.Nil(t, err.Details)
}

func TestError_Format(t *testing.T) {
	err := New("edit-graph", "add-node", ErrCodeDuplicateNode, "node cats already exists")
	assert.Equal(t, "edit-graph [add-node/DUPLICATE_NODE]: node cats already exists", err.Error())
}

func TestError_FormatWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := New("create-graph", "embed", ErrCodeUpstreamFailure, "embedding failed").
		WithCause(cause)

	assert.Equal(t,
		"create-graph [embed/UPSTREAM_FAILURE]: embedding failed: connection refused",
		err.Error())
}

func TestError_FormatWithoutMessage(t *testing.T) {
	err := New("query-graph", "traverse", ErrCodeInternal, "")
	assert.Equal(t, "query-graph [traverse/INTERNAL]", err.Error())
}

func TestError_WithDetails(t *testing.T) {
	err := New("query-graph", "traverse", ErrCodeInvalidInput, "bad hop count").
		WithDetails(map[string]any{"maxHops": -1, "namespace": "default"})

	require.NotNil(t, err.Details)
	assert.Equal(t, -1, err.Details["maxHops"])
	assert.Equal(t, "default", err.Details["namespace"])
}

func TestError_Unwrap(t *testing.T) {
	err := New("query-graph", "embed", ErrCodeTimeout, "embed timed out").
		WithCause(context.DeadlineExceeded)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestError_Is(t *testing.T) {
	a := New("edit-graph", "add-edge", ErrCodeNotFound, "node x does not exist")
	b := New("edit-graph", "add-edge", ErrCodeNotFound, "different message")
	c := New("edit-graph", "add-edge", ErrCodeDuplicateEdge, "edge exists")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
}

func TestError_As(t *testing.T) {
	var target *Error

	wrapped := New("prune-graph", "merge", ErrCodeInternal, "merge failed").
		WithCause(errors.New("boom"))
	outer := errors.Join(errors.New("outer"), wrapped)

	require.ErrorAs(t, outer, &target)
	assert.Equal(t, "prune-graph", target.Tool)
	assert.Equal(t, ErrCodeInternal, target.Code)
}

func TestDefaultClassForCode(t *testing.T) {
	cases := map[string]ErrorClass{
		ErrCodeInvalidInput:      ErrorClassValidation,
		ErrCodeDimensionMismatch: ErrorClassValidation,
		ErrCodeSerialization:     ErrorClassValidation,
		ErrCodeDuplicateNode:     ErrorClassConflict,
		ErrCodeDuplicateEdge:     ErrorClassConflict,
		ErrCodeNotFound:          ErrorClassNotFound,
		ErrCodeUpstreamFailure:   ErrorClassTransient,
		ErrCodeTimeout:           ErrorClassTransient,
		ErrCodeInternal:          ErrorClassInternal,
		"SOMETHING_NEW":          ErrorClassInternal,
	}

	for code, want := range cases {
		assert.Equal(t, want, DefaultClassForCode(code), "code %s", code)
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	err := New("edit-graph", "add-node", ErrCodeDuplicateNode, "exists")
	Classify(err)
	assert.Equal(t, ErrorClassConflict, err.Class)

	// An explicit class is never overwritten.
	err = New("edit-graph", "add-node", ErrCodeDuplicateNode, "exists").
		WithClass(ErrorClassInternal)
	Classify(err)
	assert.Equal(t, ErrorClassInternal, err.Class)
}
