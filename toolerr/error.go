// Package toolerr defines the structured error type graph tools return.
//
// An Error names the tool and operation that failed, carries a stable code
// for programmatic handling, and chains to its cause through errors.Is and
// errors.As.
package toolerr

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes shared across tools.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeNotFound          = "NOT_FOUND"           // node, edge, or namespace missing
	ErrCodeDuplicateNode     = "DUPLICATE_NODE"      // node ID already in the namespace
	ErrCodeDuplicateEdge     = "DUPLICATE_EDGE"      // edge already connects the pair
	ErrCodeDimensionMismatch = "DIMENSION_MISMATCH"  // embedding vectors of different lengths
	ErrCodeSerialization     = "SERIALIZATION_ERROR" // graph payload failed to encode or decode
	ErrCodeUpstreamFailure   = "UPSTREAM_FAILURE"    // embedding or vector store call failed
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeInternal          = "INTERNAL"
)

// Error identifies a tool failure: which tool, which operation, a stable
// code, and an optional cause chain.
type Error struct {
	Tool      string
	Operation string
	Code      string

	// Message is the human-readable description.
	Message string

	// Details holds extra context as key-value pairs.
	Details map[string]any

	// Cause is the wrapped underlying error, if any.
	Cause error

	// Class categorizes the error by its nature.
	Class ErrorClass `json:"class,omitempty"`
}

// New builds a tool error.
//
//	toolerr.New("edit-graph", "add-edge", toolerr.ErrCodeNotFound, "node cats does not exist")
func New(tool, operation, code, message string) *Error {
	return &Error{
		Tool:      tool,
		Operation: operation,
		Code:      code,
		Message:   message,
	}
}

// WithCause attaches the underlying error and returns the receiver for
// chaining:
//
//	toolerr.New("create-graph", "embed", toolerr.ErrCodeUpstreamFailure, "embedding failed").
//	    WithCause(apiErr)
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails attaches extra context and returns the receiver for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithClass sets the classification and returns the receiver for chaining.
func (e *Error) WithClass(class ErrorClass) *Error {
	e.Class = class
	return e
}

// Error renders as "tool [operation/code]: message: cause", dropping empty
// parts:
//
//	edit-graph [add-node/DUPLICATE_NODE]: node cats already exists
//	create-graph [embed/UPSTREAM_FAILURE]: embedding failed: connection refused
func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%s [%s/%s]", e.Tool, e.Operation, e.Code))

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause so that errors.Is reaches through:
//
//	err := toolerr.New("query-graph", "embed", toolerr.ErrCodeTimeout, "embed timed out").
//	    WithCause(context.DeadlineExceeded)
//	errors.Is(err, context.DeadlineExceeded) // true
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is treats two Errors as equal when Tool, Operation, and Code all match.
// Message, details, and cause are deliberately excluded.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Tool == t.Tool && e.Operation == t.Operation && e.Code == t.Code
}

// As lets errors.As extract *Error from a wrapped chain.
func (e *Error) As(target any) bool {
	t, ok := target.(**Error)
	if !ok {
		return false
	}
	*t = e
	return true
}

var (
	// ErrInvalidInput marks input validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout marks operations that ran out of time.
	ErrTimeout = errors.New("operation timed out")
)
