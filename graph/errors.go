package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph store operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNotFound is returned when a requested node or edge does not exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrNamespaceNotFound is returned when a namespace has no graph yet.
	// It wraps ErrNotFound, so errors.Is(err, ErrNotFound) also matches.
	ErrNamespaceNotFound = fmt.Errorf("%w: unknown namespace", ErrNotFound)

	// ErrDuplicateNode is returned when adding a node whose ID already exists.
	ErrDuplicateNode = errors.New("graph: duplicate node")

	// ErrDuplicateEdge is returned when adding a directed edge that already exists.
	ErrDuplicateEdge = errors.New("graph: duplicate edge")

	// ErrInvalidNode is returned when a node is nil or missing its ID.
	ErrInvalidNode = errors.New("graph: invalid node")

	// ErrInvalidEdge is returned when an edge endpoint is blank, the endpoints
	// are identical, or the weight is outside [0, 1].
	ErrInvalidEdge = errors.New("graph: invalid edge")
)
