package toolerr

// ErrorClass categorizes errors by their nature. Callers use it to decide
// whether a failure should surface to the user, be retried, or be treated
// as a bug.
type ErrorClass string

const (
	// ErrorClassValidation indicates input or configuration issues
	// Examples: blank node IDs, out-of-range weights, unknown formats
	ErrorClassValidation ErrorClass = "validation"

	// ErrorClassConflict indicates the operation collides with existing state
	// Examples: duplicate nodes, duplicate edges
	ErrorClassConflict ErrorClass = "conflict"

	// ErrorClassNotFound indicates the referenced entity does not exist
	// Examples: missing nodes, missing namespaces
	ErrorClassNotFound ErrorClass = "not_found"

	// ErrorClassTransient indicates temporary failures that may resolve
	// Examples: embedding provider timeouts, vector store unavailability
	ErrorClassTransient ErrorClass = "transient"

	// ErrorClassInternal indicates unexpected failures in the engine itself
	ErrorClassInternal ErrorClass = "internal"
)

// DefaultClassForCode returns the default error class for a given error code.
// This provides sensible defaults based on the error code's semantic meaning.
func DefaultClassForCode(code string) ErrorClass {
	switch code {
	case ErrCodeInvalidInput, ErrCodeDimensionMismatch, ErrCodeSerialization:
		return ErrorClassValidation
	case ErrCodeDuplicateNode, ErrCodeDuplicateEdge:
		return ErrorClassConflict
	case ErrCodeNotFound:
		return ErrorClassNotFound
	case ErrCodeUpstreamFailure, ErrCodeTimeout:
		return ErrorClassTransient
	case ErrCodeInternal:
		return ErrorClassInternal
	default:
		// Unknown error codes default to internal
		return ErrorClassInternal
	}
}

// Classify sets the error's class from its code when no class is set.
// Returns the same error instance, or nil if the input is nil.
func Classify(err *Error) *Error {
	if err == nil {
		return nil
	}
	if err.Class == "" {
		err.Class = DefaultClassForCode(err.Code)
	}
	return err
}
