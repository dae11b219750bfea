package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors matched with errors.Is across the facade.
var (
	// ErrToolNotFound means no tool with that name is registered.
	ErrToolNotFound = errors.New("tool not found")

	// ErrNamespaceNotFound means the graph namespace does not exist.
	ErrNamespaceNotFound = errors.New("namespace not found")

	// ErrInvalidConfig means the engine configuration is unusable.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExecutionFailed wraps the cause of a failed tool execution.
	ErrExecutionFailed = errors.New("execution failed")
)

// Error kinds. Every SDKError carries exactly one.
const (
	KindNotFound      = "not_found"
	KindValidation    = "validation"
	KindExecution     = "execution"
	KindConfiguration = "configuration"
	KindNetwork       = "network"
	KindTimeout       = "timeout"
	KindInternal      = "internal"
)

// SDKError annotates a failure with the operation that hit it and a kind,
// so callers can branch on the category without parsing messages. It
// unwraps to the underlying error for errors.Is and errors.As.
type SDKError struct {
	// Op names the failing operation, such as "Engine.Execute" or "New".
	Op string

	// Kind is one of the Kind constants.
	Kind string

	// Err is the underlying cause, possibly nil.
	Err error

	// Context carries optional debugging detail such as the tool name or
	// the graph namespace involved.
	Context map[string]any
}

func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is matches a target *SDKError by Kind, and by Op too when the target sets
// one. Any other target is checked against the underlying error, so both
// errors.Is(err, &SDKError{Kind: KindNotFound}) and
// errors.Is(err, ErrToolNotFound) work.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*SDKError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the given entries merged
// into its context. The receiver is left untouched, so a shared error value
// can be annotated per call site:
//
//	return NewNotFoundError("Engine.Tool", ErrToolNotFound).
//		WithContext(map[string]any{"tool": name})
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

func newError(op, kind string, err error) *SDKError {
	return &SDKError{Op: op, Kind: kind, Err: err}
}

// NewNotFoundError builds a KindNotFound error.
func NewNotFoundError(op string, err error) *SDKError {
	return newError(op, KindNotFound, err)
}

// NewValidationError builds a KindValidation error.
func NewValidationError(op string, err error) *SDKError {
	return newError(op, KindValidation, err)
}

// NewExecutionError builds a KindExecution error.
func NewExecutionError(op string, err error) *SDKError {
	return newError(op, KindExecution, err)
}

// NewConfigurationError builds a KindConfiguration error.
func NewConfigurationError(op string, err error) *SDKError {
	return newError(op, KindConfiguration, err)
}

// NewNetworkError builds a KindNetwork error.
func NewNetworkError(op string, err error) *SDKError {
	return newError(op, KindNetwork, err)
}

// NewTimeoutError builds a KindTimeout error.
func NewTimeoutError(op string, err error) *SDKError {
	return newError(op, KindTimeout, err)
}

// NewInternalError builds a KindInternal error.
func NewInternalError(op string, err error) *SDKError {
	return newError(op, KindInternal, err)
}

// CloseWithLog closes the resource and logs a failure at warning level
// instead of dropping it, for use in defer statements:
//
//	defer sdk.CloseWithLog(client, logger, "redis client")
//
// A nil closer is ignored; a nil logger falls back to slog.Default().
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
