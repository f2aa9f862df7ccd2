package curtain

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/router"
)

// Sentinel errors for common conditions.
var (
	// ErrNotInstantiated indicates a package-level function was called before Init.
	// Callers receive a neutral result and a warning is logged.
	ErrNotInstantiated = errors.New("manager is not instantiated")

	// ErrAlreadyRunning indicates Run was called while the update loop is running.
	ErrAlreadyRunning = errors.New("update loop already running")
)

// InfrastructureError represents a failure outside the navigation state
// machine, such as an input device that could not be read or released.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "close_source")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("curtain: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("curtain: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsNotFound checks if an error indicates an identity that could not be resolved.
func IsNotFound(err error) bool {
	return errors.Is(err, registry.ErrNotFound)
}

// IsInstantiationFailed checks if an error indicates an element that could not be built.
func IsInstantiationFailed(err error) bool {
	return errors.Is(err, registry.ErrInstantiationFailed)
}

// IsEmptyHistory checks if an error indicates Back or Forward had nothing to replay.
func IsEmptyHistory(err error) bool {
	return errors.Is(err, router.ErrEmptyHistory) || errors.Is(err, router.ErrEmptyFuture)
}
