package application

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNotInitialized    = errors.New("application is not initialized")
	ErrNoImagesSelected  = errors.New("no images selected")
	ErrConversionRunning = errors.New("a conversion is already running")
)

// PreferencesError represents preferences-related errors
type PreferencesError struct {
	Operation string
	Err       error
}

func (e *PreferencesError) Error() string {
	return fmt.Sprintf("preferences %s failed: %v", e.Operation, e.Err)
}

func (e *PreferencesError) Unwrap() error {
	return e.Err
}

// NewPreferencesError creates a new preferences error
func NewPreferencesError(operation string, err error) *PreferencesError {
	return &PreferencesError{
		Operation: operation,
		Err:       err,
	}
}
