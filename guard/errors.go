package guard

import "fmt"

// PanicError normalizes a panic recovered from a guarded action or
// transform into the container's error channel, preserving the original
// panic value and its textual description.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", e.Value)
}

// Unwrap returns the panic value when it was itself an error, enabling
// errors.Is and errors.As across the recovery boundary.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
