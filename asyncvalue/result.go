package asyncvalue

import "fmt"

// Result wraps the outcome of a guarded action for call sites that need to
// branch on success or failure without re-reading container state. Unlike
// AsyncValue it is a return value, never stored state, so it has no Loading
// variant.
type Result[T any] struct {
	value   T
	err     error
	failure bool
}

// Success returns a Result carrying v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure returns a Result carrying err.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err, failure: true}
}

// IsSuccess reports whether the result carries a value.
func (r Result[T]) IsSuccess() bool {
	return !r.failure
}

// IsFailure reports whether the result carries an error.
func (r Result[T]) IsFailure() bool {
	return r.failure
}

// Value returns the carried value and true on success, the zero value and
// false on failure.
func (r Result[T]) Value() (T, bool) {
	if r.failure {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the carried error on failure, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Get unpacks the result into Go's conventional value-error pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// String returns a debug representation of the result.
func (r Result[T]) String() string {
	if r.failure {
		return fmt.Sprintf("Result{failure: %v}", r.err)
	}
	return fmt.Sprintf("Result{success: %v}", r.value)
}

// MatchResult dispatches exhaustively on the outcome.
func MatchResult[T, R any](r Result[T], onSuccess func(T) R, onFailure func(error) R) R {
	if r.failure {
		return onFailure(r.err)
	}
	return onSuccess(r.value)
}
