package asyncvalue

import (
	"fmt"
	"reflect"
)

// Tag identifies the active variant of an AsyncValue.
type Tag string

const (
	TagLoading Tag = "loading"
	TagData    Tag = "data"
	TagError   Tag = "error"
)

// AsyncValue represents the state of an asynchronous operation as a tagged
// union: Loading, Data carrying a value, or Error carrying an error.
//
// The zero value is Loading. AsyncValue is immutable; transitions are
// expressed by constructing a new value.
type AsyncValue[T any] struct {
	tag   Tag
	value T
	err   error
}

// Loading returns the Loading variant.
func Loading[T any]() AsyncValue[T] {
	return AsyncValue[T]{tag: TagLoading}
}

// Data returns the Data variant carrying v.
func Data[T any](v T) AsyncValue[T] {
	return AsyncValue[T]{tag: TagData, value: v}
}

// Error returns the Error variant carrying err.
func Error[T any](err error) AsyncValue[T] {
	return AsyncValue[T]{tag: TagError, err: err}
}

// Tag returns the active variant tag. The zero value reports TagLoading.
func (v AsyncValue[T]) Tag() Tag {
	if v.tag == "" {
		return TagLoading
	}
	return v.tag
}

// IsLoading reports whether the Loading variant is active.
func (v AsyncValue[T]) IsLoading() bool {
	return v.Tag() == TagLoading
}

// HasValue reports whether the Data variant is active.
func (v AsyncValue[T]) HasValue() bool {
	return v.Tag() == TagData
}

// HasError reports whether the Error variant is active.
func (v AsyncValue[T]) HasError() bool {
	return v.Tag() == TagError
}

// Value returns the carried value and true when the Data variant is active,
// the zero value and false otherwise.
func (v AsyncValue[T]) Value() (T, bool) {
	if !v.HasValue() {
		var zero T
		return zero, false
	}
	return v.value, true
}

// ErrorValue returns the carried error and true when the Error variant is
// active, nil and false otherwise.
func (v AsyncValue[T]) ErrorValue() (error, bool) {
	if !v.HasError() {
		return nil, false
	}
	return v.err, true
}

// Equal reports structural equality. Loading values are always equal to each
// other; Data and Error values compare their payloads with reflect.DeepEqual.
func (v AsyncValue[T]) Equal(other AsyncValue[T]) bool {
	if v.Tag() != other.Tag() {
		return false
	}
	switch v.Tag() {
	case TagData:
		return reflect.DeepEqual(v.value, other.value)
	case TagError:
		return reflect.DeepEqual(v.err, other.err)
	default:
		return true
	}
}

// String returns a debug representation of the value.
func (v AsyncValue[T]) String() string {
	switch v.Tag() {
	case TagData:
		return fmt.Sprintf("AsyncValue{data: %v}", v.value)
	case TagError:
		return fmt.Sprintf("AsyncValue{error: %v}", v.err)
	default:
		return "AsyncValue{loading}"
	}
}

// Match dispatches exhaustively on the active variant. All three branches
// must be non-nil; a nil branch for the active variant panics, preserving
// the cannot-forget-a-branch guarantee at the call site.
func Match[T, R any](v AsyncValue[T], onLoading func() R, onData func(T) R, onError func(error) R) R {
	switch v.Tag() {
	case TagData:
		return onData(v.value)
	case TagError:
		return onError(v.err)
	default:
		return onLoading()
	}
}

// Cases holds the optional branches for MaybeMatch. Nil branches fall back
// to the orElse handler.
type Cases[T, R any] struct {
	Loading func() R
	Data    func(T) R
	Error   func(error) R
}

// MaybeMatch dispatches on the active variant, falling back to orElse when
// the matching branch is nil.
func MaybeMatch[T, R any](v AsyncValue[T], c Cases[T, R], orElse func() R) R {
	switch v.Tag() {
	case TagData:
		if c.Data != nil {
			return c.Data(v.value)
		}
	case TagError:
		if c.Error != nil {
			return c.Error(v.err)
		}
	default:
		if c.Loading != nil {
			return c.Loading()
		}
	}
	return orElse()
}
