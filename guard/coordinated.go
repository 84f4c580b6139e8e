package guard

import (
	"sync"

	"github.com/kenjiz/guard-vm/asyncvalue"
	"github.com/kenjiz/guard-vm/observability"
)

// StateSource is the read surface CoordinateWith needs from a source
// container: a state snapshot and synchronous change notification. Every
// container kind in this package satisfies it.
type StateSource[S any] interface {
	State() asyncvalue.AsyncValue[S]
	Subscribe(fn func()) (unsubscribe func())
}

// CoordinatedContainer derives its state from one or more other
// containers. Each CoordinateWith registration is tracked independently and
// torn down at disposal. Because dispatch is synchronous, a chain of
// coordinated containers resolves completely before the triggering commit
// returns.
//
// Unlike the base container, the coordinated variant exposes the narrow
// mutation surface (SetLoading, SetData, SetError) so that derivation
// handlers can produce the derived transitions.
type CoordinatedContainer[T any] struct {
	*Container[T]

	detachMu sync.Mutex
	detach   []func()
}

// NewCoordinated creates a CoordinatedContainer holding the given initial
// state.
func NewCoordinated[T any](initial asyncvalue.AsyncValue[T], opts ...Option) *CoordinatedContainer[T] {
	c := &CoordinatedContainer[T]{Container: New(initial, opts...)}
	c.onDispose(c.detachAll)
	return c
}

// SetLoading commits the Loading variant. No-op after disposal.
func (c *CoordinatedContainer[T]) SetLoading() {
	c.setLoading()
}

// SetData commits the Data variant carrying v. No-op after disposal.
func (c *CoordinatedContainer[T]) SetData(v T) {
	c.setData(v)
}

// SetError commits the Error variant carrying err. No-op after disposal.
func (c *CoordinatedContainer[T]) SetError(err error) {
	c.setError(err)
}

type coordination struct {
	onError   func(error)
	onLoading func()
	immediate bool
}

// CoordinateOption configures a single CoordinateWith registration.
type CoordinateOption func(*coordination)

// WithOnError intercepts source errors instead of the default propagation
// into the dependent container's own Error state.
func WithOnError(fn func(error)) CoordinateOption {
	return func(c *coordination) {
		c.onError = fn
	}
}

// WithOnLoading reacts to the source entering Loading; without it, Loading
// transitions are ignored.
func WithOnLoading(fn func()) CoordinateOption {
	return func(c *coordination) {
		c.onLoading = fn
	}
}

// WithoutImmediateDispatch skips the synchronous dispatch against the
// source's current state that CoordinateWith performs by default at
// registration time.
func WithoutImmediateDispatch() CoordinateOption {
	return func(c *coordination) {
		c.immediate = false
	}
}

// CoordinateWith registers dst as a dependent of src. On every source
// transition the source's variant is dispatched: Data invokes onData, Error
// invokes the WithOnError handler or, by default, propagates into dst's own
// Error state so coordination never silently drops errors, and Loading
// invokes the WithOnLoading handler when present. Unless
// WithoutImmediateDispatch is given, the same dispatch runs once
// synchronously against the source's current state before CoordinateWith
// returns, so a freshly coordinated container never reflects a stale
// initial value.
//
// The registration is owned by dst and removed at dst.Dispose; removing it
// after the source is gone is a safe no-op. Registering on an already
// disposed dst does nothing.
func CoordinateWith[T, S any](dst *CoordinatedContainer[T], src StateSource[S], onData func(S), opts ...CoordinateOption) {
	cfg := coordination{immediate: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if dst.Disposed() {
		return
	}

	dispatch := func() {
		state := src.State()
		switch state.Tag() {
		case asyncvalue.TagData:
			v, _ := state.Value()
			onData(v)
		case asyncvalue.TagError:
			err, _ := state.ErrorValue()
			if cfg.onError != nil {
				cfg.onError(err)
			} else {
				dst.setError(err)
			}
		default:
			if cfg.onLoading != nil {
				cfg.onLoading()
			}
		}
	}

	unsubscribe := src.Subscribe(dispatch)

	dst.detachMu.Lock()
	if dst.Disposed() {
		dst.detachMu.Unlock()
		unsubscribe()
		return
	}
	dst.detach = append(dst.detach, unsubscribe)
	dst.detachMu.Unlock()

	dst.emit(EventCoordinateAttach, observability.LevelVerbose, nil)

	if cfg.immediate {
		dispatch()
	}
}

func (c *CoordinatedContainer[T]) detachAll() {
	c.detachMu.Lock()
	detach := c.detach
	c.detach = nil
	c.detachMu.Unlock()

	for _, unsubscribe := range detach {
		unsubscribe()
	}
}
