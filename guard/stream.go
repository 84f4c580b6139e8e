package guard

import (
	"sync"

	"github.com/kenjiz/guard-vm/asyncvalue"
	"github.com/kenjiz/guard-vm/observability"
)

// StreamContainer bridges push-based sources into the container state
// model. Multiple sources may be active at once; the visible state reflects
// whichever source emitted most recently. The container owns every
// subscription it opens and cancels them all at disposal.
type StreamContainer[T any] struct {
	*Container[T]

	subsMu  sync.Mutex
	cancels []func()
}

// NewStream creates a StreamContainer holding the given initial state.
func NewStream[T any](initial asyncvalue.AsyncValue[T], opts ...Option) *StreamContainer[T] {
	s := &StreamContainer[T]{Container: New(initial, opts...)}
	s.onDispose(s.cancelAll)
	return s
}

// GuardStream commits Loading, then subscribes to src. Every emitted value
// commits Data and then invokes the optional onEach callback, which
// observes the already-updated state when it reads back through the
// container. Every emitted error commits Error without cancelling other
// active subscriptions. Calls are additive: each opens an independent
// subscription, retained until disposal.
func (s *StreamContainer[T]) GuardStream(src Source[T], onEach func(T)) {
	if s.Disposed() {
		return
	}
	s.setLoading()

	cancel := src.Subscribe(
		func(v T) {
			if s.setData(v) && onEach != nil {
				onEach(v)
			}
		},
		func(err error) {
			s.setError(err)
		},
	)
	cancel = onceCancel(cancel)

	s.subsMu.Lock()
	if s.Disposed() {
		s.subsMu.Unlock()
		cancel()
		return
	}
	s.cancels = append(s.cancels, cancel)
	s.subsMu.Unlock()

	s.emit(EventStreamSubscribe, observability.LevelVerbose, nil)
}

func (s *StreamContainer[T]) cancelAll() {
	s.subsMu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.subsMu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	if len(cancels) > 0 {
		s.emit(EventStreamCancel, observability.LevelVerbose, map[string]any{
			"subscriptions": len(cancels),
		})
	}
}

// onceCancel wraps a source cancel so that repeated invocations are no-ops
// and a misbehaving cancel cannot panic into container teardown.
func onceCancel(cancel func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			defer func() {
				_ = recover()
			}()
			cancel()
		})
	}
}
