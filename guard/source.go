package guard

import "sync/atomic"

// Source is a push-based data feed the container does not control the
// cadence of. Subscribe registers the two callbacks and returns a cancel
// function; implementations must make cancel idempotent and must keep
// delivering after an error if the feed can recover.
type Source[T any] interface {
	Subscribe(onValue func(T), onError func(error)) (cancel func())
}

// ChannelSource adapts Go channels to a Source. Values received on values
// are delivered to onValue and errors received on errs to onError, until
// both channels are closed or the subscription is cancelled. errs may be
// nil for feeds that cannot fail.
func ChannelSource[T any](values <-chan T, errs <-chan error) Source[T] {
	return &channelSource[T]{values: values, errs: errs}
}

type channelSource[T any] struct {
	values <-chan T
	errs   <-chan error
}

func (s *channelSource[T]) Subscribe(onValue func(T), onError func(error)) func() {
	done := make(chan struct{})
	var cancelled atomic.Int32

	go func() {
		values, errs := s.values, s.errs
		for values != nil || errs != nil {
			select {
			case v, ok := <-values:
				if !ok {
					values = nil
					continue
				}
				onValue(v)
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				onError(err)
			case <-done:
				return
			}
		}
	}()

	return func() {
		if cancelled.CompareAndSwap(0, 1) {
			close(done)
		}
	}
}
