package guard

import "github.com/kenjiz/guard-vm/observability"

type settings struct {
	id       string
	observer observability.Observer
}

// Option configures a container at construction time.
type Option func(*settings)

// WithID overrides the generated container identity. The identity appears
// as the Source of every emitted event.
func WithID(id string) Option {
	return func(s *settings) {
		s.id = id
	}
}

// WithObserver sets the diagnostic sink for the container. A nil observer
// leaves the default NoOpObserver in place.
func WithObserver(observer observability.Observer) Option {
	return func(s *settings) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithNamedObserver resolves an observer from the observability registry.
// Unknown names leave the default NoOpObserver in place.
func WithNamedObserver(name string) Option {
	return func(s *settings) {
		if observer, err := observability.GetObserver(name); err == nil {
			s.observer = observer
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
