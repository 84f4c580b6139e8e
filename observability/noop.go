package observability

import "context"

// NoOpObserver discards all events with zero overhead. Containers default
// to it when no observer is configured.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
