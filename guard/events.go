package guard

import "github.com/kenjiz/guard-vm/observability"

const (
	// Core engine
	EventTransition observability.EventType = "container.transition"
	EventDispose    observability.EventType = "container.dispose"

	// Stream bridging
	EventStreamSubscribe observability.EventType = "stream.subscribe"
	EventStreamCancel    observability.EventType = "stream.cancel"

	// Cross-container coordination
	EventCoordinateAttach observability.EventType = "coordinate.attach"

	// Pagination
	EventLoadMoreSkip observability.EventType = "paginate.skip"
)
