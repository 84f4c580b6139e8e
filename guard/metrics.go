package guard

import "sync/atomic"

// MetricsSnapshot is a point-in-time view of a container's counters.
type MetricsSnapshot struct {
	Transitions   int64
	Notifications int64
	Rollbacks     int64
}

// Metrics tracks per-container counters: committed transitions, listener
// notifications delivered, and rollbacks performed by failing mutations.
type Metrics struct {
	transitions   atomic.Int64
	notifications atomic.Int64
	rollbacks     atomic.Int64
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordTransition(delta int) {
	m.transitions.Add(int64(delta))
}

func (m *Metrics) RecordNotification(delta int) {
	m.notifications.Add(int64(delta))
}

func (m *Metrics) RecordRollback(delta int) {
	m.rollbacks.Add(int64(delta))
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Transitions:   m.transitions.Load(),
		Notifications: m.notifications.Load(),
		Rollbacks:     m.rollbacks.Load(),
	}
}
