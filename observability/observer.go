// Package observability provides the diagnostic sink for the container
// engine. Containers emit an Event for every committed state transition and
// lifecycle step; observers turn those events into logs, traces, or metrics.
// Level values align with OpenTelemetry SeverityNumbers for zero-translation
// compatibility with OTel collectors.
//
// The sink is purely advisory: the engine never branches on observer
// behavior, and observers must not panic back into the engine.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8), maps to slog.LevelDebug
	LevelInfo    Level = 9  // OTel INFO (9-12), maps to slog.LevelInfo
	LevelWarning Level = 13 // OTel WARN (13-16), maps to slog.LevelWarn
	LevelError   Level = 17 // OTel ERROR (17-20), maps to slog.LevelError
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps this level to the corresponding slog.Level for log emission.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType identifies the kind of event. The guard package defines its
// constants using this type (e.g., "container.transition",
// "container.dispose").
type EventType string

// Event is a diagnostic event emitted by a container. Source carries the
// identity of the emitting container; for transition events Data carries
// the previous and next variant tags under "from" and "to". Fields map to
// OTel LogRecord fields: Type→EventName, Level→SeverityNumber,
// Timestamp→Timestamp, Source→InstrumentationScope, Data→Attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives container events for logging, tracing, or metrics.
// Implementations must be safe for concurrent use and must never panic.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
