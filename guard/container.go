package guard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kenjiz/guard-vm/asyncvalue"
	"github.com/kenjiz/guard-vm/observability"
)

// Action is an asynchronous operation executed by a guarded pattern. It may
// return a value, return an error, or panic; panics are recovered and
// normalized into a *PanicError.
type Action[T any] func(context.Context) (T, error)

type listener struct {
	id int
	fn func()
}

// Container holds one asyncvalue.AsyncValue and notifies subscribers
// synchronously on every committed transition. Mutation happens only
// through the guarded patterns; observers read back through State.
//
// A Container is safe for concurrent use. Overlapping guarded calls are
// permitted and race on who commits last; GuardLoadMore on the paginated
// variant is the only pattern with a built-in single-flight guard.
type Container[T any] struct {
	id       string
	observer observability.Observer
	metrics  *Metrics

	mu             sync.Mutex
	state          asyncvalue.AsyncValue[T]
	listeners      []listener
	nextListenerID int
	teardowns      []func()
	disposed       bool

	executing atomic.Int32
}

// New creates a Container holding the given initial state.
func New[T any](initial asyncvalue.AsyncValue[T], opts ...Option) *Container[T] {
	cfg := applyOptions(opts)
	if cfg.id == "" {
		cfg.id = uuid.Must(uuid.NewV7()).String()
	}

	return &Container[T]{
		id:       cfg.id,
		observer: cfg.observer,
		metrics:  NewMetrics(),
		state:    initial,
	}
}

// ID returns the container identity used as the Source of emitted events.
func (c *Container[T]) ID() string {
	return c.id
}

// State returns a snapshot of the current state.
func (c *Container[T]) State() asyncvalue.AsyncValue[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Executing reports whether a guarded action or transform is currently in
// flight on this container.
func (c *Container[T]) Executing() bool {
	return c.executing.Load() > 0
}

// Disposed reports whether Dispose has been called.
func (c *Container[T]) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Metrics returns a snapshot of the container's counters.
func (c *Container[T]) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// Subscribe registers a listener invoked synchronously after every committed
// transition, in registration order. The callback takes no payload and
// should re-read State. It may reentrantly mutate this or another
// container. The returned function removes the listener; calling it more
// than once, or after disposal, is a no-op.
func (c *Container[T]) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return func() {}
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.removeListener(id)
		})
	}
}

func (c *Container[T]) removeListener(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Dispose tears the container down: registered teardowns run exactly once,
// listeners are dropped, and every later mutation attempt becomes a silent
// no-op. Dispose is idempotent.
func (c *Container[T]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	teardowns := c.teardowns
	c.teardowns = nil
	c.listeners = nil
	c.mu.Unlock()

	for _, fn := range teardowns {
		fn()
	}
	c.emit(EventDispose, observability.LevelVerbose, nil)
}

// onDispose registers a teardown to run when the container is disposed.
// Registering on an already-disposed container runs the teardown
// immediately.
func (c *Container[T]) onDispose(fn func()) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		fn()
		return
	}
	c.teardowns = append(c.teardowns, fn)
	c.mu.Unlock()
}

// commit replaces the state and notifies listeners, unless the container is
// disposed. It reports whether the transition was committed. The lock is
// released before the observer and listeners are called, which keeps
// notification reentrant-safe.
func (c *Container[T]) commit(next asyncvalue.AsyncValue[T]) bool {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return false
	}
	prev := c.state
	c.state = next
	notify := c.snapshotListeners()
	c.mu.Unlock()

	c.afterCommit(prev, next, notify)
	return true
}

// snapshotListeners copies the listener callbacks in registration order.
// Callers must hold c.mu.
func (c *Container[T]) snapshotListeners() []func() {
	notify := make([]func(), len(c.listeners))
	for i, l := range c.listeners {
		notify[i] = l.fn
	}
	return notify
}

func (c *Container[T]) afterCommit(prev, next asyncvalue.AsyncValue[T], notify []func()) {
	c.metrics.RecordTransition(1)
	c.emit(EventTransition, observability.LevelVerbose, map[string]any{
		"from": string(prev.Tag()),
		"to":   string(next.Tag()),
	})

	c.metrics.RecordNotification(len(notify))
	for _, fn := range notify {
		fn()
	}
}

func (c *Container[T]) setLoading() bool {
	return c.commit(asyncvalue.Loading[T]())
}

func (c *Container[T]) setData(v T) bool {
	return c.commit(asyncvalue.Data(v))
}

func (c *Container[T]) setError(err error) bool {
	return c.commit(asyncvalue.Error[T](err))
}

// swapData atomically applies update to the current data value and commits
// the result. It returns the pre-call data and true when the container held
// Data and update accepted the swap; otherwise no transition happens.
// update runs under the container lock and must not call back into the
// container.
func (c *Container[T]) swapData(update func(T) (T, bool)) (T, bool) {
	var zero T

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return zero, false
	}
	cur, ok := c.state.Value()
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	next, ok := update(cur)
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	prev := c.state
	c.state = asyncvalue.Data(next)
	notify := c.snapshotListeners()
	c.mu.Unlock()

	c.afterCommit(prev, asyncvalue.Data(next), notify)
	return cur, true
}

// dataSnapshot returns the full pre-call state together with the carried
// data value when the Data variant is active.
func (c *Container[T]) dataSnapshot() (asyncvalue.AsyncValue[T], T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.state.Value()
	return c.state, v, ok
}

// run executes the action with the executing flag raised, recovering any
// panic into a *PanicError. The flag is lowered on every exit path.
func (c *Container[T]) run(ctx context.Context, action Action[T]) (value T, err error) {
	c.executing.Add(1)
	defer c.executing.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return action(ctx)
}

func (c *Container[T]) emit(eventType observability.EventType, level observability.Level, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	c.observer.OnEvent(context.Background(), observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    c.id,
		Data:      data,
	})
}
