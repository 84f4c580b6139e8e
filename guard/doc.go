// Package guard implements reactive state containers for asynchronous
// operations. A Container owns one asyncvalue.AsyncValue, notifies
// subscribers synchronously on every committed transition, and exposes a
// fixed vocabulary of guarded mutation patterns with consistent error
// capture and rollback.
//
// # Containers
//
// Container - the core engine with the five guarded patterns
//
// StreamContainer - bridges push-based sources into container state
//
// CoordinatedContainer - derives its state from other containers
//
// PaginatedContainer - paginated state with a single-flight load-more
//
// # Guarded Patterns
//
// Every mutation flows through a guarded entry point, so consumers can rely
// on the Loading/Data/Error state machine never being left half-applied:
//
//	c := guard.New(asyncvalue.Loading[[]Article]())
//	c.Guard(ctx, func(ctx context.Context) ([]Article, error) {
//	    return repo.ListArticles(ctx)
//	})
//
// Guard shows a loading state while working. GuardSilent (alias Refresh)
// skips it for background refreshes. GuardResult additionally returns the
// outcome to the caller. GuardUpdate transforms current data and rolls back
// on failure. GuardOptimistic commits a provisional value first and rolls
// back on failure. A rollback re-asserts the pre-call snapshot as a
// committed transition, then commits the error: failed mutations are
// observably "reverted, then flagged".
//
// # Notification
//
// Subscribers are invoked synchronously, in registration order, after every
// committed transition. Notification is pull-based: callbacks take no
// payload and re-read State. No lock is held across callbacks, so a
// subscriber may mutate the same or another container reentrantly; chains
// of coordinated containers resolve completely before the triggering commit
// returns. There is no artificial recursion limit.
//
// # Disposal
//
// The creator of a container owns its disposal. Dispose is idempotent and
// releases subscriptions, coordination listeners, and stream cancels owned
// by the container. Once disposed, all mutation attempts are silent no-ops;
// an action completing after disposal runs to completion but its result is
// discarded.
//
// # Observability
//
// Every committed transition emits an observability.Event carrying the
// container identity and the previous/next variant tags. Wire a
// SlogObserver (or any Observer) with WithObserver or WithNamedObserver.
package guard
