package guard

import (
	"context"

	"github.com/kenjiz/guard-vm/asyncvalue"
	"github.com/kenjiz/guard-vm/observability"
)

// PaginatedState is the immutable paginated snapshot managed by a
// PaginatedContainer. Items preserve insertion order; mutations produce a
// new value so the previous snapshot stays available for rollback.
type PaginatedState[T any] struct {
	Items         []T
	CurrentPage   int
	TotalPages    int
	TotalItems    int
	IsLoadingMore bool
	HasReachedEnd bool
}

// CanLoadMore reports whether another page can be requested: the end has
// not been reached, no load-more is in flight, and pages remain.
func (p PaginatedState[T]) CanLoadMore() bool {
	return !p.HasReachedEnd && !p.IsLoadingMore && p.CurrentPage < p.TotalPages
}

// WithLoadingMore returns a copy with IsLoadingMore overridden.
func (p PaginatedState[T]) WithLoadingMore(loading bool) PaginatedState[T] {
	p.IsLoadingMore = loading
	return p
}

// PageFetch loads the page after the given snapshot and returns a complete
// replacement state; callers concatenate items themselves.
type PageFetch[T any] func(context.Context, PaginatedState[T]) (PaginatedState[T], error)

// PaginatedContainer specializes the engine to AsyncValue[PaginatedState]
// and adds a non-reentrant load-more protocol: at most one load-more is in
// flight per container at any time.
type PaginatedContainer[T any] struct {
	*Container[PaginatedState[T]]
}

// NewPaginated creates a PaginatedContainer holding the given initial
// state.
func NewPaginated[T any](initial asyncvalue.AsyncValue[PaginatedState[T]], opts ...Option) *PaginatedContainer[T] {
	return &PaginatedContainer[T]{Container: New(initial, opts...)}
}

// GuardLoadMore fetches the next page. The call is a no-op when the
// container is not holding Data, when a load-more is already in flight, or
// when CanLoadMore is false; the in-flight check and the IsLoadingMore mark
// are one atomic commit, so concurrent calls execute fetch exactly once.
// fetch receives the pre-call snapshot and returns a complete replacement,
// committed with IsLoadingMore forced back to false. On failure the
// pre-call snapshot is committed with IsLoadingMore false, then Error.
func (p *PaginatedContainer[T]) GuardLoadMore(ctx context.Context, fetch PageFetch[T]) {
	before, ok := p.swapData(func(cur PaginatedState[T]) (PaginatedState[T], bool) {
		if !cur.CanLoadMore() {
			return cur, false
		}
		return cur.WithLoadingMore(true), true
	})
	if !ok {
		p.emit(EventLoadMoreSkip, observability.LevelVerbose, nil)
		return
	}

	next, err := p.run(ctx, func(ctx context.Context) (PaginatedState[T], error) {
		return fetch(ctx, before)
	})
	if err != nil {
		p.rollback(asyncvalue.Data(before.WithLoadingMore(false)))
		p.setError(err)
		return
	}
	p.setData(next.WithLoadingMore(false))
}

// RefreshPaginated silently replaces the paginated state with the result of
// fetch, typically resetting to the first page. No loading flag is
// surfaced; failures commit Error directly.
func (p *PaginatedContainer[T]) RefreshPaginated(ctx context.Context, fetch func(context.Context) (PaginatedState[T], error)) {
	p.GuardSilent(ctx, fetch)
}
