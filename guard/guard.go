package guard

import (
	"context"

	"github.com/kenjiz/guard-vm/asyncvalue"
)

// Guard runs action behind a loading state: Loading is committed first,
// then Data on success or Error on failure. This is the default
// show-a-spinner-while-working pattern.
func (c *Container[T]) Guard(ctx context.Context, action Action[T]) {
	c.setLoading()
	v, err := c.run(ctx, action)
	if err != nil {
		c.setError(err)
		return
	}
	c.setData(v)
}

// GuardResult behaves exactly like Guard and additionally returns the
// outcome, so call sites can branch without re-reading container state
// (navigate on success, show a dialog on failure). The stored state is
// still updated; the Result is a convenience view of the same outcome.
func (c *Container[T]) GuardResult(ctx context.Context, action Action[T]) asyncvalue.Result[T] {
	c.setLoading()
	v, err := c.run(ctx, action)
	if err != nil {
		c.setError(err)
		return asyncvalue.Failure[T](err)
	}
	c.setData(v)
	return asyncvalue.Success(v)
}

// GuardSilent runs action without committing Loading first, then Data on
// success or Error on failure. Use it when surfacing a loading indicator
// would be visually disruptive, such as a background refresh.
func (c *Container[T]) GuardSilent(ctx context.Context, action Action[T]) {
	v, err := c.run(ctx, action)
	if err != nil {
		c.setError(err)
		return
	}
	c.setData(v)
}

// Refresh is an alias for GuardSilent.
func (c *Container[T]) Refresh(ctx context.Context, action Action[T]) {
	c.GuardSilent(ctx, action)
}

// GuardUpdate transforms the current data value. When the container is not
// holding Data the call is a no-op: transform never runs and the state does
// not change. On failure the pre-call snapshot is re-asserted as a
// committed transition, then Error is committed, so a failed update is
// observably "reverted, then flagged" and never left half-applied.
func (c *Container[T]) GuardUpdate(ctx context.Context, transform func(context.Context, T) (T, error)) {
	before, cur, ok := c.dataSnapshot()
	if !ok {
		return
	}

	v, err := c.run(ctx, func(ctx context.Context) (T, error) {
		return transform(ctx, cur)
	})
	if err != nil {
		c.rollback(before)
		c.setError(err)
		return
	}
	c.setData(v)
}

// GuardOptimistic commits optimistic as Data immediately, visible to
// subscribers before action runs, then replaces it with the confirmed
// result on success. On failure the pre-optimistic snapshot is re-asserted
// as a committed transition, then Error is committed.
func (c *Container[T]) GuardOptimistic(ctx context.Context, optimistic T, action Action[T]) {
	before := c.State()
	c.setData(optimistic)

	v, err := c.run(ctx, action)
	if err != nil {
		c.rollback(before)
		c.setError(err)
		return
	}
	c.setData(v)
}

// rollback restores a previously captured snapshot as a committed,
// notifying transition and counts it.
func (c *Container[T]) rollback(snapshot asyncvalue.AsyncValue[T]) {
	c.metrics.RecordRollback(1)
	c.commit(snapshot)
}
