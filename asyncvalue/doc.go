// Package asyncvalue provides tagged-union value types for asynchronous
// operations: AsyncValue for stored state and Result for call-site branching.
//
// # AsyncValue
//
// An AsyncValue is always in exactly one of three variants: Loading, Data, or
// Error. Consumers branch exhaustively with Match, or partially with
// MaybeMatch:
//
//	label := asyncvalue.Match(v,
//	    func() string { return "loading..." },
//	    func(u User) string { return u.Name },
//	    func(err error) string { return err.Error() },
//	)
//
// The three predicates IsLoading, HasValue, and HasError partition the
// variant space: exactly one of them is true for any value.
//
// # Result
//
// Result is the return-value counterpart for call sites that need to branch
// on an outcome without reading stored state:
//
//	res := c.GuardResult(ctx, fetchUser)
//	if user, ok := res.Value(); ok {
//	    navigateTo(user)
//	}
//
// # Equality
//
// Equality is structural over the payload. Two Loading values are always
// equal regardless of type parameter; Data and Error values compare their
// payloads with reflect.DeepEqual.
package asyncvalue
