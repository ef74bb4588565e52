// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces rather than on a specific
// database implementation; the concrete manager lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager defines the contract for the unit of work.
// Implementations handle BEGIN, COMMIT and ROLLBACK.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back and nothing
	// written inside it becomes visible. If fn succeeds, the transaction
	// is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support.
// Use for queries that don't modify data.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// afterCommitKey carries the hook list of the open transaction.
type afterCommitKey struct{}

type afterCommitHooks struct {
	fns []func(ctx context.Context)
}

// WithAfterCommitHooks installs an empty hook list for a new transaction.
// Manager implementations call this when a real transaction starts.
func WithAfterCommitHooks(ctx context.Context) context.Context {
	return context.WithValue(ctx, afterCommitKey{}, &afterCommitHooks{})
}

// AfterCommit registers fn to run once the enclosing transaction commits.
// Side effects that must not leak from an uncommitted transaction (cache
// invalidation, notifications) go through here. Returns false when no hook
// list is present; the caller should then run the side effect immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) bool {
	hooks, ok := ctx.Value(afterCommitKey{}).(*afterCommitHooks)
	if !ok {
		return false
	}
	hooks.fns = append(hooks.fns, fn)
	return true
}

// RunAfterCommitHooks executes and clears the registered hooks. Manager
// implementations call this after a successful commit; on rollback the
// hooks are simply discarded with the context.
func RunAfterCommitHooks(ctx context.Context) {
	hooks, ok := ctx.Value(afterCommitKey{}).(*afterCommitHooks)
	if !ok {
		return
	}
	for _, fn := range hooks.fns {
		fn(ctx)
	}
	hooks.fns = nil
}
