// Package bulk runs an operation over many items with bounded parallelism,
// collecting every success and failure rather than aborting at the first
// error.
package bulk

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ItemError pairs a failed item with the error it produced.
type ItemError[T any] struct {
	Item T
	Err  error
}

// BulkError aggregates every per-item failure from a RunBounded call. It
// implements error so callers can still propagate "something failed"
// without losing per-item detail.
type BulkError[T any] struct {
	Failures []ItemError[T]
}

func (e *BulkError[T]) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%v: %v", f.Item, f.Err)
	}
	return fmt.Sprintf("%d item(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// RunBounded applies fn to every item in items with at most n concurrent
// invocations. No ordering or fairness is guaranteed between items; the
// only guarantee is that every item is attempted independently and one
// item's failure never aborts another's. It returns the items that
// succeeded and a *BulkError describing every failure, or nil if everything
// succeeded.
func RunBounded[T any](ctx context.Context, n int, items []T, fn func(context.Context, T) error) ([]T, error) {
	if n <= 0 {
		n = 1
	}

	var (
		mu        sync.Mutex
		succeeded []T
		failures  []ItemError[T]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)

	for _, item := range items {
		item := item
		g.Go(func() error {
			// Every item shares the group's context. errgroup's gctx only
			// cancels on the first returned error, and this goroutine never
			// returns one, so gctx ends only when ctx does and one item's
			// failure never cuts off the others.
			if err := fn(gctx, item); err != nil {
				mu.Lock()
				failures = append(failures, ItemError[T]{Item: item, Err: err})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			succeeded = append(succeeded, item)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if len(failures) == 0 {
		return succeeded, nil
	}
	return succeeded, &BulkError[T]{Failures: failures}
}
