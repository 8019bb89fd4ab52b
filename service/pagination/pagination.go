// Package pagination drains cursor-based AWS listing operations.
package pagination

import (
	"context"
)

// PageFunc fetches one page. cursor is nil on the first call and carries the
// previous page's continuation token afterwards. A nil or empty next token
// means there are no more pages.
type PageFunc[T any] func(ctx context.Context, cursor *string) (items []T, next *string, err error)

// FetchAll calls fn until the continuation token is exhausted and returns every
// item in the order the pages were served. The first error aborts the walk.
func FetchAll[T any](ctx context.Context, fn PageFunc[T]) ([]T, error) {
	var (
		all    []T
		cursor *string
	)

	for {
		items, next, err := fn(ctx, cursor)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if next == nil || *next == "" {
			break
		}
		cursor = next
	}

	if all == nil {
		all = []T{}
	}

	return all, nil
}
