// Package forkjoin runs one task per index on its own goroutine and
// blocks until all of them have returned.
package forkjoin

import (
	"golang.org/x/sync/errgroup"
)

// Run starts task(i) for every i in [0, n) and waits for all of them.
//
// Results are returned in index order regardless of completion order. If
// any task fails, Run still waits for the others and returns the first
// error with no results.
func Run[T any](n int, task func(i int) (T, error)) ([]T, error) {
	results := make([]T, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			r, err := task(i)
			if err != nil {
				return err
			}
			// Each goroutine owns its slot until Wait returns.
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
