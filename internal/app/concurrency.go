package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fanOut runs every task concurrently and collects the results under the
// task's key. The first failure cancels the context handed to the others and
// is the error returned.
func fanOut[K comparable, V any](ctx context.Context, tasks map[K]func(context.Context) (V, error)) (map[K]V, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex

	results := make(map[K]V, len(tasks))

	for key, task := range tasks {
		g.Go(func() error {
			v, err := task(ctx)
			if err != nil {
				return err
			}

			mu.Lock()
			results[key] = v
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
