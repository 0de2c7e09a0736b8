package dfetch

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Run calls task for every index in [0, n), either one by one or as a parallel group
// that waits for all tasks. The first error aborts the run.
func Run(ctx context.Context, n int, opts Options, task func(ctx context.Context, i int) error) error {
	if opts.OneByOne {
		for i := 0; i < n; i++ {
			if err := task(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Limit > 0 {
		group.SetLimit(opts.Limit)
	}
	for i := 0; i < n; i++ {
		group.Go(func() error {
			return task(groupCtx, i)
		})
	}
	return group.Wait()
}

// FetchAll fetches every request and returns the non-empty bodies keyed by path.
func FetchAll(ctx context.Context, src Source, reqs []Request, opts Options) (map[string][]byte, error) {
	bodies := make([][]byte, len(reqs))
	err := Run(ctx, len(reqs), opts, func(ctx context.Context, i int) error {
		body, err := src.Fetch(ctx, reqs[i].Path)
		if err != nil {
			if reqs[i].Optional && errors.Is(err, ErrNotFound) {
				return nil
			}
			return errors.Wrapf(err, "FetchAll error for %s", reqs[i].Path)
		}
		bodies[i] = body
		return nil
	})
	if err != nil {
		return nil, err
	}

	fetched := make(map[string][]byte, len(reqs))
	for i, body := range bodies {
		if len(body) == 0 {
			continue
		}
		fetched[reqs[i].Path] = body
	}
	return fetched, nil
}
