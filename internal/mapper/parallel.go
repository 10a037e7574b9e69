package mapper

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Options configures MapArrayParallel.
type Options struct {
	// Workers is the number of goroutines. Values below 2 map sequentially.
	Workers int
	// NaN is the policy applied to numeric values.
	NaN NaNPolicy
}

// MapArrayParallel maps objs on up to opts.Workers goroutines. Each worker
// owns a contiguous chunk of the input and writes into the matching slots of
// the output, so the result is identical to MapArrayChecked.
//
// When several chunks fail, the error of the lowest element index wins.
func MapArrayParallel[S Original[A, B, N], A, B any, N Number, T any](
	ctx context.Context, objs []S, build Strategy[A, B, N, T], opts Options,
) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	workers := min(opts.Workers, len(objs))
	if workers < 2 {
		return MapArrayChecked(objs, build, opts.NaN)
	}

	out := make([]T, len(objs))
	errs := make([]error, workers)
	size := (len(objs) + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)

	for w := range workers {
		lo := w * size
		if lo >= len(objs) {
			break
		}

		hi := min(lo+size, len(objs))

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			errs[w] = mapInto(out[lo:hi], objs[lo:hi], lo, build, opts.NaN)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
