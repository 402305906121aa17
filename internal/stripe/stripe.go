package stripe

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MinRows is the smallest number of rows handed to a single worker.
const MinRows = 16

// Range is a half-open row interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Split divides height rows into at most workers contiguous, disjoint ranges
// of near-equal size. No range is shorter than MinRows unless height itself is.
func Split(height, workers int) []Range {
	if height <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if max := (height + MinRows - 1) / MinRows; workers > max {
		workers = max
	}
	ranges := make([]Range, workers)
	base, rem := height/workers, height%workers
	lo := 0
	for i := range ranges {
		n := base
		if i < rem {
			n++
		}
		ranges[i] = Range{Lo: lo, Hi: lo + n}
		lo += n
	}
	return ranges
}

// Run calls fn once per range, each on its own goroutine. Ranges are disjoint,
// so fn may write to its own rows without locking. The context is checked
// before every range starts; the first error (or ctx.Err()) is returned.
func Run(ctx context.Context, ranges []Range, fn func(Range)) error {
	if len(ranges) == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(ranges[0])
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(r)
			return nil
		})
	}
	return g.Wait()
}
