package match

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minPartition is the fewest candidate offsets worth handing to a goroutine.
const minPartition = 1 << 12

// SearchFunc is any matcher with the (text, pattern) → offsets contract.
type SearchFunc[T Sequence] func(text, pattern T) []int

// IndexAllParallel runs fn over contiguous partitions of text concurrently
// and returns the same offsets fn would return for the whole text.
//
// Each partition owns a range of candidate offsets [start, end) and searches
// text[start : end+len(pattern)-1], so neighbouring partitions overlap by
// len(pattern)-1 bytes and no match straddling a boundary is lost or
// reported twice.
//
// workers <= 0 uses GOMAXPROCS. Inputs too small to split, an empty pattern
// and a pattern longer than the text are searched on the calling goroutine.
func IndexAllParallel[T Sequence](ctx context.Context, text, pattern T, workers int, fn SearchFunc[T]) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return fn(text, pattern), nil
	}

	candidates := n - m + 1
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, candidates/minPartition)
	if workers <= 1 {
		return fn(text, pattern), nil
	}

	chunk := (candidates + workers - 1) / workers
	parts := make([][]int, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		if start >= candidates {
			break
		}
		end := min(start+chunk, candidates)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found := fn(text[start:end+m-1], pattern)
			for k := range found {
				found[k] += start
			}
			parts[w] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	if total == 0 {
		return nil, nil
	}
	matches := make([]int, 0, total)
	for _, part := range parts {
		matches = append(matches, part...)
	}
	return matches, nil
}
