package search

import (
	"context"
	"fmt"
)

// FirstFalse returns the smallest n in [lo, hi) for which ok(n) is false.
// ok must be monotone over the range: true for a prefix and false for the
// rest. If ok holds everywhere, FirstFalse returns hi.
//
// It is meant for questions like "after how many obstacles does the goal
// become unreachable", with ok wrapping a Solve call.
func FirstFalse(ctx context.Context, lo, hi int, ok func(context.Context, int) (bool, error)) (int, error) {
	for lo < hi {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("search: %w", err)
		}
		mid := lo + (hi-lo)/2
		good, err := ok(ctx, mid)
		if err != nil {
			return 0, err
		}
		if good {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}
