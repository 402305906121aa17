package stripe

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	test := []struct {
		name            string
		height, workers int
		expLen          int
	}{
		{"zero height", 0, 4, 0},
		{"single row", 1, 8, 1},
		{"below min rows", MinRows - 1, 8, 1},
		{"two stripes", MinRows * 2, 8, 2},
		{"workers cap", 1080, 8, 8},
		{"no workers", 100, 0, 1},
		{"uneven", 100, 3, 3},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			ranges := Split(tt.height, tt.workers)
			require.Len(t, ranges, tt.expLen)
			// ranges cover [0, height) without gaps or overlap
			next := 0
			for _, r := range ranges {
				assert.Equal(t, next, r.Lo)
				assert.Positive(t, r.Len())
				next = r.Hi
			}
			if tt.height > 0 {
				assert.Equal(t, tt.height, next)
			}
		})
	}

	t.Run("balanced", func(t *testing.T) {
		ranges := Split(100, 3)
		assert.Equal(t, []Range{{0, 34}, {34, 67}, {67, 100}}, ranges)
	})
}

func TestRun(t *testing.T) {
	t.Run("visits every row once", func(t *testing.T) {
		const height = 1000
		var seen [height]int32
		err := Run(context.Background(), Split(height, 7), func(r Range) {
			for y := r.Lo; y < r.Hi; y++ {
				atomic.AddInt32(&seen[y], 1)
			}
		})
		require.NoError(t, err)
		for y, n := range seen {
			assert.EqualValues(t, 1, n, "row %d", y)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		for _, workers := range []int{1, 4} {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			var calls atomic.Int32
			err := Run(ctx, Split(MinRows*4, workers), func(Range) { calls.Add(1) })
			assert.ErrorIs(t, err, context.Canceled)
			assert.Zero(t, calls.Load())
		}
	})
}
