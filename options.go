package stego

import (
	"fmt"

	"go.uber.org/zap"
)

type Option func(*Stego) error

// WithWorkers sets the maximum number of goroutines used per call.
// Rows are split into disjoint stripes, one per worker; small grids use fewer
// workers than requested.
func WithWorkers(n int) Option {
	return func(s *Stego) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidOption, n)
		}
		s.workers = n
		return nil
	}
}

// WithLogger sets the logger used for per-call debug output.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(s *Stego) error {
		if l == nil {
			l = zap.NewNop()
		}
		s.logger = l
		return nil
	}
}
