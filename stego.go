package stego

import (
	"context"
	"image"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/yyyoichi/nibble_stego/internal/nibble"
	"github.com/yyyoichi/nibble_stego/internal/stripe"
)

// Encode hides the high nibble of every secret channel in the low nibble of
// the matching carrier channel.
// This is a convenience function that creates a Stego instance and calls its Encode method.
func Encode(ctx context.Context, carrier, secret *PixelGrid, opts ...Option) (*PixelGrid, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Encode(ctx, carrier, secret)
}

// Decode recovers the hidden nibbles of a stego grid.
// This is a convenience function that creates a Stego instance and calls its Decode method.
func Decode(ctx context.Context, stego *PixelGrid, opts ...Option) (*PixelGrid, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Decode(ctx, stego)
}

type Stego struct {
	workers int
	logger  *zap.Logger
}

// New initializes an encoder/decoder.
// Without options it uses GOMAXPROCS workers and discards logs.
func New(opts ...Option) (*Stego, error) {
	s := new(Stego)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode builds a stego grid from carrier and secret, which must share width
// and height. Each output channel is
//
//	(carrier & 0xF0) | (secret >> 4)
//
// so the carrier keeps its visible high nibble and the secret's high nibble
// occupies the low nibble. The inputs are not modified.
//
// A size mismatch returns a *DimensionMismatchError. If ctx is cancelled
// before the work completes, ctx.Err() is returned and no grid is produced.
func (s *Stego) Encode(ctx context.Context, carrier, secret *PixelGrid) (*PixelGrid, error) {
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	if err := secret.Validate(); err != nil {
		return nil, err
	}
	if carrier.Width != secret.Width || carrier.Height != secret.Height {
		return nil, &DimensionMismatchError{Carrier: carrier.Shape(), Secret: secret.Shape()}
	}
	return s.run(ctx, "encode", carrier, func(dst *PixelGrid, r stripe.Range) {
		nibble.Embed(dst.rows(r.Lo, r.Hi), carrier.rows(r.Lo, r.Hi), secret.rows(r.Lo, r.Hi))
	})
}

// Decode recovers the secret from a stego grid. Each output channel is
//
//	(stego & 0x0F) << 4
//
// which is the secret with its low nibble zeroed: values are multiples of 16
// in [0, 240]. The low nibble of the original secret cannot be recovered.
func (s *Stego) Decode(ctx context.Context, stego *PixelGrid) (*PixelGrid, error) {
	if err := stego.Validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, "decode", stego, func(dst *PixelGrid, r stripe.Range) {
		nibble.Extract(dst.rows(r.Lo, r.Hi), stego.rows(r.Lo, r.Hi))
	})
}

// EncodeImage converts carrier and secret to grids, encodes them and returns
// the result as an opaque image. Both images must have the same size;
// resizing is left to the caller.
func (s *Stego) EncodeImage(ctx context.Context, carrier, secret image.Image) (*image.NRGBA, error) {
	out, err := s.Encode(ctx, FromImage(carrier), FromImage(secret))
	if err != nil {
		return nil, err
	}
	return out.Image(), nil
}

// DecodeImage converts src to a grid, decodes it and returns the recovered
// secret as an opaque image.
func (s *Stego) DecodeImage(ctx context.Context, src image.Image) (*image.NRGBA, error) {
	out, err := s.Decode(ctx, FromImage(src))
	if err != nil {
		return nil, err
	}
	return out.Image(), nil
}

// run allocates the output grid and fills it stripe by stripe.
func (s *Stego) run(ctx context.Context, op string, like *PixelGrid, fn func(dst *PixelGrid, r stripe.Range)) (*PixelGrid, error) {
	start := time.Now()
	dst, _ := NewPixelGrid(like.Width, like.Height)
	ranges := stripe.Split(like.Height, s.workers)
	if err := stripe.Run(ctx, ranges, func(r stripe.Range) { fn(dst, r) }); err != nil {
		s.logger.Debug(op+" aborted", zap.Error(err))
		return nil, err
	}
	s.logger.Debug(op,
		zap.Int("width", like.Width),
		zap.Int("height", like.Height),
		zap.Int("workers", s.workers),
		zap.Int("stripes", len(ranges)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return dst, nil
}

func (s *Stego) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.workers == 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return nil
}
