package stego

import (
	"context"

	"github.com/yyyoichi/nibble_stego/internal/nibble"
	"github.com/yyyoichi/nibble_stego/internal/stripe"
)

// Batch enables efficient multiple encodings into a single carrier
// by caching the carrier with its low nibbles already cleared.
type Batch struct {
	masked *PixelGrid
}

// NewBatch validates carrier and pre-computes its masked form.
func NewBatch(carrier *PixelGrid) (*Batch, error) {
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	masked := &PixelGrid{Pix: make([]uint8, len(carrier.Pix)), Width: carrier.Width, Height: carrier.Height}
	nibble.Mask(masked.Pix, carrier.Pix)
	return &Batch{masked: masked}, nil
}

// Shape returns the dimensions every secret passed to Encode must have.
func (b *Batch) Shape() Shape {
	return b.masked.Shape()
}

// Encode embeds secret into the cached carrier with the specified options.
// The result is identical to calling Encode with the original carrier.
func (b *Batch) Encode(ctx context.Context, secret *PixelGrid, opts ...Option) (*PixelGrid, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := secret.Validate(); err != nil {
		return nil, err
	}
	carrier := b.masked
	if carrier.Width != secret.Width || carrier.Height != secret.Height {
		return nil, &DimensionMismatchError{Carrier: carrier.Shape(), Secret: secret.Shape()}
	}
	return s.run(ctx, "batch encode", carrier, func(dst *PixelGrid, r stripe.Range) {
		nibble.EmbedMasked(dst.rows(r.Lo, r.Hi), carrier.rows(r.Lo, r.Hi), secret.rows(r.Lo, r.Hi))
	})
}
