package bench_test

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	stego "github.com/yyyoichi/nibble_stego"
)

// BenchmarkEncode_FHD runs encode benchmarks for FHD grids across worker counts
func BenchmarkEncode_FHD(b *testing.B) {
	carrier := stego.FromImage(createImage(1920, 1080))
	secret := stego.FromImage(createImage(1920, 1080))
	ctx := b.Context()

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			s, err := stego.New(stego.WithWorkers(workers))
			if err != nil {
				b.Fatalf("Failed to create Stego instance (%d): %v", workers, err)
			}
			for b.Loop() {
				dist, err := s.Encode(ctx, carrier, secret)
				if err != nil {
					b.Fatalf("Failed to encode (%d): %v", workers, err)
				}
				_ = dist
			}
		})
	}
}

// BenchmarkDecode_FHD runs decode benchmarks for FHD grids across worker counts
func BenchmarkDecode_FHD(b *testing.B) {
	src := stego.FromImage(createImage(1920, 1080))
	ctx := b.Context()

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			s, err := stego.New(stego.WithWorkers(workers))
			if err != nil {
				b.Fatalf("Failed to create Stego instance (%d): %v", workers, err)
			}
			for b.Loop() {
				dist, err := s.Decode(ctx, src)
				if err != nil {
					b.Fatalf("Failed to decode (%d): %v", workers, err)
				}
				_ = dist
			}
		})
	}
}

// BenchmarkBatch_FHD compares a cached carrier against plain encoding
func BenchmarkBatch_FHD(b *testing.B) {
	carrier := stego.FromImage(createImage(1920, 1080))
	secret := stego.FromImage(createImage(1920, 1080))
	ctx := b.Context()

	batch, err := stego.NewBatch(carrier)
	if err != nil {
		b.Fatalf("Failed to create batch: %v", err)
	}
	for b.Loop() {
		if _, err := batch.Encode(ctx, secret); err != nil {
			b.Fatalf("Failed to encode: %v", err)
		}
	}
}

// createImage creates a widthxheight test image with gradient pattern
func createImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			// Create gradient effect to simulate realistic image data
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(((x + y) * 255) / (width + height))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}
