package stego

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/yyyoichi/nibble_stego/internal/rgb"
)

// Channels is the fixed number of channels per pixel (R, G, B).
const Channels = rgb.Channels

// PixelGrid is an RGB image without alpha. Pix holds Height rows of Width
// pixels, three bytes per pixel, in row-major order: channel c of the pixel
// at (x, y) is Pix[(y*Width+x)*3+c].
type PixelGrid struct {
	Pix           []uint8
	Width, Height int
}

// Shape describes the dimensions of a PixelGrid.
type Shape struct {
	Height, Width, Channels int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// NewPixelGrid returns a zeroed grid of the given size.
func NewPixelGrid(width, height int) (*PixelGrid, error) {
	if !fits(width, height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, height, width)
	}
	return &PixelGrid{
		Pix:    make([]uint8, width*height*Channels),
		Width:  width,
		Height: height,
	}, nil
}

// NewPixelGridFrom wraps pix as a grid of the given size without copying.
// len(pix) must equal width*height*3.
func NewPixelGridFrom(width, height int, pix []uint8) (*PixelGrid, error) {
	g := &PixelGrid{Pix: pix, Width: width, Height: height}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// FromSlices copies a [height][width][channel] array into a new grid.
// Every row must have the same width and every pixel exactly 3 channels.
func FromSlices(rows [][][]uint8) (*PixelGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidShape)
	}
	height, width := len(rows), len(rows[0])
	g, _ := NewPixelGrid(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidShape, y, len(row), width)
		}
		for x, px := range row {
			if len(px) != Channels {
				return nil, fmt.Errorf("%w: pixel (%d, %d) has %d channels", ErrInvalidChannelCount, x, y, len(px))
			}
			copy(g.Pix[g.offset(x, y):], px)
		}
	}
	return g, nil
}

// FromImage converts src into a grid, dropping alpha.
func FromImage(src image.Image) *PixelGrid {
	pix, width, height := rgb.FromImage(src)
	return &PixelGrid{Pix: pix, Width: width, Height: height}
}

// Image returns g as an opaque image anchored at the origin.
func (g *PixelGrid) Image() *image.NRGBA {
	return rgb.ToNRGBA(g.Pix, g.Width, g.Height)
}

// Validate reports whether g satisfies the grid invariants: positive
// dimensions and exactly three channels per pixel.
func (g *PixelGrid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidShape)
	}
	if !fits(g.Width, g.Height) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidShape, g.Height, g.Width)
	}
	area := g.Width * g.Height
	if len(g.Pix)%area != 0 {
		return fmt.Errorf("%w: buffer of %d bytes does not fit %dx%d pixels", ErrInvalidShape, len(g.Pix), g.Height, g.Width)
	}
	if c := len(g.Pix) / area; c != Channels {
		return fmt.Errorf("%w: got %d", ErrInvalidChannelCount, c)
	}
	return nil
}

// fits reports whether a width x height grid is non-empty and its byte
// length is representable as an int.
func fits(width, height int) bool {
	return width > 0 && height > 0 && width <= math.MaxInt/height/Channels
}

// Shape returns the dimensions of g.
func (g *PixelGrid) Shape() Shape {
	if g == nil {
		return Shape{}
	}
	s := Shape{Height: g.Height, Width: g.Width}
	if fits(g.Width, g.Height) {
		area := g.Width * g.Height
		s.Channels = len(g.Pix) / area
	}
	return s
}

// At returns the channels of the pixel at (x, y).
func (g *PixelGrid) At(x, y int) (r, gr, b uint8) {
	i := g.offset(x, y)
	return g.Pix[i], g.Pix[i+1], g.Pix[i+2]
}

// Set stores the channels of the pixel at (x, y).
func (g *PixelGrid) Set(x, y int, r, gr, b uint8) {
	i := g.offset(x, y)
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = r, gr, b
}

// Clone returns a deep copy of g.
func (g *PixelGrid) Clone() *PixelGrid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &PixelGrid{Pix: pix, Width: g.Width, Height: g.Height}
}

// Equal reports whether g and o have the same size and bytes.
func (g *PixelGrid) Equal(o *PixelGrid) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Width == o.Width && g.Height == o.Height && bytes.Equal(g.Pix, o.Pix)
}

func (g *PixelGrid) offset(x, y int) int {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		panic(fmt.Sprintf("stego: pixel (%d, %d) out of range %dx%d", x, y, g.Height, g.Width))
	}
	return (y*g.Width + x) * Channels
}

// rows returns the bytes of rows [lo, hi).
func (g *PixelGrid) rows(lo, hi int) []uint8 {
	stride := g.Width * Channels
	return g.Pix[lo*stride : hi*stride : hi*stride]
}
