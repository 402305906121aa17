package rgb

import (
	"image"
	"image/color"
)

// Channels is the number of bytes stored per pixel.
const Channels = 3

// ColorToRGBBatch writes the non-premultiplied R, G, B of each pixel into pix,
// three bytes per pixel. Alpha is dropped.
func ColorToRGBBatch(pixels []color.Color, pix []uint8) {
	for i, pixel := range pixels {
		c := color.NRGBAModel.Convert(pixel).(color.NRGBA)
		j := i * Channels
		pix[j] = c.R
		pix[j+1] = c.G
		pix[j+2] = c.B
	}
}

// RGBToNRGBABatch expands three-byte pixels into opaque four-byte NRGBA pixels.
func RGBToNRGBABatch(pix []uint8, dst []uint8) {
	n := len(pix) / Channels
	for i := range n {
		s, d := i*Channels, i*4
		dst[d] = pix[s]
		dst[d+1] = pix[s+1]
		dst[d+2] = pix[s+2]
		dst[d+3] = 0xff
	}
}

// FromImage returns the row-major RGB bytes of src together with its size.
// The bounds of src need not start at the origin.
func FromImage(src image.Image) (pix []uint8, width, height int) {
	bounds := src.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pix = make([]uint8, width*height*Channels)

	switch img := src.(type) {
	case *image.NRGBA:
		for y := range height {
			row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := range width {
				s, d := x*4, (y*width+x)*Channels
				pix[d] = row[s]
				pix[d+1] = row[s+1]
				pix[d+2] = row[s+2]
			}
		}
		return
	case *image.RGBA:
		for y := range height {
			row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := range width {
				s, d := x*4, (y*width+x)*Channels
				if row[s+3] == 0xff {
					pix[d] = row[s]
					pix[d+1] = row[s+1]
					pix[d+2] = row[s+2]
					continue
				}
				c := color.NRGBAModel.Convert(color.RGBA{row[s], row[s+1], row[s+2], row[s+3]}).(color.NRGBA)
				pix[d], pix[d+1], pix[d+2] = c.R, c.G, c.B
			}
		}
		return
	}

	pixels := make([]color.Color, width*height)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels[idx] = src.At(x, y)
			idx++
		}
	}
	ColorToRGBBatch(pixels, pix)
	return
}

// ToNRGBA builds an opaque image from row-major RGB bytes.
func ToNRGBA(pix []uint8, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	RGBToNRGBABatch(pix, dst.Pix)
	return dst
}
