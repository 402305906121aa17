package yuv

// BT.601 luma weights, as used by OpenCV's RGB->YUV conversion.
const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
)

// LumaBatch writes the luma of each three-byte RGB pixel in pix into y.
// len(y) must be at least len(pix)/3.
func LumaBatch(pix []uint8, y []float64) {
	n := len(pix) / 3
	for i := range n {
		j := i * 3
		y[i] = yr*float64(pix[j]) + yg*float64(pix[j+1]) + yb*float64(pix[j+2])
	}
}
