// Package quality measures how far a stego grid drifts from its carrier.
package quality

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	stego "github.com/yyyoichi/nibble_stego"
	"github.com/yyyoichi/nibble_stego/internal/yuv"
)

const maxValue = 255.0

// SSIM stabilisation constants for 8-bit data.
var (
	c1 = math.Pow(0.01*maxValue, 2)
	c2 = math.Pow(0.03*maxValue, 2)
)

// Report holds the distortion between two grids of equal size.
type Report struct {
	// MSE is the mean squared error over every channel of every pixel.
	MSE float64
	// ChannelMSE is the mean squared error of R, G and B separately.
	ChannelMSE [stego.Channels]float64
	// PSNR is the peak signal-to-noise ratio in dB; +Inf for identical grids.
	PSNR float64
	// SSIM is the structural similarity of the luma planes, computed over the
	// whole image as a single window.
	SSIM float64
}

// Compare computes MSE, PSNR and SSIM between original and modified.
func Compare(original, modified *stego.PixelGrid) (Report, error) {
	if err := check(original, modified); err != nil {
		return Report{}, err
	}
	var r Report
	area := original.Width * original.Height

	a := make([]float64, area)
	b := make([]float64, area)
	var sum float64
	for c := range stego.Channels {
		for i := range area {
			a[i] = float64(original.Pix[i*stego.Channels+c])
			b[i] = float64(modified.Pix[i*stego.Channels+c])
		}
		d := floats.Distance(a, b, 2)
		r.ChannelMSE[c] = d * d / float64(area)
		sum += d * d
	}
	r.MSE = sum / float64(area*stego.Channels)
	r.PSNR = PSNR(r.MSE)

	yuv.LumaBatch(original.Pix, a)
	yuv.LumaBatch(modified.Pix, b)
	r.SSIM = ssim(a, b)
	return r, nil
}

// PSNR converts a mean squared error of 8-bit samples into decibels.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(maxValue*maxValue/mse)
}

func ssim(x, y []float64) float64 {
	mx, my := stat.Mean(x, nil), stat.Mean(y, nil)
	var vx, vy, cov float64
	if len(x) > 1 {
		vx = stat.Variance(x, nil)
		vy = stat.Variance(y, nil)
		cov = stat.Covariance(x, y, nil)
	}
	return ((2*mx*my + c1) * (2*cov + c2)) /
		((mx*mx + my*my + c1) * (vx + vy + c2))
}

// Heatmap returns a grey grid where each pixel shows the largest channel
// difference between original and modified, scaled by 16 and clamped at 255.
// A nibble-level change therefore reaches full brightness.
func Heatmap(original, modified *stego.PixelGrid) (*stego.PixelGrid, error) {
	if err := check(original, modified); err != nil {
		return nil, err
	}
	out, err := stego.NewPixelGrid(original.Width, original.Height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(out.Pix); i += stego.Channels {
		var d int
		for c := range stego.Channels {
			v := int(original.Pix[i+c]) - int(modified.Pix[i+c])
			if v < 0 {
				v = -v
			}
			d = max(d, v)
		}
		v := uint8(min(d*16, 255))
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = v, v, v
	}
	return out, nil
}

func check(original, modified *stego.PixelGrid) error {
	if err := original.Validate(); err != nil {
		return err
	}
	if err := modified.Validate(); err != nil {
		return err
	}
	if original.Width != modified.Width || original.Height != modified.Height {
		return &stego.DimensionMismatchError{Carrier: original.Shape(), Secret: modified.Shape()}
	}
	return nil
}
