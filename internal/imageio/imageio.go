package imageio

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image too large")
)

// Decode reads an image in any registered format (png, jpeg, gif, webp, bmp)
// and returns it with the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	return DecodeLimit(r, 0)
}

// DecodeLimit is Decode with a cap on the pixel count declared in the image
// header. The header is checked before any pixel buffer is allocated.
// A maxPixels of 0 disables the check.
func DecodeLimit(r io.Reader, maxPixels int64) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err == nil && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
			return nil, "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, maxPixels)
		}
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, format, nil
	}
	if errors.Is(err, image.ErrFormat) {
		if isSVG(data[:min(len(data), 512)]) {
			return nil, "", fmt.Errorf("%w: svg cannot be rasterised", ErrUnsupportedFormat)
		}
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return nil, "", fmt.Errorf("failed to decode image: %w", err)
}

func isSVG(head []byte) bool {
	s := strings.ToLower(string(bytes.TrimSpace(head)))
	return strings.HasPrefix(s, "<svg") || (strings.HasPrefix(s, "<?xml") && strings.Contains(s, "<svg"))
}

// Load opens and decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Resize scales src to width x height with Catmull-Rom interpolation.
// When src already has that size it is copied unchanged.
func Resize(src image.Image, width, height int) *image.NRGBA {
	dist := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		draw.Draw(dist, dist.Bounds(), src, b.Min, draw.Src)
		return dist
	}
	draw.CatmullRom.Scale(dist, dist.Bounds(), src, b, draw.Src, nil)
	return dist
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Save writes img as PNG to path, creating parent directories as needed.
func Save(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodePNG(f, img)
}

const nameLetters = "abcdefghijklmnopqrstuvwxyz"

// RandomName returns ten random lowercase letters followed by ".png".
func RandomName() string {
	var buf [10]byte
	n := big.NewInt(int64(len(nameLetters)))
	for i := range buf {
		v, _ := rand.Int(rand.Reader, n)
		buf[i] = nameLetters[v.Int64()]
	}
	return string(buf[:]) + ".png"
}
