package imageio

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.NRGBA{uint8(x * 255 / width), uint8(y * 255 / height), 128, 255})
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	src := gradient(6, 4)
	test := []struct {
		name   string
		encode func(*bytes.Buffer) error
		format string
	}{
		{"png", func(b *bytes.Buffer) error { return EncodePNG(b, src) }, "png"},
		{"jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 90}) }, "jpeg"},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) }, "gif"},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }, "bmp"},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf))
			img, format, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}

	t.Run("png is lossless", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodePNG(&buf, src))
		img, _, err := Decode(&buf)
		require.NoError(t, err)
		for y := range 4 {
			for x := range 6 {
				r0, g0, b0, _ := src.At(x, y).RGBA()
				r1, g1, b1, _ := img.At(x, y).RGBA()
				assert.Equal(t, [3]uint32{r0, g0, b0}, [3]uint32{r1, g1, b1})
			}
		}
	})

	t.Run("svg", func(t *testing.T) {
		_, _, err := Decode(strings.NewReader(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "svg")
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := Decode(strings.NewReader("not an image"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestResize(t *testing.T) {
	src := gradient(40, 20)

	t.Run("scale", func(t *testing.T) {
		dst := Resize(src, 10, 30)
		assert.Equal(t, image.Rect(0, 0, 10, 30), dst.Bounds())
	})

	t.Run("same size copies", func(t *testing.T) {
		dst := Resize(src, 40, 20)
		assert.Equal(t, src.Pix, dst.Pix)
	})

	t.Run("offset bounds", func(t *testing.T) {
		sub := src.SubImage(image.Rect(10, 5, 20, 15))
		dst := Resize(sub, 10, 10)
		assert.Equal(t, image.Rect(0, 0, 10, 10), dst.Bounds())
		assert.Equal(t, src.NRGBAAt(10, 5), dst.NRGBAAt(0, 0))
	})
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	src := gradient(8, 8)
	require.NoError(t, Save(path, src))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRandomName(t *testing.T) {
	re := regexp.MustCompile(`^[a-z]{10}\.png$`)
	seen := map[string]bool{}
	letters := map[rune]int{}
	for range 1000 {
		name := RandomName()
		assert.Regexp(t, re, name)
		seen[name] = true
		for _, r := range strings.TrimSuffix(name, ".png") {
			letters[r]++
		}
	}
	assert.Greater(t, len(seen), 1)
	assert.Len(t, letters, len(nameLetters))
}

// headerOnlyPNG returns the signature and IHDR chunk of an RGBA PNG that
// declares width x height but carries no pixel data.
func headerOnlyPNG(width, height uint32) []byte {
	ihdr := make([]byte, 0, 17)
	ihdr = append(ihdr, "IHDR"...)
	ihdr = binary.BigEndian.AppendUint32(ihdr, width)
	ihdr = binary.BigEndian.AppendUint32(ihdr, height)
	ihdr = append(ihdr, 8, 6, 0, 0, 0)

	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")
	b.Write(binary.BigEndian.AppendUint32(nil, 13))
	b.Write(ihdr)
	b.Write(binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(ihdr)))
	return b.Bytes()
}

func TestDecodeLimit(t *testing.T) {
	var small bytes.Buffer
	require.NoError(t, EncodePNG(&small, gradient(6, 4)))

	test := []struct {
		name      string
		data      []byte
		maxPixels int64
		wantErr   error
	}{
		{"within limit", small.Bytes(), 24, nil},
		{"no limit", small.Bytes(), 0, nil},
		{"over limit", small.Bytes(), 23, ErrTooLarge},
		{"huge header", headerOnlyPNG(60000, 60000), 50_000_000, ErrTooLarge},
		{"svg", []byte("<svg/>"), 10, ErrUnsupportedFormat},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			img, _, err := DecodeLimit(bytes.NewReader(tt.data), tt.maxPixels)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
		})
	}
}
