package ioutils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "list.m3u")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestSizeMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	tests := []struct {
		name string
		path string
		size int64
		want bool
	}{
		{"same size", path, 5, true},
		{"different size", path, 6, false},
		{"unknown size", path, 0, false},
		{"missing file", filepath.Join(dir, "nope.mp3"), 5, false},
		{"directory", dir, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SizeMatches(tt.path, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIconProcessor_ResizeKeepsAspectRatio(t *testing.T) {
	src := encodePNG(t, 300, 150)

	out, ext, err := NewIconProcessor(100, false).Process(src, ".png")
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestIconProcessor_ConvertToJPEG(t *testing.T) {
	src := encodePNG(t, 20, 20)

	out, ext, err := NewIconProcessor(0, true).Process(src, ".png")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}

func TestIconProcessor_Passthrough(t *testing.T) {
	src := []byte("not decoded")

	out, ext, err := NewIconProcessor(0, false).Process(src, ".gif")
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Equal(t, ".gif", ext)

	out, ext, err = NewIconProcessor(0, true).Process(src, ".jpeg")
	require.NoError(t, err)
	assert.Equal(t, src, out, "JPEG sources need no conversion")
	assert.Equal(t, ".jpeg", ext)
}

func TestIconProcessor_SmallIconUnchanged(t *testing.T) {
	src := encodePNG(t, 10, 10)

	out, ext, err := NewIconProcessor(100, false).Process(src, ".png")
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Equal(t, ".png", ext)
}

func TestIconProcessor_InvalidImage(t *testing.T) {
	_, _, err := NewIconProcessor(100, true).Process([]byte("garbage"), ".png")
	assert.Error(t, err)
}

func TestIconProcessor_Thumbnail(t *testing.T) {
	out, err := NewIconProcessor(0, false).Thumbnail(encodePNG(t, 40, 80), 20)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
