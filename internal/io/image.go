package ioutils

import (
	"bytes"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// IconProcessor prepares artist icons before they are written next to the
// saved songs or embedded as cover art.
//
// Icons can be:
//   - shrunk to fit within MaxSize x MaxSize (aspect ratio preserved)
//   - converted to JPEG for better compatibility with players
//
// Example usage:
//
//	p := NewIconProcessor(1000, true)
//	out, ext, err := p.Process(iconBytes, ".png")
//	// out holds JPEG bytes, ext is ".jpg"
type IconProcessor struct {
	// MaxSize is the maximum width and height in pixels; 0 disables resizing.
	MaxSize int

	// ToJPEG converts every icon to JPEG.
	ToJPEG bool
}

// NewIconProcessor creates a new IconProcessor.
func NewIconProcessor(maxSize int, toJPEG bool) *IconProcessor {
	return &IconProcessor{MaxSize: maxSize, ToJPEG: toJPEG}
}

// Process resizes and converts an icon. ext is the extension of the source
// file including the dot; the returned extension matches the returned bytes.
//
// Icons that need neither resizing nor conversion are returned unchanged,
// without being decoded.
func (p *IconProcessor) Process(data []byte, ext string) ([]byte, string, error) {
	isJPEG := ext == ".jpg" || ext == ".jpeg"
	if p.MaxSize <= 0 && (!p.ToJPEG || isJPEG) {
		return data, ext, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	resized := false
	if p.MaxSize > 0 {
		img, resized = fit(img, p.MaxSize, p.MaxSize)
	}

	switch {
	case p.ToJPEG:
		out, err := encodeJPEG(img)
		return out, ".jpg", err
	case !resized:
		return data, ext, nil
	case format == "png":
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".png", nil
	default:
		// gif and jpeg sources are written back as JPEG once resized
		out, err := encodeJPEG(img)
		return out, ".jpg", err
	}
}

// Thumbnail returns the icon as a JPEG no larger than size x size. It is
// used for cover art embedded in ID3 tags.
func (p *IconProcessor) Thumbnail(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	img, _ = fit(img, size, size)
	return encodeJPEG(img)
}

// fit scales img down to fit within maxWidth x maxHeight, maintaining the
// aspect ratio. It reports whether the image was scaled.
//
// Example:
//
//	// A 1500x1000 image becomes 1000x666 with a 1000x1000 box
//	// A 800x600 image is returned unchanged
func fit(img image.Image, maxWidth, maxHeight int) (image.Image, bool) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img, false
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = max(1, int(float64(maxHeight)*ratio))
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = max(1, int(float64(maxWidth)/ratio))
		width = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, true
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
