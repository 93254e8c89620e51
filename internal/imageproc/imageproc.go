package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultQuality      = 80
	DefaultMaxDimension = 2048
)

// ErrUnsupported is returned for formats that are never re-encoded.
var ErrUnsupported = errors.New("unsupported image format")

// Compressor shrinks large images by downscaling and re-encoding them.
type Compressor struct {
	quality      int
	maxDimension int
}

func NewCompressor(quality, maxDimension int) *Compressor {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Compressor{quality: quality, maxDimension: maxDimension}
}

// Compress returns a smaller encoding of data and its content type. JPEG and WebP come back
// as JPEG, PNG stays PNG. GIFs are rejected so animations survive untouched.
func (c *Compressor) Compress(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	img = c.fit(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg", "webp":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.quality}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
}

// fit scales img down so that its longer side is at most maxDimension.
func (c *Compressor) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= c.maxDimension {
		return img
	}

	scale := float64(c.maxDimension) / float64(longest)
	newWidth := max(1, int(float64(width)*scale))
	newHeight := max(1, int(float64(height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
