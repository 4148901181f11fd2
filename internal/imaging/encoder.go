package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

// JPEGEncoder encodes pixels as baseline JPEG.
type JPEGEncoder struct{}

// NewJPEGEncoder creates a new encoder instance
func NewJPEGEncoder() *JPEGEncoder {
	return &JPEGEncoder{}
}

// Encode encodes img at a 0..1 quality. Transparent pixels are flattened
// onto white since JPEG carries no alpha.
func (e *JPEGEncoder) Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(64 * 1024)

	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: JPEGQuality(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEGQuality maps a 0..1 quality onto the encoder's 1..100 scale.
func JPEGQuality(quality float64) int {
	q := int(math.Round(quality * 100))
	return min(max(q, 1), 100)
}

func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	if _, ok := img.(*image.YCbCr); ok {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}
