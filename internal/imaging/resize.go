package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Resizer scales images with an interpolating kernel.
type Resizer struct {
	scaler draw.Scaler
}

// NewResizer returns a Catmull-Rom resizer
func NewResizer() *Resizer {
	return &Resizer{scaler: draw.CatmullRom}
}

// NewFastResizer trades quality for speed with bilinear approximation.
func NewFastResizer() *Resizer {
	return &Resizer{scaler: draw.ApproxBiLinear}
}

// Resize returns a new RGBA image of exactly width×height.
func (r *Resizer) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	r.scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
