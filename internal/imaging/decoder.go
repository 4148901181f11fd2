package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imagepdf/internal/compression"
)

// ErrNotAnImage is returned for data no registered raster decoder accepts.
var ErrNotAnImage = errors.New("not a raster image")

// Info is the header-level description of an image.
type Info struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Decoder turns raw bytes into a SourceImage.
type Decoder struct{}

// NewDecoder creates a new decoder instance
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode fully decodes raw into pixels.
func (d *Decoder) Decode(ctx context.Context, name string, raw []byte) (*compression.SourceImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAnImage, name, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrNotAnImage, name)
	}

	return &compression.SourceImage{
		Name:   name,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Size:   int64(len(raw)),
		Pixels: img,
	}, nil
}

// Probe reads only the image header.
func Probe(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("%w: empty %s image", ErrNotAnImage, format)
	}

	return Info{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
