package compression

import (
	"context"
	"fmt"
	"image"
	"log/slog"
)

// Encoder turns pixels into a lossy payload at the given 0..1 quality.
// Output size for fixed inputs must be deterministic.
type Encoder interface {
	Encode(ctx context.Context, img image.Image, quality float64) ([]byte, error)
}

// Resizer scales pixels to an exact size.
type Resizer interface {
	Resize(img image.Image, width, height int) image.Image
}

// Compressor fits one image into a byte budget: clamp the resolution once,
// then walk the quality grid downward and keep the first encoding that fits.
type Compressor struct {
	encoder Encoder
	resizer Resizer
	policy  Policy
	logger  *slog.Logger
}

// NewCompressor creates a new compressor instance
func NewCompressor(encoder Encoder, resizer Resizer, policy Policy, logger *slog.Logger) *Compressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compressor{
		encoder: encoder,
		resizer: resizer,
		policy:  policy,
		logger:  logger,
	}
}

// Policy returns the policy the compressor was built with
func (c *Compressor) Policy() Policy {
	return c.policy
}

// Compress encodes src so that its payload is at most targetBytes when any
// quality level on the grid allows it. Otherwise the floor-quality encoding is
// returned with WithinBudget unset. A non-positive budget goes straight to
// the floor. Only encoder failures and context cancellation are errors.
func (c *Compressor) Compress(ctx context.Context, src *SourceImage, targetBytes int64) (*EncodedImage, error) {
	if src == nil || src.Pixels == nil {
		return nil, ErrNoPixels
	}

	pixels := src.Pixels
	bounds := pixels.Bounds()
	width, height, clamped := ClampDimensions(bounds.Dx(), bounds.Dy(), c.policy.MaxDimension)
	if clamped {
		pixels = c.resizer.Resize(pixels, width, height)
		c.logger.Debug("Clamped image resolution",
			"image", src.Name,
			"from_width", bounds.Dx(),
			"from_height", bounds.Dy(),
			"to_width", width,
			"to_height", height)
	}

	levels := c.policy.Levels()
	if targetBytes <= 0 {
		levels = levels[len(levels)-1:]
	}

	result := &EncodedImage{
		Width:   width,
		Height:  height,
		Budget:  targetBytes,
		Clamped: clamped,
	}

	for _, quality := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := c.encoder.Encode(ctx, pixels, quality)
		if err != nil {
			return nil, fmt.Errorf("encode %s at quality %.2f: %w", src.Name, quality, err)
		}

		result.Attempts++
		result.Data = data
		result.Quality = quality

		if int64(len(data)) <= targetBytes {
			result.WithinBudget = true
			return result, nil
		}
	}

	c.logger.Debug("Budget not reachable, using floor quality",
		"image", src.Name,
		"budget_bytes", targetBytes,
		"size_bytes", result.Size(),
		"quality", result.Quality)

	return result, nil
}

// ClampDimensions scales width and height down uniformly so the larger side
// equals maxDim. Sizes already within maxDim are returned unchanged.
func ClampDimensions(width, height, maxDim int) (int, int, bool) {
	longest := max(width, height)
	if maxDim <= 0 || longest <= maxDim {
		return width, height, false
	}

	scale := float64(maxDim) / float64(longest)
	w := int(float64(width)*scale + 0.5)
	h := int(float64(height)*scale + 0.5)
	if width >= height {
		w = maxDim
	} else {
		h = maxDim
	}

	return max(w, 1), max(h, 1), true
}
