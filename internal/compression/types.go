package compression

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	ErrNoPixels      = errors.New("source image has no decoded pixels")
	ErrInvalidPolicy = errors.New("invalid compression policy")
)

// Policy holds the knobs of the adaptive compressor. Quality is on a 0..1 scale.
type Policy struct {
	MaxDimension int     `json:"max_dimension" yaml:"max_dimension"`
	QualityStart float64 `json:"quality_start" yaml:"quality_start"`
	QualityStep  float64 `json:"quality_step" yaml:"quality_step"`
	QualityFloor float64 `json:"quality_floor" yaml:"quality_floor"`
}

// DefaultPolicy returns the default compression policy
func DefaultPolicy() Policy {
	return Policy{
		MaxDimension: 2000,
		QualityStart: 0.85,
		QualityStep:  0.05,
		QualityFloor: 0.40,
	}
}

// Validate reports whether the policy describes a usable search grid.
func (p Policy) Validate() error {
	switch {
	case p.MaxDimension <= 0:
		return fmt.Errorf("%w: max dimension must be positive, got %d", ErrInvalidPolicy, p.MaxDimension)
	case p.QualityStep <= 0:
		return fmt.Errorf("%w: quality step must be positive, got %v", ErrInvalidPolicy, p.QualityStep)
	case p.QualityFloor <= 0 || p.QualityFloor > 1:
		return fmt.Errorf("%w: quality floor must be in (0, 1], got %v", ErrInvalidPolicy, p.QualityFloor)
	case p.QualityStart <= 0 || p.QualityStart > 1:
		return fmt.Errorf("%w: quality start must be in (0, 1], got %v", ErrInvalidPolicy, p.QualityStart)
	case p.QualityStart < p.QualityFloor:
		return fmt.Errorf("%w: quality start %v is below floor %v", ErrInvalidPolicy, p.QualityStart, p.QualityFloor)
	}
	return nil
}

// Levels returns the quality grid in strictly decreasing order. The floor is
// always the last level, even when the step does not land on it exactly.
// A grid that cannot be walked collapses to the floor alone.
func (p Policy) Levels() []float64 {
	if p.QualityStep <= 0 || p.QualityStart < p.QualityFloor {
		return []float64{p.QualityFloor}
	}

	// Step by index so 0.85 - 9*0.05 lands on 0.40 instead of 0.3999...
	n := int(math.Floor((p.QualityStart-p.QualityFloor)/p.QualityStep + 1e-9))

	levels := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		q := p.QualityStart - float64(i)*p.QualityStep
		levels = append(levels, math.Round(q*1e4)/1e4)
	}
	if last := levels[len(levels)-1]; last-p.QualityFloor > 1e-9 {
		levels = append(levels, p.QualityFloor)
	}
	return levels
}

// SourceImage is a decoded input image. It is never mutated by the compressor.
type SourceImage struct {
	Name   string
	Format string
	Width  int
	Height int
	Size   int64
	Pixels image.Image
}

// EncodedImage is the compressor's output for one image.
type EncodedImage struct {
	Width        int
	Height       int
	Data         []byte
	Quality      float64
	Budget       int64
	WithinBudget bool
	Clamped      bool
	Attempts     int
}

// Size returns the encoded payload size in bytes
func (e *EncodedImage) Size() int64 {
	return int64(len(e.Data))
}
