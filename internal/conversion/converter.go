package conversion

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"imagepdf/internal/compression"
	"imagepdf/internal/document"
)

// Decoder turns raw bytes into pixels.
type Decoder interface {
	Decode(ctx context.Context, name string, raw []byte) (*compression.SourceImage, error)
}

// ImageCompressor fits one image into a byte budget.
type ImageCompressor interface {
	Compress(ctx context.Context, src *compression.SourceImage, targetBytes int64) (*compression.EncodedImage, error)
}

// Converter assembles images into a PDF, one page per image, strictly in
// input order.
type Converter struct {
	decoder    Decoder
	compressor ImageCompressor
	logger     *slog.Logger
	now        func() time.Time
}

// NewConverter creates a new converter instance
func NewConverter(decoder Decoder, compressor ImageCompressor, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		decoder:    decoder,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

// Convert runs one conversion. Any decode, encode or assembly failure aborts
// the run and no document is returned. An unreachable budget is not a
// failure: affected pages fall back to the floor quality.
func (c *Converter) Convert(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	if len(req.Inputs) == 0 {
		return nil, ErrNoImages
	}
	if req.SizeLimitMB <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSizeLimit, req.SizeLimitMB)
	}

	format, err := document.LookupPageFormat(req.PageFormat)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = func(Progress) {}
	}

	total := len(req.Inputs)
	limit := compression.MegabytesToBytes(req.SizeLimitMB)
	budget := compression.Allocate(limit, req.OverheadBytes, total)

	result := &Result{
		RunID:          uuid.New().String(),
		PageFormat:     format.Name,
		SizeLimitBytes: limit,
		BudgetBytes:    budget,
		Pages:          make([]PageResult, 0, total),
		StartedAt:      c.now(),
	}

	logger := c.logger.With("run_id", result.RunID)
	logger.Info("Starting conversion",
		"images", total,
		"page_format", format.Name,
		"size_limit_bytes", limit,
		"overhead_bytes", req.OverheadBytes,
		"budget_bytes", budget)

	doc := document.New(format)
	doc.SetCreationDate(result.StartedAt)
	if req.Title != "" {
		doc.SetTitle(req.Title)
	}

	for i, input := range req.Inputs {
		name := inputName(input, i)
		progress(Progress{
			RunID:   result.RunID,
			Index:   i,
			Total:   total,
			Name:    name,
			Stage:   StageDecode,
			Percent: percent(i, total),
		})

		page, err := c.convertOne(ctx, doc, i, name, input, budget)
		if err != nil {
			logger.Error("Conversion failed", "image", name, "index", i, "error", err)
			return nil, err
		}
		result.Pages = append(result.Pages, *page)

		logger.Debug("Placed image",
			"image", name,
			"index", i,
			"quality", page.Quality,
			"encoded_bytes", page.EncodedBytes,
			"within_budget", page.WithinBudget)

		progress(Progress{
			RunID:   result.RunID,
			Index:   i,
			Total:   total,
			Name:    name,
			Stage:   StageCompleted,
			Percent: percent(i+1, total),
		})
	}

	var buf bytes.Buffer
	if err := doc.Serialize(&buf); err != nil {
		return nil, NewRunError(StageAssemble, total-1, "", err)
	}

	result.PDF = buf.Bytes()
	result.FinishedAt = c.now()

	logger.Info("Conversion finished",
		"pages", len(result.Pages),
		"output_bytes", result.Size(),
		"within_limit", result.WithinLimit(),
		"duration", result.FinishedAt.Sub(result.StartedAt))

	return result, nil
}

func (c *Converter) convertOne(ctx context.Context, doc *document.Document, index int, name string, input Input, budget int64) (*PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewRunError(StageLoad, index, name, err)
	}

	raw, err := loadInput(input)
	if err != nil {
		return nil, NewRunError(StageLoad, index, name, err)
	}

	src, err := c.decoder.Decode(ctx, name, raw)
	if err != nil {
		return nil, NewRunError(StageDecode, index, name, err)
	}

	encoded, err := c.compressor.Compress(ctx, src, budget)
	if err != nil {
		return nil, NewRunError(StageEncode, index, name, err)
	}

	if index > 0 {
		doc.AddPage()
	}

	placement := compression.Place(
		float64(encoded.Width),
		float64(encoded.Height),
		doc.PageWidth(),
		doc.PageHeight(),
	)

	err = doc.PlaceImage(name, encoded.Data, placement.X, placement.Y, placement.Width, placement.Height)
	if err != nil {
		return nil, NewRunError(StageAssemble, index, name, err)
	}

	return &PageResult{
		Index:         index,
		Name:          name,
		Format:        src.Format,
		SourceWidth:   src.Width,
		SourceHeight:  src.Height,
		SourceBytes:   int64(len(raw)),
		EncodedWidth:  encoded.Width,
		EncodedHeight: encoded.Height,
		EncodedBytes:  encoded.Size(),
		Quality:       encoded.Quality,
		Clamped:       encoded.Clamped,
		WithinBudget:  encoded.WithinBudget,
		Placement:     placement,
	}, nil
}

func loadInput(input Input) ([]byte, error) {
	if input.Data != nil {
		return input.Data, nil
	}
	if input.Path == "" {
		return nil, fmt.Errorf("input has neither data nor path")
	}
	return os.ReadFile(input.Path)
}

func inputName(input Input, index int) string {
	switch {
	case input.Name != "":
		return input.Name
	case input.Path != "":
		return filepath.Base(input.Path)
	default:
		return fmt.Sprintf("image-%d", index+1)
	}
}

func percent(done, total int) float64 {
	return float64(done) / float64(total) * 100
}
