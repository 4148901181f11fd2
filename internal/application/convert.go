package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"imagepdf/internal/common"
	"imagepdf/internal/config"
	"imagepdf/internal/conversion"
	"imagepdf/internal/services"
	"imagepdf/internal/session"
	"imagepdf/internal/transport"
)

type ConvertHandler struct {
	ctx       context.Context
	config    *config.Config
	session   *session.Session
	converter *conversion.Converter
	prefs     *services.PreferencesService
	history   *services.HistoryService
	stats     *StatsManager
	events    transport.EventEmitter
	logger    *slog.Logger
	now       func() time.Time

	running sync.Mutex
}

// Convert turns the current image list into one PDF on disk. Only one run
// may be active at a time.
func (h *ConvertHandler) Convert(request ConvertRequest) ConvertResponse {
	if !h.running.TryLock() {
		return ConvertResponse{Error: ErrConversionRunning.Error()}
	}
	defer h.running.Unlock()

	inputs := h.session.Snapshot()
	if len(inputs) == 0 {
		h.logger.Error("Conversion request validation failed", "error", ErrNoImagesSelected)
		return ConvertResponse{Error: ErrNoImagesSelected.Error()}
	}

	pageFormat, sizeLimit, outputPath, err := h.resolve(request)
	if err != nil {
		h.logger.Error("Failed to resolve conversion settings", "error", err)
		return ConvertResponse{Error: err.Error()}
	}

	result, err := h.converter.Convert(h.ctx, conversion.Request{
		Inputs:        inputs,
		PageFormat:    pageFormat,
		SizeLimitMB:   sizeLimit,
		OverheadBytes: h.config.OverheadBytes(),
		Title:         "images",
	}, func(p conversion.Progress) {
		h.events.Emit(transport.EventConvertProgress, p)
	})
	if err != nil {
		return h.fail(len(inputs), pageFormat, err)
	}

	if err := common.WriteFile(outputPath, result.PDF); err != nil {
		h.logger.Error("Failed to write PDF", "path", outputPath, "error", err)
		return h.fail(len(inputs), pageFormat, err)
	}

	if err := h.history.RecordSuccess(result, outputPath); err != nil {
		h.logger.Error("Failed to record conversion", "run_id", result.RunID, "error", err)
	}
	h.stats.UpdateStats()

	if !result.WithinLimit() {
		h.logger.Warn("Document exceeds size limit",
			"run_id", result.RunID,
			"output_bytes", result.Size(),
			"size_limit_bytes", result.SizeLimitBytes)
	}

	response := ConvertResponse{
		Success:        true,
		RunID:          result.RunID,
		OutputPath:     outputPath,
		PageFormat:     result.PageFormat,
		Pages:          result.Pages,
		TotalBytes:     result.Size(),
		SizeLimitBytes: result.SizeLimitBytes,
		BudgetBytes:    result.BudgetBytes,
		WithinLimit:    result.WithinLimit(),
	}
	h.events.Emit(transport.EventConvertCompleted, response)

	return response
}

func (h *ConvertHandler) resolve(request ConvertRequest) (string, float64, string, error) {
	prefs, err := h.prefs.GetPreferences()
	if err != nil {
		return "", 0, "", NewPreferencesError("load", err)
	}

	pageFormat := request.PageFormat
	if pageFormat == "" {
		pageFormat = prefs.PageFormat
	}

	sizeLimit := request.SizeLimitMB
	if sizeLimit == 0 {
		sizeLimit = prefs.SizeLimitMB
	}

	if request.OutputPath != "" {
		return pageFormat, sizeLimit, common.EnsurePDFExtension(request.OutputPath), nil
	}

	dir := request.OutputDir
	if dir == "" {
		dir, err = h.prefs.GetOutputFolder()
		if err != nil {
			return "", 0, "", NewPreferencesError("load", err)
		}
	}

	return pageFormat, sizeLimit, common.AvailablePath(dir, common.DefaultOutputFilename, h.now()), nil
}

func (h *ConvertHandler) fail(images int, pageFormat string, err error) ConvertResponse {
	response := ConvertResponse{Error: err.Error()}

	var runErr *conversion.RunError
	if errors.As(err, &runErr) {
		response.Stage = string(runErr.Stage)
		response.FailedImage = runErr.Name
	}

	if recordErr := h.history.RecordFailure(common.GenerateUUID(), images, pageFormat, err); recordErr != nil {
		h.logger.Error("Failed to record conversion", "error", recordErr)
	}
	h.stats.UpdateStats()
	h.events.Emit(transport.EventConvertCompleted, response)

	return response
}
