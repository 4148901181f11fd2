package services

import (
	"gorm.io/gorm"

	"imagepdf/internal/conversion"
	"imagepdf/internal/models"
)

// SessionStats aggregates the conversions of the running session.
type SessionStats struct {
	Conversions       int64 `json:"conversions"`
	FailedConversions int64 `json:"failed_conversions"`
	ImagesConverted   int64 `json:"images_converted"`
	BytesWritten      int64 `json:"bytes_written"`
	OverLimit         int64 `json:"over_limit"`
}

// HistoryService records conversion runs.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new history service
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// RecordSuccess stores a finished run.
func (s *HistoryService) RecordSuccess(result *conversion.Result, outputPath string) error {
	record := models.ConversionRecord{
		RunID:          result.RunID,
		Images:         len(result.Pages),
		PageFormat:     result.PageFormat,
		SizeLimitBytes: result.SizeLimitBytes,
		BudgetBytes:    result.BudgetBytes,
		OutputBytes:    result.Size(),
		WithinLimit:    result.WithinLimit(),
		OutputPath:     outputPath,
		DurationMillis: result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
	}
	return s.db.Create(&record).Error
}

// RecordFailure stores a run that produced no document.
func (s *HistoryService) RecordFailure(runID string, images int, pageFormat string, runErr error) error {
	record := models.ConversionRecord{
		RunID:      runID,
		Images:     images,
		PageFormat: pageFormat,
		Error:      runErr.Error(),
	}
	return s.db.Create(&record).Error
}

// List returns the most recent runs first. A limit of zero or less returns
// every run.
func (s *HistoryService) List(limit int) ([]models.ConversionRecord, error) {
	query := s.db.Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.ConversionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Stats aggregates every recorded run.
func (s *HistoryService) Stats() (*SessionStats, error) {
	var stats SessionStats

	err := s.db.Model(&models.ConversionRecord{}).
		Select(`COUNT(*) AS conversions,
			COALESCE(SUM(CASE WHEN error <> '' THEN 1 ELSE 0 END), 0) AS failed_conversions,
			COALESCE(SUM(CASE WHEN error = '' THEN images ELSE 0 END), 0) AS images_converted,
			COALESCE(SUM(output_bytes), 0) AS bytes_written,
			COALESCE(SUM(CASE WHEN error = '' AND within_limit = 0 THEN 1 ELSE 0 END), 0) AS over_limit`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
