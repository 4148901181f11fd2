package models

import "time"

// ConversionRecord is one finished or failed conversion run.
type ConversionRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RunID          string    `gorm:"uniqueIndex;size:36" json:"run_id"`
	Images         int       `json:"images"`
	PageFormat     string    `json:"page_format"`
	SizeLimitBytes int64     `json:"size_limit_bytes"`
	BudgetBytes    int64     `json:"budget_bytes"`
	OutputBytes    int64     `json:"output_bytes"`
	WithinLimit    bool      `json:"within_limit"`
	OutputPath     string    `json:"output_path"`
	Error          string    `gorm:"type:text" json:"error,omitempty"`
	DurationMillis int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// Succeeded reports whether the run produced a document.
func (r *ConversionRecord) Succeeded() bool {
	return r.Error == ""
}
