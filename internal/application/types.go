package application

import (
	"imagepdf/internal/conversion"
	"imagepdf/internal/services"
	"imagepdf/internal/session"
)

type FileUpload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
	Size int64  `json:"size"`
}

type ImagesResponse struct {
	Success  bool                `json:"success"`
	Images   []session.Item      `json:"images"`
	Added    []session.Item      `json:"added,omitempty"`
	Rejected []session.Rejection `json:"rejected,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// ConvertRequest carries the per-run choices from the UI. Empty fields fall
// back to the saved preferences.
type ConvertRequest struct {
	PageFormat  string  `json:"pageFormat"`
	SizeLimitMB float64 `json:"sizeLimitMb"`
	OutputDir   string  `json:"outputDir"`
	OutputPath  string  `json:"outputPath"`
}

type ConvertResponse struct {
	Success        bool                    `json:"success"`
	RunID          string                  `json:"run_id,omitempty"`
	OutputPath     string                  `json:"output_path,omitempty"`
	PageFormat     string                  `json:"page_format,omitempty"`
	Pages          []conversion.PageResult `json:"pages,omitempty"`
	TotalBytes     int64                   `json:"total_bytes"`
	SizeLimitBytes int64                   `json:"size_limit_bytes"`
	BudgetBytes    int64                   `json:"budget_bytes"`
	WithinLimit    bool                    `json:"within_limit"`
	Stage          string                  `json:"stage,omitempty"`
	FailedImage    string                  `json:"failed_image,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

type AppStats = services.SessionStats
