package conversion

import (
	"time"

	"imagepdf/internal/compression"
)

// Input is one image of a run. Data wins over Path; a path is read only
// when its turn comes.
type Input struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	Data []byte `json:"-"`
}

// Request is the explicit context of one conversion run.
type Request struct {
	Inputs        []Input
	PageFormat    string
	SizeLimitMB   float64
	OverheadBytes int64
	Title         string
}

// PageResult describes what happened to one image.
type PageResult struct {
	Index         int                   `json:"index"`
	Name          string                `json:"name"`
	Format        string                `json:"format"`
	SourceWidth   int                   `json:"source_width"`
	SourceHeight  int                   `json:"source_height"`
	SourceBytes   int64                 `json:"source_bytes"`
	EncodedWidth  int                   `json:"encoded_width"`
	EncodedHeight int                   `json:"encoded_height"`
	EncodedBytes  int64                 `json:"encoded_bytes"`
	Quality       float64               `json:"quality"`
	Clamped       bool                  `json:"clamped"`
	WithinBudget  bool                  `json:"within_budget"`
	Placement     compression.Placement `json:"placement"`
}

// Result is the outcome of a successful run.
type Result struct {
	RunID          string       `json:"run_id"`
	PageFormat     string       `json:"page_format"`
	SizeLimitBytes int64        `json:"size_limit_bytes"`
	BudgetBytes    int64        `json:"budget_bytes"`
	Pages          []PageResult `json:"pages"`
	PDF            []byte       `json:"-"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
}

// Size returns the serialized document size in bytes
func (r *Result) Size() int64 {
	return int64(len(r.PDF))
}

// WithinLimit reports whether the document fits the requested size limit
func (r *Result) WithinLimit() bool {
	return r.Size() <= r.SizeLimitBytes
}

// Progress is reported before and after each image.
type Progress struct {
	RunID   string  `json:"run_id"`
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	Name    string  `json:"name"`
	Stage   Stage   `json:"stage"`
	Percent float64 `json:"percent"`
}

// ProgressFunc receives progress updates; it runs on the converting goroutine.
type ProgressFunc func(Progress)
