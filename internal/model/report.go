package model

import "time"

// Report is an immutable abuse report against a content item. Created
// once, never mutated, consumed by nothing inside the scoring core.
type Report struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"content_kind"`
	ContentID int64     `json:"content_id"`
	Substance string    `json:"substance"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReportRequest is the payload for filing a report.
type CreateReportRequest struct {
	ContentKind string `json:"content_kind"`
	ContentID   int64  `json:"content_id"`
	Substance   string `json:"substance"`
}
