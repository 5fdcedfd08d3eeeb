package models

import "time"

// HistoryRecord is append-only, written exactly once per completed job.
type HistoryRecord struct {
	RecordID      int64     `json:"record_id" db:"record_id"`
	JobID         string    `json:"job_id" db:"job_id"`
	SourcePath    string    `json:"source_path" db:"source_path"`
	OriginalSize  int64     `json:"original_size_bytes" db:"original_size_bytes"`
	NewSize       int64     `json:"new_size_bytes" db:"new_size_bytes"`
	SavingsBytes  int64     `json:"savings_bytes" db:"savings_bytes"`
	EncodeSeconds float64   `json:"encode_seconds" db:"encode_seconds"`
	Codec         string    `json:"codec" db:"codec"`
	Container     string    `json:"container" db:"container"`
	CompletedAt   time.Time `json:"completed_at" db:"completed_at"`
}

type HistoryList struct {
	Records      []*HistoryRecord `json:"records"`
	TotalCount   int              `json:"total_count"`
	TotalSavings int64            `json:"total_savings_bytes"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	HasMore      bool             `json:"has_more"`
}
