package models

import "time"

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusPaused     JobStatus = "paused"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further automatic transition applies to the status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

type SortStrategy string

const (
	SortByPriority SortStrategy = "priority"
	SortBySize     SortStrategy = "size"
	SortBySavings  SortStrategy = "savings"
	SortByPath     SortStrategy = "path"
)

func (s SortStrategy) Valid() bool {
	switch s {
	case SortByPriority, SortBySize, SortBySavings, SortByPath:
		return true
	}
	return false
}

const DefaultPriority = 50

type Job struct {
	JobID            string     `json:"job_id" db:"job_id" validate:"omitempty"`
	SourcePath       string     `json:"source_path" db:"source_path" validate:"required"`
	Status           JobStatus  `json:"status" db:"status" validate:"omitempty"`
	Progress         float64    `json:"progress" db:"progress" validate:"omitempty,gte=0,lte=100"`
	Priority         int        `json:"priority" db:"priority" validate:"omitempty"`
	ProfileID        string     `json:"profile_id" db:"profile_id" validate:"required"`
	SizeBytes        int64      `json:"size_bytes" db:"size_bytes" validate:"omitempty"`
	EstimatedSavings int64      `json:"estimated_savings_bytes" db:"estimated_savings_bytes" validate:"omitempty"`
	ErrorMessage     *string    `json:"error_message,omitempty" db:"error_message" validate:"omitempty"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at" validate:"omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty" db:"started_at" validate:"omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" db:"completed_at" validate:"omitempty"`

	// ETASeconds is derived from started_at and progress, never persisted.
	ETASeconds *int64 `json:"eta_seconds,omitempty" db:"-"`
}

type JobCreateInput struct {
	SourcePath string `json:"source_path" validate:"required,lte=1024"`
	ProfileID  string `json:"profile_id" validate:"required"`
	Priority   *int   `json:"priority" validate:"omitempty,gte=0,lte=100"`
	SizeBytes  int64  `json:"size_bytes" validate:"omitempty,gte=0"`
}

type JobUpdateInput struct {
	ProfileID *string `json:"profile_id" validate:"omitempty"`
	Priority  *int    `json:"priority" validate:"omitempty,gte=0,lte=100"`
}

type JobList struct {
	Jobs       []*Job `json:"jobs"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	HasMore    bool   `json:"has_more"`
}

type QueueStats struct {
	Pending      int   `json:"pending" db:"pending"`
	Processing   int   `json:"processing" db:"processing"`
	Paused       int   `json:"paused" db:"paused"`
	Completed    int   `json:"completed" db:"completed"`
	Failed       int   `json:"failed" db:"failed"`
	TotalSavings int64 `json:"total_savings_bytes" db:"total_savings_bytes"`
	TotalEncoded int64 `json:"total_encode_seconds" db:"total_encode_seconds"`
}
