package queue

import (
	"context"

	"github.com/shrinkarr/shrinkarr/internal/models"
)

// RedisRepository caches fast-changing job state so the dashboard can poll it
// without hitting Postgres on every progress tick.
type RedisRepository interface {
	SetProgress(ctx context.Context, jobID string, progress float64) error
	GetProgress(ctx context.Context, jobID string) (float64, error)
	ClearProgress(ctx context.Context, jobID string) error

	CacheSnapshot(ctx context.Context, snapshot *models.ResourceSnapshot) error
	GetSnapshot(ctx context.Context) (*models.ResourceSnapshot, error)

	PublishJobEvent(ctx context.Context, event *JobEvent) error
}

type JobEvent struct {
	JobID  string           `json:"job_id"`
	Status models.JobStatus `json:"status"`
}
