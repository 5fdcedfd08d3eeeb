package queue

import (
	"context"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

// Canceller requests cancellation of a live execution engine.
type Canceller interface {
	Cancel(jobID string) error
}

type UseCase interface {
	EnqueueJob(ctx context.Context, input *models.JobCreateInput) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, status models.JobStatus, pq *utils.Pagination) (*models.JobList, error)
	UpdateJob(ctx context.Context, jobID string, input *models.JobUpdateInput) (*models.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
	CancelJob(ctx context.Context, jobID string) error
	RetryJob(ctx context.Context, jobID string) (*models.Job, error)
	Reprioritize(ctx context.Context, strategy models.SortStrategy) (int64, error)

	Admit(ctx context.Context, jobID string) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID string, progress float64) error
	Complete(ctx context.Context, jobID string, record *models.HistoryRecord) error
	Fail(ctx context.Context, jobID string, message string) error
	Pause(ctx context.Context, jobID string) error

	Stats(ctx context.Context) (*models.QueueStats, error)
	ListHistory(ctx context.Context, pq *utils.Pagination) (*models.HistoryList, error)
}
