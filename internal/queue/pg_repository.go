package queue

import (
	"context"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

// Repository is the durable job registry. All state transitions are per-job
// compare-and-swap updates so concurrent callers never block on unrelated jobs.
type Repository interface {
	Enqueue(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, status models.JobStatus, pq *utils.Pagination) (*models.JobList, error)
	NextEligible(ctx context.Context, strategy models.SortStrategy) (*models.Job, error)

	Admit(ctx context.Context, jobID string) (*models.Job, error)
	UpdateProgress(ctx context.Context, jobID string, progress float64) error
	Complete(ctx context.Context, jobID string, record *models.HistoryRecord) error
	Fail(ctx context.Context, jobID string, message string) error
	Pause(ctx context.Context, jobID string) error
	Requeue(ctx context.Context, jobID string) (*models.Job, error)

	ReassignProfile(ctx context.Context, jobID string, profileID string) (*models.Job, error)
	SetPriority(ctx context.Context, jobID string, priority int) (*models.Job, error)
	Delete(ctx context.Context, jobID string) error
	Reprioritize(ctx context.Context, strategy models.SortStrategy) (int64, error)

	Stats(ctx context.Context) (*models.QueueStats, error)
	ListHistory(ctx context.Context, pq *utils.Pagination) (*models.HistoryList, error)
}
