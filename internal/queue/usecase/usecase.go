package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

type queueUC struct {
	cfg       *config.Config
	queueRepo queue.Repository
	redisRepo queue.RedisRepository
	canceller queue.Canceller
	logger    logger.Logger
}

func NewQueueUseCase(
	cfg *config.Config,
	queueRepo queue.Repository,
	redisRepo queue.RedisRepository,
	log logger.Logger,
) *queueUC {
	return &queueUC{
		cfg:       cfg,
		queueRepo: queueRepo,
		redisRepo: redisRepo,
		logger:    log,
	}
}

// SetCanceller wires the admission scheduler in after construction; the
// scheduler itself depends on the queue repository.
func (u *queueUC) SetCanceller(c queue.Canceller) {
	u.canceller = c
}

func (u *queueUC) EnqueueJob(ctx context.Context, input *models.JobCreateInput) (*models.Job, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, errors.Wrap(err, "queueUC.EnqueueJob.ValidateStruct")
	}
	priority := models.DefaultPriority
	if input.Priority != nil {
		priority = *input.Priority
	}
	job := &models.Job{
		JobID:      uuid.New().String(),
		SourcePath: input.SourcePath,
		ProfileID:  input.ProfileID,
		Priority:   priority,
		SizeBytes:  input.SizeBytes,
	}
	created, err := u.queueRepo.Enqueue(ctx, job)
	if err != nil {
		return nil, err
	}
	u.publishEvent(ctx, created.JobID, models.JobStatusPending)
	return created, nil
}

func (u *queueUC) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := u.queueRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	u.attachETA(job)
	return job, nil
}

func (u *queueUC) ListJobs(ctx context.Context, status models.JobStatus, pq *utils.Pagination) (*models.JobList, error) {
	list, err := u.queueRepo.ListJobs(ctx, status, pq)
	if err != nil {
		return nil, err
	}
	for _, job := range list.Jobs {
		u.attachETA(job)
	}
	return list, nil
}

func (u *queueUC) UpdateJob(ctx context.Context, jobID string, input *models.JobUpdateInput) (*models.Job, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		return nil, errors.Wrap(err, "queueUC.UpdateJob.ValidateStruct")
	}
	job, err := u.queueRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if input.ProfileID != nil {
		if job, err = u.queueRepo.ReassignProfile(ctx, jobID, *input.ProfileID); err != nil {
			return nil, err
		}
	}
	if input.Priority != nil {
		if job, err = u.queueRepo.SetPriority(ctx, jobID, *input.Priority); err != nil {
			return nil, err
		}
	}
	return job, nil
}

func (u *queueUC) DeleteJob(ctx context.Context, jobID string) error {
	if err := u.queueRepo.Delete(ctx, jobID); err != nil {
		return err
	}
	if err := u.redisRepo.ClearProgress(ctx, jobID); err != nil {
		u.logger.Warnf("DeleteJob - clear progress for %s: %v", jobID, err)
	}
	return nil
}

// CancelJob asks the live engine to stop. Cancelling a job that already
// reached a terminal state is a no-op, not an error.
func (u *queueUC) CancelJob(ctx context.Context, jobID string) error {
	job, err := u.queueRepo.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status != models.JobStatusProcessing {
		return nil
	}
	if u.canceller == nil {
		return queue.ErrNotRunning
	}
	if err := u.canceller.Cancel(jobID); err != nil {
		if errors.Is(err, queue.ErrNotRunning) {
			// The engine finished between the status read and the cancel.
			return nil
		}
		return err
	}
	return nil
}

func (u *queueUC) RetryJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := u.queueRepo.Requeue(ctx, jobID)
	if err != nil {
		return nil, err
	}
	u.publishEvent(ctx, jobID, models.JobStatusPending)
	return job, nil
}

func (u *queueUC) Reprioritize(ctx context.Context, strategy models.SortStrategy) (int64, error) {
	if !strategy.Valid() {
		return 0, queue.ErrInvalidStrategy
	}
	return u.queueRepo.Reprioritize(ctx, strategy)
}

// Admit claims a pending job for execution and announces the transition.
func (u *queueUC) Admit(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := u.queueRepo.Admit(ctx, jobID)
	if err != nil {
		return nil, err
	}
	u.publishEvent(ctx, jobID, models.JobStatusProcessing)
	return job, nil
}

func (u *queueUC) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	if err := u.queueRepo.UpdateProgress(ctx, jobID, progress); err != nil {
		return err
	}
	if err := u.redisRepo.SetProgress(ctx, jobID, progress); err != nil {
		u.logger.Warnf("UpdateProgress - redis mirror for %s: %v", jobID, err)
	}
	return nil
}

func (u *queueUC) Complete(ctx context.Context, jobID string, record *models.HistoryRecord) error {
	if err := u.queueRepo.Complete(ctx, jobID, record); err != nil {
		return err
	}
	if err := u.redisRepo.ClearProgress(ctx, jobID); err != nil {
		u.logger.Warnf("Complete - clear progress for %s: %v", jobID, err)
	}
	u.publishEvent(ctx, jobID, models.JobStatusCompleted)
	return nil
}

func (u *queueUC) Fail(ctx context.Context, jobID string, message string) error {
	if err := u.queueRepo.Fail(ctx, jobID, message); err != nil {
		return err
	}
	if err := u.redisRepo.ClearProgress(ctx, jobID); err != nil {
		u.logger.Warnf("Fail - clear progress for %s: %v", jobID, err)
	}
	u.publishEvent(ctx, jobID, models.JobStatusFailed)
	return nil
}

func (u *queueUC) Pause(ctx context.Context, jobID string) error {
	if err := u.queueRepo.Pause(ctx, jobID); err != nil {
		return err
	}
	u.publishEvent(ctx, jobID, models.JobStatusPaused)
	return nil
}

func (u *queueUC) Stats(ctx context.Context) (*models.QueueStats, error) {
	return u.queueRepo.Stats(ctx)
}

func (u *queueUC) ListHistory(ctx context.Context, pq *utils.Pagination) (*models.HistoryList, error) {
	return u.queueRepo.ListHistory(ctx, pq)
}

func (u *queueUC) attachETA(job *models.Job) {
	if job.Status != models.JobStatusProcessing || job.StartedAt == nil {
		return
	}
	remaining, ok := queue.EstimateRemaining(*job.StartedAt, job.Progress, time.Now())
	if !ok {
		return
	}
	secs := int64(remaining / time.Second)
	job.ETASeconds = &secs
}

func (u *queueUC) publishEvent(ctx context.Context, jobID string, status models.JobStatus) {
	if err := u.redisRepo.PublishJobEvent(ctx, &queue.JobEvent{JobID: jobID, Status: status}); err != nil {
		u.logger.Warnf("publish job event for %s: %v", jobID, err)
	}
}
