package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

type stubQueueRepo struct {
	queue.Repository

	mu       sync.Mutex
	enqueued []*models.Job
	getJob   *models.Job
	getErr   error
	failures []string
}

func (r *stubQueueRepo) Enqueue(ctx context.Context, job *models.Job) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enqueued = append(r.enqueued, job)
	copied := *job
	copied.Status = models.JobStatusPending
	return &copied, nil
}

func (r *stubQueueRepo) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	copied := *r.getJob
	return &copied, nil
}

func (r *stubQueueRepo) Fail(ctx context.Context, jobID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, message)
	return nil
}

func (r *stubQueueRepo) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	return nil
}

type stubRedisRepo struct {
	queue.RedisRepository

	mu       sync.Mutex
	events   []*queue.JobEvent
	progress map[string]float64
	cleared  []string
	setErr   error
}

func (r *stubRedisRepo) SetProgress(ctx context.Context, jobID string, progress float64) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress == nil {
		r.progress = make(map[string]float64)
	}
	r.progress[jobID] = progress
	return nil
}

func (r *stubRedisRepo) ClearProgress(ctx context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, jobID)
	return nil
}

func (r *stubRedisRepo) PublishJobEvent(ctx context.Context, event *queue.JobEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

type stubCanceller struct {
	err    error
	called []string
}

func (c *stubCanceller) Cancel(jobID string) error {
	c.called = append(c.called, jobID)
	return c.err
}

func ucTestLogger() logger.Logger {
	l := logger.NewApiLogger(&config.Config{
		Logger: config.Logger{Development: true, Encoding: "console", Level: "error"},
	})
	l.InitLogger()
	return l
}

func newTestUC(repo *stubQueueRepo, redis *stubRedisRepo) *queueUC {
	return NewQueueUseCase(&config.Config{}, repo, redis, ucTestLogger())
}

func TestEnqueueJob(t *testing.T) {
	t.Run("defaults priority and assigns id", func(t *testing.T) {
		repo := &stubQueueRepo{}
		redis := &stubRedisRepo{}
		uc := newTestUC(repo, redis)

		created, err := uc.EnqueueJob(context.Background(), &models.JobCreateInput{
			SourcePath: "/media/show.mkv",
			ProfileID:  "profile-1",
			SizeBytes:  1000,
		})
		require.NoError(t, err)

		assert.Equal(t, models.DefaultPriority, created.Priority)
		_, err = uuid.Parse(created.JobID)
		assert.NoError(t, err)

		require.Len(t, redis.events, 1)
		assert.Equal(t, models.JobStatusPending, redis.events[0].Status)
	})

	t.Run("explicit priority wins", func(t *testing.T) {
		repo := &stubQueueRepo{}
		uc := newTestUC(repo, &stubRedisRepo{})

		priority := 90
		created, err := uc.EnqueueJob(context.Background(), &models.JobCreateInput{
			SourcePath: "/media/show.mkv",
			ProfileID:  "profile-1",
			Priority:   &priority,
		})
		require.NoError(t, err)
		assert.Equal(t, 90, created.Priority)
	})

	t.Run("rejects missing source path", func(t *testing.T) {
		uc := newTestUC(&stubQueueRepo{}, &stubRedisRepo{})

		_, err := uc.EnqueueJob(context.Background(), &models.JobCreateInput{ProfileID: "profile-1"})
		assert.Error(t, err)
	})
}

func TestGetJob_AttachesETA(t *testing.T) {
	started := time.Now().Add(-100 * time.Second)
	repo := &stubQueueRepo{getJob: &models.Job{
		JobID:     "job-1",
		Status:    models.JobStatusProcessing,
		Progress:  50,
		StartedAt: &started,
	}}
	uc := newTestUC(repo, &stubRedisRepo{})

	job, err := uc.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, job.ETASeconds)
	assert.InDelta(t, 100, *job.ETASeconds, 2)
}

func TestGetJob_NoETABeforeThreshold(t *testing.T) {
	started := time.Now().Add(-10 * time.Second)
	repo := &stubQueueRepo{getJob: &models.Job{
		JobID:     "job-1",
		Status:    models.JobStatusProcessing,
		Progress:  0.2,
		StartedAt: &started,
	}}
	uc := newTestUC(repo, &stubRedisRepo{})

	job, err := uc.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Nil(t, job.ETASeconds)
}

func TestCancelJob(t *testing.T) {
	t.Run("terminal job is a no-op", func(t *testing.T) {
		repo := &stubQueueRepo{getJob: &models.Job{JobID: "job-1", Status: models.JobStatusCompleted}}
		canceller := &stubCanceller{}
		uc := newTestUC(repo, &stubRedisRepo{})
		uc.SetCanceller(canceller)

		require.NoError(t, uc.CancelJob(context.Background(), "job-1"))
		assert.Empty(t, canceller.called)
	})

	t.Run("processing job reaches the engine", func(t *testing.T) {
		repo := &stubQueueRepo{getJob: &models.Job{JobID: "job-1", Status: models.JobStatusProcessing}}
		canceller := &stubCanceller{}
		uc := newTestUC(repo, &stubRedisRepo{})
		uc.SetCanceller(canceller)

		require.NoError(t, uc.CancelJob(context.Background(), "job-1"))
		assert.Equal(t, []string{"job-1"}, canceller.called)
	})

	t.Run("engine already finished is a no-op", func(t *testing.T) {
		repo := &stubQueueRepo{getJob: &models.Job{JobID: "job-1", Status: models.JobStatusProcessing}}
		canceller := &stubCanceller{err: queue.ErrNotRunning}
		uc := newTestUC(repo, &stubRedisRepo{})
		uc.SetCanceller(canceller)

		require.NoError(t, uc.CancelJob(context.Background(), "job-1"))
	})

	t.Run("unknown job propagates", func(t *testing.T) {
		repo := &stubQueueRepo{getErr: queue.ErrJobNotFound}
		uc := newTestUC(repo, &stubRedisRepo{})

		assert.ErrorIs(t, uc.CancelJob(context.Background(), "job-1"), queue.ErrJobNotFound)
	})
}

func TestUpdateProgress_RedisFailureIsNonFatal(t *testing.T) {
	redis := &stubRedisRepo{setErr: errors.New("redis down")}
	uc := newTestUC(&stubQueueRepo{}, redis)

	assert.NoError(t, uc.UpdateProgress(context.Background(), "job-1", 42))
}

func TestReprioritize_RejectsUnknownStrategy(t *testing.T) {
	uc := newTestUC(&stubQueueRepo{}, &stubRedisRepo{})

	_, err := uc.Reprioritize(context.Background(), models.SortStrategy("bogus"))
	assert.ErrorIs(t, err, queue.ErrInvalidStrategy)
}
