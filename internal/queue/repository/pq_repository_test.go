package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
)

var jobColumns = []string{
	"job_id", "source_path", "status", "progress", "priority", "profile_id",
	"size_bytes", "estimated_savings_bytes", "error_message", "created_at",
	"started_at", "completed_at",
}

func newMockRepo(t *testing.T) (queue.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQueueRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func jobRows(jobID string, status models.JobStatus) *sqlmock.Rows {
	return sqlmock.NewRows(jobColumns).AddRow(
		jobID, "/media/show.mkv", string(status), 0.0, 50, "profile-1",
		int64(1_000_000), int64(0), nil, time.Now(), nil, nil,
	)
}

func TestEnqueue(t *testing.T) {
	t.Run("inserts pending job", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		job := &models.Job{
			JobID:      "job-1",
			SourcePath: "/media/show.mkv",
			ProfileID:  "profile-1",
			Priority:   50,
			SizeBytes:  1_000_000,
		}
		mock.ExpectQuery(enqueueJobQuery).
			WithArgs(job.JobID, job.SourcePath, job.ProfileID, job.Priority, job.SizeBytes, job.EstimatedSavings).
			WillReturnRows(jobRows("job-1", models.JobStatusPending))

		created, err := repo.Enqueue(context.Background(), job)
		require.NoError(t, err)
		assert.Equal(t, "job-1", created.JobID)
		assert.Equal(t, models.JobStatusPending, created.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict on duplicate source path", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		job := &models.Job{JobID: "job-1", SourcePath: "/media/show.mkv", ProfileID: "profile-1", Priority: 50}
		mock.ExpectQuery(enqueueJobQuery).
			WithArgs(job.JobID, job.SourcePath, job.ProfileID, job.Priority, job.SizeBytes, job.EstimatedSavings).
			WillReturnRows(sqlmock.NewRows(jobColumns))

		_, err := repo.Enqueue(context.Background(), job)
		assert.ErrorIs(t, err, queue.ErrDuplicateJob)
	})
}

func TestAdmit(t *testing.T) {
	t.Run("claims pending job", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(admitJobQuery).
			WithArgs("job-1").
			WillReturnRows(jobRows("job-1", models.JobStatusProcessing))

		admitted, err := repo.Admit(context.Background(), "job-1")
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusProcessing, admitted.Status)
	})

	t.Run("lost race returns not pending", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(admitJobQuery).
			WithArgs("job-1").
			WillReturnRows(sqlmock.NewRows(jobColumns))

		_, err := repo.Admit(context.Background(), "job-1")
		assert.ErrorIs(t, err, queue.ErrNotPending)
	})
}

func TestNextEligible(t *testing.T) {
	t.Run("empty queue yields no job and no error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(fmt.Sprintf(nextEligibleQuery, orderClauses["priority"])).
			WillReturnRows(sqlmock.NewRows(jobColumns))

		job, err := repo.NextEligible(context.Background(), models.SortByPriority)
		require.NoError(t, err)
		assert.Nil(t, job)
	})

	t.Run("unknown strategy is rejected", func(t *testing.T) {
		repo, _ := newMockRepo(t)
		_, err := repo.NextEligible(context.Background(), models.SortStrategy("alphabetical"))
		assert.ErrorIs(t, err, queue.ErrInvalidStrategy)
	})
}

func TestUpdateProgress(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(updateProgressQuery).
		WithArgs("job-1", 42.5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateProgress(context.Background(), "job-1", 42.5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplete(t *testing.T) {
	record := &models.HistoryRecord{
		JobID:         "job-1",
		SourcePath:    "/media/show.mkv",
		OriginalSize:  1_000_000,
		NewSize:       600_000,
		SavingsBytes:  400_000,
		EncodeSeconds: 93.5,
		Codec:         "libsvtav1",
		Container:     "mkv",
	}

	t.Run("writes exactly one history record", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(completeJobQuery).
			WithArgs("job-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(insertHistoryQuery).
			WithArgs("job-1", record.SourcePath, record.OriginalSize, record.NewSize,
				record.SavingsBytes, record.EncodeSeconds, record.Codec, record.Container).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Complete(context.Background(), "job-1", record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat completion is a no-op without history", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(completeJobQuery).
			WithArgs("job-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		require.NoError(t, repo.Complete(context.Background(), "job-1", record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRequeue_ProcessingJobIsLocked(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(requeueJobQuery).
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows(jobColumns))
	mock.ExpectQuery(getJobQuery).
		WithArgs("job-1").
		WillReturnRows(jobRows("job-1", models.JobStatusProcessing))

	_, err := repo.Requeue(context.Background(), "job-1")
	assert.ErrorIs(t, err, queue.ErrJobLocked)
}

func TestReassignProfile_PendingOnly(t *testing.T) {
	t.Run("pending job reassigned", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(reassignProfileQuery).
			WithArgs("job-1", "profile-2").
			WillReturnRows(jobRows("job-1", models.JobStatusPending))

		job, err := repo.ReassignProfile(context.Background(), "job-1", "profile-2")
		require.NoError(t, err)
		assert.Equal(t, models.JobStatusPending, job.Status)
	})

	t.Run("processing job is locked", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(reassignProfileQuery).
			WithArgs("job-1", "profile-2").
			WillReturnRows(sqlmock.NewRows(jobColumns))
		mock.ExpectQuery(getJobQuery).
			WithArgs("job-1").
			WillReturnRows(jobRows("job-1", models.JobStatusProcessing))

		_, err := repo.ReassignProfile(context.Background(), "job-1", "profile-2")
		assert.ErrorIs(t, err, queue.ErrJobLocked)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes non-processing job", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(deleteJobQuery).
			WithArgs("job-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), "job-1"))
	})

	t.Run("unknown job", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(deleteJobQuery).
			WithArgs("job-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(getJobQuery).
			WithArgs("job-1").
			WillReturnRows(sqlmock.NewRows(jobColumns))

		assert.ErrorIs(t, repo.Delete(context.Background(), "job-1"), queue.ErrJobNotFound)
	})
}

func TestReprioritize(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(fmt.Sprintf(reprioritizeQuery, orderClauses["size"])).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.Reprioritize(context.Background(), models.SortBySize)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestStats(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(getStatsQuery).WillReturnRows(
		sqlmock.NewRows([]string{"pending", "processing", "paused", "completed", "failed"}).
			AddRow(3, 1, 0, 7, 2),
	)
	mock.ExpectQuery(getHistoryTotalsQuery).WillReturnRows(
		sqlmock.NewRows([]string{"total_savings_bytes", "total_encode_seconds"}).
			AddRow(int64(123_456_789), int64(5400)),
	)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 7, stats.Completed)
	assert.Equal(t, int64(123_456_789), stats.TotalSavings)
	assert.Equal(t, int64(5400), stats.TotalEncoded)
}
