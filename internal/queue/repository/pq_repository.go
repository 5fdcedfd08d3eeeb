package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/utils"
)

type queueRepo struct {
	db *sqlx.DB
}

func NewQueueRepo(db *sqlx.DB) queue.Repository {
	return &queueRepo{
		db: db,
	}
}

func (q *queueRepo) Enqueue(ctx context.Context, job *models.Job) (*models.Job, error) {
	created := &models.Job{}
	if err := q.db.QueryRowxContext(
		ctx,
		enqueueJobQuery,
		job.JobID,
		job.SourcePath,
		job.ProfileID,
		job.Priority,
		job.SizeBytes,
		job.EstimatedSavings,
	).StructScan(created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, queue.ErrDuplicateJob
		}
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}
	return created, nil
}

func (q *queueRepo) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	job := &models.Job{}
	if err := q.db.QueryRowxContext(ctx, getJobQuery, jobID).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, queue.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (q *queueRepo) ListJobs(ctx context.Context, status models.JobStatus, pq *utils.Pagination) (*models.JobList, error) {
	var totalCount int
	if err := q.db.GetContext(ctx, &totalCount, getJobsCountQuery, string(status)); err != nil {
		return nil, fmt.Errorf("failed to get jobs count: %w", err)
	}
	if totalCount == 0 {
		return &models.JobList{
			Jobs:       make([]*models.Job, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
		}, nil
	}
	rows, err := q.db.QueryxContext(ctx, listJobsQuery, string(status), pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	jobs := make([]*models.Job, 0, pq.GetSize())
	for rows.Next() {
		var job models.Job
		if err = rows.StructScan(&job); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return &models.JobList{
		Jobs:       jobs,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (q *queueRepo) NextEligible(ctx context.Context, strategy models.SortStrategy) (*models.Job, error) {
	clause, ok := orderClauses[string(strategy)]
	if !ok {
		return nil, queue.ErrInvalidStrategy
	}
	job := &models.Job{}
	if err := q.db.QueryRowxContext(ctx, fmt.Sprintf(nextEligibleQuery, clause)).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select next eligible job: %w", err)
	}
	return job, nil
}

// Admit transitions pending to processing atomically. A zero-row update means
// the job was claimed or mutated concurrently.
func (q *queueRepo) Admit(ctx context.Context, jobID string) (*models.Job, error) {
	job := &models.Job{}
	if err := q.db.QueryRowxContext(ctx, admitJobQuery, jobID).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, queue.ErrNotPending
		}
		return nil, fmt.Errorf("failed to admit job: %w", err)
	}
	return job, nil
}

func (q *queueRepo) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	// GREATEST keeps progress monotonic, and the status predicate makes the
	// call a no-op once the job has left processing.
	if _, err := q.db.ExecContext(ctx, updateProgressQuery, jobID, progress); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

func (q *queueRepo) Complete(ctx context.Context, jobID string, record *models.HistoryRecord) error {
	tx, err := q.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin complete tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, completeJobQuery, jobID)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		// Already terminal. Repeat calls are ignored so history stays unique.
		return nil
	}
	if _, err = tx.ExecContext(
		ctx,
		insertHistoryQuery,
		jobID,
		record.SourcePath,
		record.OriginalSize,
		record.NewSize,
		record.SavingsBytes,
		record.EncodeSeconds,
		record.Codec,
		record.Container,
	); err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit complete tx: %w", err)
	}
	return nil
}

func (q *queueRepo) Fail(ctx context.Context, jobID string, message string) error {
	if _, err := q.db.ExecContext(ctx, failJobQuery, jobID, message); err != nil {
		return fmt.Errorf("failed to fail job: %w", err)
	}
	return nil
}

func (q *queueRepo) Pause(ctx context.Context, jobID string) error {
	if _, err := q.db.ExecContext(ctx, pauseJobQuery, jobID); err != nil {
		return fmt.Errorf("failed to pause job: %w", err)
	}
	return nil
}

func (q *queueRepo) Requeue(ctx context.Context, jobID string) (*models.Job, error) {
	job := &models.Job{}
	if err := q.db.QueryRowxContext(ctx, requeueJobQuery, jobID).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, q.classifyMiss(ctx, jobID)
		}
		return nil, fmt.Errorf("failed to requeue job: %w", err)
	}
	return job, nil
}

func (q *queueRepo) ReassignProfile(ctx context.Context, jobID string, profileID string) (*models.Job, error) {
	job := &models.Job{}
	if err := q.db.QueryRowxContext(ctx, reassignProfileQuery, jobID, profileID).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, q.classifyMiss(ctx, jobID)
		}
		return nil, fmt.Errorf("failed to reassign profile: %w", err)
	}
	return job, nil
}

func (q *queueRepo) SetPriority(ctx context.Context, jobID string, priority int) (*models.Job, error) {
	job := &models.Job{}
	if err := q.db.QueryRowxContext(ctx, setPriorityQuery, jobID, priority).StructScan(job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, q.classifyMiss(ctx, jobID)
		}
		return nil, fmt.Errorf("failed to set priority: %w", err)
	}
	return job, nil
}

func (q *queueRepo) Delete(ctx context.Context, jobID string) error {
	res, err := q.db.ExecContext(ctx, deleteJobQuery, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	count, _ := res.RowsAffected()
	if count == 0 {
		return q.classifyMiss(ctx, jobID)
	}
	return nil
}

func (q *queueRepo) Reprioritize(ctx context.Context, strategy models.SortStrategy) (int64, error) {
	clause, ok := orderClauses[string(strategy)]
	if !ok {
		return 0, queue.ErrInvalidStrategy
	}
	res, err := q.db.ExecContext(ctx, fmt.Sprintf(reprioritizeQuery, clause))
	if err != nil {
		return 0, fmt.Errorf("failed to reprioritize jobs: %w", err)
	}
	count, _ := res.RowsAffected()
	return count, nil
}

func (q *queueRepo) Stats(ctx context.Context) (*models.QueueStats, error) {
	stats := &models.QueueStats{}
	if err := q.db.QueryRowxContext(ctx, getStatsQuery).StructScan(stats); err != nil {
		return nil, fmt.Errorf("failed to get queue stats: %w", err)
	}
	if err := q.db.QueryRowxContext(ctx, getHistoryTotalsQuery).StructScan(stats); err != nil {
		return nil, fmt.Errorf("failed to get history totals: %w", err)
	}
	return stats, nil
}

func (q *queueRepo) ListHistory(ctx context.Context, pq *utils.Pagination) (*models.HistoryList, error) {
	var totalCount int
	if err := q.db.GetContext(ctx, &totalCount, getHistoryCountQuery); err != nil {
		return nil, fmt.Errorf("failed to get history count: %w", err)
	}
	totals := &models.QueueStats{}
	if err := q.db.QueryRowxContext(ctx, getHistoryTotalsQuery).StructScan(totals); err != nil {
		return nil, fmt.Errorf("failed to get history totals: %w", err)
	}
	rows, err := q.db.QueryxContext(ctx, listHistoryQuery, pq.GetOffset(), pq.GetLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()
	records := make([]*models.HistoryRecord, 0, pq.GetSize())
	for rows.Next() {
		var rec models.HistoryRecord
		if err = rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan history records: %w", err)
	}
	return &models.HistoryList{
		Records:      records,
		TotalCount:   totalCount,
		TotalSavings: totals.TotalSavings,
		Page:         pq.GetPage(),
		PageSize:     pq.GetSize(),
		HasMore:      utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

// classifyMiss distinguishes a missing job from one locked by processing after
// a conditional update matched no rows.
func (q *queueRepo) classifyMiss(ctx context.Context, jobID string) error {
	job, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == models.JobStatusProcessing {
		return queue.ErrJobLocked
	}
	return queue.ErrNotPending
}
