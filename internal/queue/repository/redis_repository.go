package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
)

const (
	progressKeyPrefix = "job:progress:"
	snapshotKey       = "resources:latest"
	jobEventsChannel  = "job_events"

	progressTTL = 24 * time.Hour
	snapshotTTL = time.Minute
)

type queueRedisRepo struct {
	redisClient *redis.Client
}

func NewQueueRedisRepo(redisClient *redis.Client) queue.RedisRepository {
	return &queueRedisRepo{
		redisClient: redisClient,
	}
}

func (r *queueRedisRepo) SetProgress(ctx context.Context, jobID string, progress float64) error {
	key := progressKeyPrefix + jobID
	pipe := r.redisClient.Pipeline()
	pipe.HSet(ctx, key, "progress", progress)
	pipe.Expire(ctx, key, progressTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	return nil
}

func (r *queueRedisRepo) GetProgress(ctx context.Context, jobID string) (float64, error) {
	progress, err := r.redisClient.HGet(ctx, progressKeyPrefix+jobID, "progress").Float64()
	if err != nil {
		return 0, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

func (r *queueRedisRepo) ClearProgress(ctx context.Context, jobID string) error {
	if err := r.redisClient.Del(ctx, progressKeyPrefix+jobID).Err(); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

func (r *queueRedisRepo) CacheSnapshot(ctx context.Context, snapshot *models.ResourceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.redisClient.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

func (r *queueRedisRepo) GetSnapshot(ctx context.Context) (*models.ResourceSnapshot, error) {
	data, err := r.redisClient.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get cached snapshot: %w", err)
	}
	snapshot := &models.ResourceSnapshot{}
	if err = json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *queueRedisRepo) PublishJobEvent(ctx context.Context, event *queue.JobEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}
	if err := r.redisClient.Publish(ctx, jobEventsChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish job event: %w", err)
	}
	return nil
}
