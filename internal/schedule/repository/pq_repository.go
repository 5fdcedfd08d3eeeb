package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/schedule"
)

type scheduleRepo struct {
	db *sqlx.DB
}

func NewScheduleRepo(db *sqlx.DB) schedule.Repository {
	return &scheduleRepo{
		db: db,
	}
}

func (s *scheduleRepo) GetSchedule(ctx context.Context) (*models.ScheduleConfig, error) {
	cfg := &models.ScheduleConfig{}
	if err := s.db.QueryRowxContext(ctx, getScheduleQuery).StructScan(cfg); err != nil {
		return nil, fmt.Errorf("failed to get schedule config: %w", err)
	}
	return cfg, nil
}

func (s *scheduleRepo) UpdateSchedule(ctx context.Context, input *models.ScheduleUpdateInput) (*models.ScheduleConfig, error) {
	cfg := &models.ScheduleConfig{}
	if err := s.db.QueryRowxContext(
		ctx,
		updateScheduleQuery,
		input.Enabled,
		input.DaysOfWeek,
		input.StartTime,
		input.EndTime,
		input.Timezone,
		input.UseOSRestHours,
		input.MaxConcurrentJobs,
	).StructScan(cfg); err != nil {
		return nil, fmt.Errorf("failed to update schedule config: %w", err)
	}
	return cfg, nil
}

func (s *scheduleRepo) SetManualOverride(ctx context.Context, active bool) (*models.ScheduleConfig, error) {
	cfg := &models.ScheduleConfig{}
	if err := s.db.QueryRowxContext(ctx, setManualOverrideQuery, active).StructScan(cfg); err != nil {
		return nil, fmt.Errorf("failed to set manual override: %w", err)
	}
	return cfg, nil
}
