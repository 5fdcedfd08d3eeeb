package schedule

import (
	"context"

	"github.com/shrinkarr/shrinkarr/internal/models"
)

// Repository persists the singleton schedule configuration.
type Repository interface {
	GetSchedule(ctx context.Context) (*models.ScheduleConfig, error)
	UpdateSchedule(ctx context.Context, input *models.ScheduleUpdateInput) (*models.ScheduleConfig, error)
	SetManualOverride(ctx context.Context, active bool) (*models.ScheduleConfig, error)
}
