package resources

import (
	"context"

	"github.com/shrinkarr/shrinkarr/internal/models"
)

// Repository persists the singleton resource thresholds.
type Repository interface {
	GetThresholds(ctx context.Context) (*models.ResourceThresholds, error)
	UpdateThresholds(ctx context.Context, thresholds *models.ResourceThresholds) (*models.ResourceThresholds, error)
}
