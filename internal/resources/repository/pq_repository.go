package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/resources"
)

type thresholdsRepo struct {
	db *sqlx.DB
}

func NewThresholdsRepo(db *sqlx.DB) resources.Repository {
	return &thresholdsRepo{
		db: db,
	}
}

func (r *thresholdsRepo) GetThresholds(ctx context.Context) (*models.ResourceThresholds, error) {
	thresholds := &models.ResourceThresholds{}
	if err := r.db.QueryRowxContext(ctx, getThresholdsQuery).StructScan(thresholds); err != nil {
		return nil, fmt.Errorf("failed to get resource thresholds: %w", err)
	}
	return thresholds, nil
}

func (r *thresholdsRepo) UpdateThresholds(ctx context.Context, thresholds *models.ResourceThresholds) (*models.ResourceThresholds, error) {
	updated := &models.ResourceThresholds{}
	if err := r.db.QueryRowxContext(
		ctx,
		updateThresholdsQuery,
		thresholds.CPUPct,
		thresholds.MemoryPct,
		thresholds.GPUPct,
		thresholds.NiceLevel,
		thresholds.ThrottlingEnabled,
	).StructScan(updated); err != nil {
		return nil, fmt.Errorf("failed to update resource thresholds: %w", err)
	}
	return updated, nil
}
