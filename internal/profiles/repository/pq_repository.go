package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/profiles"
)

type profilesRepo struct {
	db *sqlx.DB
}

func NewProfilesRepo(db *sqlx.DB) profiles.Repository {
	return &profilesRepo{
		db: db,
	}
}

func (p *profilesRepo) GetProfile(ctx context.Context, profileID string) (*models.EncodingProfile, error) {
	profile := &models.EncodingProfile{}
	if err := p.db.QueryRowxContext(ctx, getProfileQuery, profileID).StructScan(profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profiles.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (p *profilesRepo) ListProfiles(ctx context.Context) ([]*models.EncodingProfile, error) {
	rows, err := p.db.QueryxContext(ctx, listProfilesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()
	result := make([]*models.EncodingProfile, 0)
	for rows.Next() {
		var profile models.EncodingProfile
		if err = rows.StructScan(&profile); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		result = append(result, &profile)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}
	return result, nil
}
