package profiles

import (
	"context"
	"errors"

	"github.com/shrinkarr/shrinkarr/internal/models"
)

var ErrProfileNotFound = errors.New("encoding profile not found")

// Repository reads encoding profiles. Profiles are owned by configuration and
// are never written by the scheduler or the engine.
type Repository interface {
	GetProfile(ctx context.Context, profileID string) (*models.EncodingProfile, error)
	ListProfiles(ctx context.Context) ([]*models.EncodingProfile, error)
}
