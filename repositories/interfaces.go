package repositories

import (
	"context"
	"errors"

	"github.com/upb/auth-gateway/models"
)

// ErrNotFound is returned (wrapped) when a profile row does not exist.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository handles the denormalized user profile rows
type ProfileRepository interface {
	// Create inserts a new profile row. Duplicate emails surface as the
	// underlying uniqueness violation.
	Create(ctx context.Context, profile *models.Profile) error

	// GetByEmail retrieves a profile by email. Returns an error wrapping
	// ErrNotFound when no row exists.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}
