package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/repositories"
	"go.uber.org/zap"
)

// ProfileRepository implements the repositories.ProfileRepository interface
type ProfileRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB, logger *zap.Logger) repositories.ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new profile row
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, role, fullname, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.Role,
		profile.FullName,
		profile.Avatar,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.logger.Debug("profile created", zap.String("id", profile.ID.String()), zap.String("email", profile.Email))
	return nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT id, email, role, fullname, avatar, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`

	profile := &models.Profile{}

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&profile.ID,
		&profile.Email,
		&profile.Role,
		&profile.FullName,
		&profile.Avatar,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
