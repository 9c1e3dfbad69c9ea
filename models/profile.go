package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Profile represents the denormalized user profile row. It is created once at
// registration (with the provider's user id and timestamps) and read on login
// and profile fetch; this service never updates or deletes it.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	FullName  string    `json:"fullname" db:"fullname"`
	Avatar    *string   `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// ProfileView is the response shape assembled per request: identity fields
// come from the auth provider, the rest from the profile row. It is never
// persisted.
type ProfileView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	FullName  string    `json:"fullname"`
	Avatar    *string   `json:"avatar"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity holds the provider-side identity fields used in view assembly.
type Identity struct {
	ID            uuid.UUID
	Email         string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProfileView assembles the response view from the provider identity and
// the repository row. A nil profile degrades to defaults (role USER, empty
// name, no avatar) with the identity's id standing in for the missing row id.
func NewProfileView(identity Identity, profile *Profile) ProfileView {
	view := ProfileView{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      RoleUser,
		Verified:  identity.EmailVerified,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}
	if profile != nil {
		view.ID = profile.ID
		view.Role = profile.Role
		view.FullName = profile.FullName
		view.Avatar = profile.Avatar
		// Identities resolved from token claims carry no timestamps; the row
		// holds the provider's values copied at registration.
		if view.CreatedAt.IsZero() {
			view.CreatedAt = profile.CreatedAt
			view.UpdatedAt = profile.UpdatedAt
		}
	}
	return view
}
