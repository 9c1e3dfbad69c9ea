package provider

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the credential pair issued by the hosted auth provider. Both
// tokens are opaque to this gateway; they are only moved between the provider
// and the session cookies.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Complete reports whether the provider issued both tokens. A session missing
// either token after a nominally successful call is a provider-side failure.
func (s *Session) Complete() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// Identity represents the provider-held identity fields of a user.
// CreatedAt/UpdatedAt are zero when the identity was resolved from access
// token claims rather than a provider response body.
type Identity struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AuthResult is the provider response to sign-in and sign-up calls.
type AuthResult struct {
	User    *Identity `json:"user"`
	Session *Session  `json:"session"`
}

// Result carries a passthrough provider response body (logout, email
// verification, password flows).
type Result map[string]interface{}

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"msg"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}
