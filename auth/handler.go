package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/provider"
	"github.com/upb/auth-gateway/repositories"
	"github.com/upb/auth-gateway/utils"
	"go.uber.org/zap"
)

// ProviderClient is the hosted auth provider surface the handlers depend on.
type ProviderClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*provider.AuthResult, error)
	SignUp(ctx context.Context, email, password, fullName string) (*provider.AuthResult, error)
	RefreshSession(ctx context.Context, refreshToken string) (*provider.Session, error)
	SignOut(ctx context.Context, accessToken string) (provider.Result, error)
	VerifyEmail(ctx context.Context, token string) (provider.Result, error)
	ResetPassword(ctx context.Context, token, newPassword string) (provider.Result, error)
	ForgotPassword(ctx context.Context, email string) (provider.Result, error)
}

// TokenValidator resolves identities from provider-issued access tokens.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*provider.Identity, error)
}

// Handler hosts the authentication endpoints. Every handler follows the same
// shape: decode and validate input, delegate to the provider, read or write
// the profile repository, and map the outcome onto the JSON contract.
type Handler struct {
	provider  ProviderClient
	validator TokenValidator
	profiles  repositories.ProfileRepository
	cookies   CookiePolicy
	logger    *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(p ProviderClient, v TokenValidator, profiles repositories.ProfileRepository, cookies CookiePolicy, logger *zap.Logger) *Handler {
	return &Handler{
		provider:  p,
		validator: v,
		profiles:  profiles,
		cookies:   cookies,
		logger:    logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type refreshRequest struct {
	Remember bool `json:"remember"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleLogin exchanges credentials for a session, issues both session
// cookies and returns the assembled profile view.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.provider.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login rejected by provider", zap.String("email", req.Email), zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Login failed")
		return
	}

	if result.User == nil || !result.Session.Complete() {
		h.logger.Error("provider returned incomplete session", zap.String("email", req.Email))
		_ = utils.WriteInternalServerError(w, "Login failed")
		return
	}

	profile, ok := h.lookupProfile(w, r, result.User.Email)
	if !ok {
		return
	}

	setCookies(w, h.cookies.SessionCookies(result.Session, req.Remember))

	view := models.NewProfileView(identityFrom(result.User), profile)
	_ = utils.WriteOK(w, "Login successful", view)
}

// HandleProfile resolves the identity from the access-token cookie and
// returns the assembled profile view. No cookies are mutated.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(AccessTokenCookieName)
	if err != nil || cookie.Value == "" {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	identity, err := h.validator.ValidateAccessToken(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Warn("access token rejected", zap.Error(err))
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	if identity.Email == "" {
		h.logger.Warn("access token carries no email", zap.String("sub", identity.ID.String()))
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	profile, ok := h.lookupProfile(w, r, identity.Email)
	if !ok {
		return
	}

	view := models.NewProfileView(identityFrom(identity), profile)
	_ = utils.WriteOK(w, "Profile fetched", view)
}

// HandleRefresh rotates the session: the refresh-token cookie buys a fresh
// credential pair and both cookies are re-issued with TTLs keyed off the
// remember flag.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	// Remember flag may be re-supplied; an absent or unreadable body keeps
	// the short-lived TTLs.
	var req refreshRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := h.provider.RefreshSession(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Warn("session refresh rejected", zap.Error(err))
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	if !session.Complete() {
		h.logger.Warn("provider returned incomplete session on refresh")
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return
	}

	setCookies(w, h.cookies.SessionCookies(session, req.Remember))
	_ = utils.WriteOK(w, "Token refreshed", nil)
}

// HandleLogout invalidates the session with the provider and clears both
// session cookies. Cookies are cleared even when the provider call fails.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var accessToken string
	if cookie, err := r.Cookie(AccessTokenCookieName); err == nil {
		accessToken = cookie.Value
	}

	result, err := h.provider.SignOut(r.Context(), accessToken)

	setCookies(w, h.cookies.ClearSessionCookies())

	if err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Logout failed")
		return
	}

	_ = utils.WriteOK(w, "Logged out", result)
}

// HandleRegister creates the provider identity, then persists the profile
// row. The provider identity is not rolled back when the insert fails; the
// orphan is logged and the request reported as failed.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.provider.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		h.logger.Warn("registration rejected by provider", zap.String("email", req.Email), zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Registration failed")
		return
	}

	if result.User == nil {
		h.logger.Error("provider returned no identity on sign up", zap.String("email", req.Email))
		_ = utils.WriteInternalServerError(w, "Registration failed")
		return
	}

	profile := &models.Profile{
		ID:        result.User.ID,
		Email:     result.User.Email,
		Role:      models.RoleUser,
		FullName:  req.FullName,
		CreatedAt: result.User.CreatedAt,
		UpdatedAt: result.User.UpdatedAt,
	}

	if err := h.profiles.Create(r.Context(), profile); err != nil {
		h.logger.Error("profile insert failed, provider identity orphaned",
			zap.String("email", req.Email),
			zap.String("provider_user_id", result.User.ID.String()),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Registration failed")
		return
	}

	_ = utils.WriteCreated(w, "Registration successful", profile)
}

// HandleVerifyEmail delegates email verification to the provider
func (h *Handler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.provider.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		h.logger.Warn("email verification failed", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Email verification failed")
		return
	}

	_ = utils.WriteOK(w, "Email verified", result)
}

// HandleResetPassword delegates a password reset to the provider
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.provider.ResetPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		h.logger.Warn("password reset failed", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Password reset failed")
		return
	}

	_ = utils.WriteOK(w, "Password reset", result)
}

// HandleForgotPassword asks the provider to send a password-reset email
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.provider.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		h.logger.Warn("password recovery failed", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Password recovery failed")
		return
	}

	_ = utils.WriteOK(w, "Recovery email sent", result)
}

// decodeAndValidate decodes the JSON body into dst and validates it, writing
// the 400 response itself. Returns false when the request was rejected.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return false
	}

	if err := utils.ValidateStruct(dst); err != nil {
		if utils.IsValidationError(err) {
			_ = utils.WriteBadRequest(w, "Validation failed", utils.GetValidationFields(err))
			return false
		}
		h.logger.Error("validation error", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return false
	}

	return true
}

// lookupProfile reads the profile row by email. A missing row degrades to nil
// (defaults at view assembly); any other repository error fails the request.
// Returns ok=false when a response has already been written.
func (h *Handler) lookupProfile(w http.ResponseWriter, r *http.Request, email string) (*models.Profile, bool) {
	profile, err := h.profiles.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, true
		}
		h.logger.Error("profile lookup failed", zap.String("email", email), zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return nil, false
	}
	return profile, true
}

// identityFrom converts the provider identity into the model used for view
// assembly.
func identityFrom(id *provider.Identity) models.Identity {
	return models.Identity{
		ID:            id.ID,
		Email:         id.Email,
		EmailVerified: id.EmailVerified,
		CreatedAt:     id.CreatedAt,
		UpdatedAt:     id.UpdatedAt,
	}
}
