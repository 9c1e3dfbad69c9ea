package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/provider"
	"github.com/upb/auth-gateway/repositories"
	"go.uber.org/zap"
)

// MockProviderClient mocks the hosted auth provider
type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) SignInWithPassword(ctx context.Context, email, password string) (*provider.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.AuthResult), args.Error(1)
}

func (m *MockProviderClient) SignUp(ctx context.Context, email, password, fullName string) (*provider.AuthResult, error) {
	args := m.Called(ctx, email, password, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.AuthResult), args.Error(1)
}

func (m *MockProviderClient) RefreshSession(ctx context.Context, refreshToken string) (*provider.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Session), args.Error(1)
}

func (m *MockProviderClient) SignOut(ctx context.Context, accessToken string) (provider.Result, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(provider.Result), args.Error(1)
}

func (m *MockProviderClient) VerifyEmail(ctx context.Context, token string) (provider.Result, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(provider.Result), args.Error(1)
}

func (m *MockProviderClient) ResetPassword(ctx context.Context, token, newPassword string) (provider.Result, error) {
	args := m.Called(ctx, token, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(provider.Result), args.Error(1)
}

func (m *MockProviderClient) ForgotPassword(ctx context.Context, email string) (provider.Result, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(provider.Result), args.Error(1)
}

// MockTokenValidator mocks access-token validation
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateAccessToken(ctx context.Context, token string) (*provider.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Identity), args.Error(1)
}

// MockProfileRepository mocks the profile store
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type handlerMocks struct {
	provider  *MockProviderClient
	validator *MockTokenValidator
	profiles  *MockProfileRepository
}

func newTestHandler(t *testing.T) (*Handler, *handlerMocks) {
	t.Helper()
	m := &handlerMocks{
		provider:  &MockProviderClient{},
		validator: &MockTokenValidator{},
		profiles:  &MockProfileRepository{},
	}
	h := NewHandler(m.provider, m.validator, m.profiles, CookiePolicy{}, zap.NewNop())
	return h, m
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	byName := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		byName[c.Name] = c
	}
	return byName
}

func TestHandleLogin(t *testing.T) {
	userID := uuid.New()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	authResult := &provider.AuthResult{
		User: &provider.Identity{
			ID:            userID,
			Email:         "a@b.com",
			EmailVerified: true,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		Session: &provider.Session{AccessToken: "AT1", RefreshToken: "RT1"},
	}

	t.Run("remembered login issues long-lived cookies and merged view", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignInWithPassword", mock.Anything, "a@b.com", "x12345").Return(authResult, nil)
		m.profiles.On("GetByEmail", mock.Anything, "a@b.com").Return(&models.Profile{
			ID:       userID,
			Email:    "a@b.com",
			Role:     models.RoleAdmin,
			FullName: "A B",
		}, nil)

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"x12345","remember":true}`))

		require.Equal(t, http.StatusOK, rec.Code)

		cookies := cookiesByName(rec)
		require.Contains(t, cookies, AccessTokenCookieName)
		require.Contains(t, cookies, RefreshTokenCookieName)
		assert.Equal(t, "AT1", cookies[AccessTokenCookieName].Value)
		assert.Equal(t, 86400, cookies[AccessTokenCookieName].MaxAge)
		assert.Equal(t, "RT1", cookies[RefreshTokenCookieName].Value)
		assert.Equal(t, 2592000, cookies[RefreshTokenCookieName].MaxAge)

		body := decodeResponse(t, rec)
		assert.Equal(t, "success", body["status"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "ADMIN", data["role"])
		assert.Equal(t, "A B", data["fullname"])
		assert.Equal(t, true, data["verified"])
	})

	t.Run("default login issues short-lived cookies", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignInWithPassword", mock.Anything, "a@b.com", "x12345").Return(authResult, nil)
		m.profiles.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, repositories.ErrNotFound)

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"x12345"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := cookiesByName(rec)
		assert.Equal(t, 900, cookies[AccessTokenCookieName].MaxAge)
		assert.Equal(t, 604800, cookies[RefreshTokenCookieName].MaxAge)
	})

	t.Run("missing profile row degrades to defaults", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignInWithPassword", mock.Anything, "a@b.com", "x12345").Return(authResult, nil)
		m.profiles.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, repositories.ErrNotFound)

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"x12345"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeResponse(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "USER", data["role"])
		assert.Equal(t, "", data["fullname"])
		assert.Nil(t, data["avatar"])
	})

	t.Run("provider-rejected credentials set no cookies", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignInWithPassword", mock.Anything, "a@b.com", "wrong1").
			Return(nil, &provider.APIError{StatusCode: 400, Message: "Invalid login credentials"})

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"wrong1"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
		m.profiles.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("incomplete session is a provider-side failure", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignInWithPassword", mock.Anything, "a@b.com", "x12345").Return(&provider.AuthResult{
			User:    authResult.User,
			Session: &provider.Session{AccessToken: "AT1"},
		}, nil)

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"x12345"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("invalid input yields itemized 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{"email":"not-an-email"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeResponse(t, rec)
		assert.Equal(t, "error", body["status"])

		errs := body["errors"].([]interface{})
		require.Len(t, errs, 2)
		first := errs[0].(map[string]interface{})
		assert.Equal(t, "email", first["field"])
		assert.Equal(t, "email", first["code"])
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleLogin(rec, jsonRequest(t, http.MethodPost, "/login", `{not json`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleProfile(t *testing.T) {
	userID := uuid.New()
	identity := &provider.Identity{ID: userID, Email: "a@b.com", EmailVerified: true}

	withAccessCookie := func(value string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: value})
		return req
	}

	t.Run("missing cookie is 401 without repository read", func(t *testing.T) {
		h, m := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleProfile(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		m.profiles.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("rejected token is 401", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.validator.On("ValidateAccessToken", mock.Anything, "bad").Return(nil, provider.ErrInvalidToken)

		rec := httptest.NewRecorder()
		h.HandleProfile(rec, withAccessCookie("bad"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		m.profiles.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("identity without email is 401", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.validator.On("ValidateAccessToken", mock.Anything, "AT1").
			Return(&provider.Identity{ID: userID}, nil)

		rec := httptest.NewRecorder()
		h.HandleProfile(rec, withAccessCookie("AT1"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing row returns defaults", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.validator.On("ValidateAccessToken", mock.Anything, "AT1").Return(identity, nil)
		m.profiles.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, repositories.ErrNotFound)

		rec := httptest.NewRecorder()
		h.HandleProfile(rec, withAccessCookie("AT1"))

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeResponse(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "USER", data["role"])
		assert.Equal(t, "", data["fullname"])
		assert.Nil(t, data["avatar"])
		assert.Empty(t, rec.Result().Cookies(), "profile fetch must not mutate cookies")
	})

	t.Run("existing row is merged into the view", func(t *testing.T) {
		h, m := newTestHandler(t)
		avatar := "https://cdn.example.com/a.png"
		m.validator.On("ValidateAccessToken", mock.Anything, "AT1").Return(identity, nil)
		m.profiles.On("GetByEmail", mock.Anything, "a@b.com").Return(&models.Profile{
			ID:       userID,
			Email:    "a@b.com",
			Role:     models.RoleAdmin,
			FullName: "A B",
			Avatar:   &avatar,
		}, nil)

		rec := httptest.NewRecorder()
		h.HandleProfile(rec, withAccessCookie("AT1"))

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeResponse(t, rec)["data"].(map[string]interface{})
		assert.Equal(t, "ADMIN", data["role"])
		assert.Equal(t, avatar, data["avatar"])
	})
}

func TestHandleRefresh(t *testing.T) {
	withRefreshCookie := func(t *testing.T, body string) *http.Request {
		req := jsonRequest(t, http.MethodPost, "/refresh", body)
		req.AddCookie(&http.Cookie{Name: RefreshTokenCookieName, Value: "RT-old"})
		return req
	}

	t.Run("missing cookie is 401", func(t *testing.T) {
		h, m := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleRefresh(rec, jsonRequest(t, http.MethodPost, "/refresh", `{}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		m.provider.AssertNotCalled(t, "RefreshSession", mock.Anything, mock.Anything)
	})

	t.Run("provider rejection is 401", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("RefreshSession", mock.Anything, "RT-old").
			Return(nil, &provider.APIError{StatusCode: 401, Message: "refresh token expired"})

		rec := httptest.NewRecorder()
		h.HandleRefresh(rec, withRefreshCookie(t, `{}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("incomplete session is 401", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("RefreshSession", mock.Anything, "RT-old").
			Return(&provider.Session{AccessToken: "AT-new"}, nil)

		rec := httptest.NewRecorder()
		h.HandleRefresh(rec, withRefreshCookie(t, `{}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("re-issues both cookies with remembered TTLs", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("RefreshSession", mock.Anything, "RT-old").
			Return(&provider.Session{AccessToken: "AT-new", RefreshToken: "RT-new"}, nil)

		rec := httptest.NewRecorder()
		h.HandleRefresh(rec, withRefreshCookie(t, `{"remember":true}`))

		require.Equal(t, http.StatusOK, rec.Code)

		cookies := cookiesByName(rec)
		assert.Equal(t, "AT-new", cookies[AccessTokenCookieName].Value)
		assert.Equal(t, 86400, cookies[AccessTokenCookieName].MaxAge)
		assert.Equal(t, "RT-new", cookies[RefreshTokenCookieName].Value)
		assert.Equal(t, 2592000, cookies[RefreshTokenCookieName].MaxAge)

		body := decodeResponse(t, rec)
		assert.Equal(t, "success", body["status"])
		_, hasData := body["data"]
		assert.False(t, hasData)
	})

	t.Run("absent body keeps short TTLs", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("RefreshSession", mock.Anything, "RT-old").
			Return(&provider.Session{AccessToken: "AT-new", RefreshToken: "RT-new"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		req.AddCookie(&http.Cookie{Name: RefreshTokenCookieName, Value: "RT-old"})

		rec := httptest.NewRecorder()
		h.HandleRefresh(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := cookiesByName(rec)
		assert.Equal(t, 900, cookies[AccessTokenCookieName].MaxAge)
	})
}

func TestHandleLogout(t *testing.T) {
	t.Run("clears cookies and returns provider result", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignOut", mock.Anything, "AT1").Return(provider.Result{"message": "signed out"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: "AT1"})

		rec := httptest.NewRecorder()
		h.HandleLogout(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		cookies := cookiesByName(rec)
		assert.Equal(t, -1, cookies[AccessTokenCookieName].MaxAge)
		assert.Equal(t, -1, cookies[RefreshTokenCookieName].MaxAge)

		body := decodeResponse(t, rec)
		assert.Equal(t, "signed out", body["data"].(map[string]interface{})["message"])
	})

	t.Run("provider failure still clears cookies", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignOut", mock.Anything, "").Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		h.HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		cookies := cookiesByName(rec)
		require.Contains(t, cookies, AccessTokenCookieName)
		assert.Equal(t, -1, cookies[AccessTokenCookieName].MaxAge)
	})
}

func TestHandleRegister(t *testing.T) {
	userID := uuid.New()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	signUpResult := &provider.AuthResult{
		User: &provider.Identity{
			ID:        userID,
			Email:     "new@b.com",
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	t.Run("creates profile row from provider identity", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignUp", mock.Anything, "new@b.com", "secret1", "New User").Return(signUpResult, nil)
		m.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.ID == userID &&
				p.Email == "new@b.com" &&
				p.Role == models.RoleUser &&
				p.FullName == "New User" &&
				p.CreatedAt.Equal(created)
		})).Return(nil)

		rec := httptest.NewRecorder()
		h.HandleRegister(rec, jsonRequest(t, http.MethodPost, "/register", `{"email":"new@b.com","fullname":"New User","password":"secret1"}`))

		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeResponse(t, rec)
		assert.Equal(t, "success", body["status"])
		data := body["data"].(map[string]interface{})
		assert.Equal(t, userID.String(), data["id"])
		assert.Equal(t, "USER", data["role"])
		m.profiles.AssertExpectations(t)
	})

	t.Run("insert failure is 500 with no data echoed", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignUp", mock.Anything, "new@b.com", "secret1", "New User").Return(signUpResult, nil)
		m.profiles.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		rec := httptest.NewRecorder()
		h.HandleRegister(rec, jsonRequest(t, http.MethodPost, "/register", `{"email":"new@b.com","fullname":"New User","password":"secret1"}`))

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decodeResponse(t, rec)
		assert.Equal(t, "error", body["status"])
		_, hasData := body["data"]
		assert.False(t, hasData)
	})

	t.Run("provider rejection is 500", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("SignUp", mock.Anything, "new@b.com", "secret1", "New User").
			Return(nil, &provider.APIError{StatusCode: 422, Message: "email already registered"})

		rec := httptest.NewRecorder()
		h.HandleRegister(rec, jsonRequest(t, http.MethodPost, "/register", `{"email":"new@b.com","fullname":"New User","password":"secret1"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		m.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation failure is itemized 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleRegister(rec, jsonRequest(t, http.MethodPost, "/register", `{"email":"new@b.com","password":"short"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		errs := decodeResponse(t, rec)["errors"].([]interface{})
		require.Len(t, errs, 2)
	})
}

func TestHandleVerifyEmail(t *testing.T) {
	t.Run("delegates to provider", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("VerifyEmail", mock.Anything, "verify-tok").Return(provider.Result{"message": "email verified"}, nil)

		rec := httptest.NewRecorder()
		h.HandleVerifyEmail(rec, jsonRequest(t, http.MethodPost, "/verify-email", `{"token":"verify-tok"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", decodeResponse(t, rec)["status"])
	})

	t.Run("provider failure is 500", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("VerifyEmail", mock.Anything, "bad-tok").Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		h.HandleVerifyEmail(rec, jsonRequest(t, http.MethodPost, "/verify-email", `{"token":"bad-tok"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleResetPassword(t *testing.T) {
	t.Run("missing fields are 400", func(t *testing.T) {
		h, m := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleResetPassword(rec, jsonRequest(t, http.MethodPost, "/reset-password", `{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.provider.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delegates to provider", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("ResetPassword", mock.Anything, "reset-tok", "new-secret").
			Return(provider.Result{"message": "password updated"}, nil)

		rec := httptest.NewRecorder()
		h.HandleResetPassword(rec, jsonRequest(t, http.MethodPost, "/reset-password", `{"token":"reset-tok","password":"new-secret"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandleForgotPassword(t *testing.T) {
	t.Run("missing email is 400", func(t *testing.T) {
		h, m := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.HandleForgotPassword(rec, jsonRequest(t, http.MethodPost, "/forgot-password", `{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.provider.AssertNotCalled(t, "ForgotPassword", mock.Anything, mock.Anything)
	})

	t.Run("delegates to provider", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("ForgotPassword", mock.Anything, "a@b.com").
			Return(provider.Result{"message": "recovery email sent"}, nil)

		rec := httptest.NewRecorder()
		h.HandleForgotPassword(rec, jsonRequest(t, http.MethodPost, "/forgot-password", `{"email":"a@b.com"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("provider failure is 500", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.provider.On("ForgotPassword", mock.Anything, "a@b.com").Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		h.HandleForgotPassword(rec, jsonRequest(t, http.MethodPost, "/forgot-password", `{"email":"a@b.com"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
