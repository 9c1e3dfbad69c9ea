package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/upb/auth-gateway/config"
	"go.uber.org/zap"
)

// Client calls the hosted auth provider's REST API. All credential
// verification, token signing and reset-link delivery happen provider-side;
// the client only shapes requests and decodes responses.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new provider client
func NewClient(cfg config.ProviderConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// SignInWithPassword exchanges credentials for an identity and session
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &result); err != nil {
		return nil, fmt.Errorf("sign in failed: %w", err)
	}
	return &result, nil
}

// SignUp creates a new identity with the provider
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"fullname": fullName,
		},
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/signup", "", body, &result); err != nil {
		return nil, fmt.Errorf("sign up failed: %w", err)
	}
	return &result, nil
}

// RefreshSession exchanges a refresh token for a fresh credential pair
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{
		"refresh_token": refreshToken,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &session); err != nil {
		return nil, fmt.Errorf("refresh failed: %w", err)
	}
	return &session, nil
}

// SignOut invalidates the session server-side
func (c *Client) SignOut(ctx context.Context, accessToken string) (Result, error) {
	var result Result
	if err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil, &result); err != nil {
		return nil, fmt.Errorf("sign out failed: %w", err)
	}
	return result, nil
}

// VerifyEmail confirms an email address with the provider's verification token
func (c *Client) VerifyEmail(ctx context.Context, token string) (Result, error) {
	body := map[string]string{
		"type":  "signup",
		"token": token,
	}

	var result Result
	if err := c.do(ctx, http.MethodPost, "/verify", "", body, &result); err != nil {
		return nil, fmt.Errorf("email verification failed: %w", err)
	}
	return result, nil
}

// ResetPassword sets a new password using the provider's reset token
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (Result, error) {
	body := map[string]string{
		"type":     "recovery",
		"token":    token,
		"password": newPassword,
	}

	var result Result
	if err := c.do(ctx, http.MethodPost, "/verify", "", body, &result); err != nil {
		return nil, fmt.Errorf("password reset failed: %w", err)
	}
	return result, nil
}

// ForgotPassword asks the provider to send a password-reset email
func (c *Client) ForgotPassword(ctx context.Context, email string) (Result, error) {
	body := map[string]string{
		"email": email,
	}

	var result Result
	if err := c.do(ctx, http.MethodPost, "/recover", "", body, &result); err != nil {
		return nil, fmt.Errorf("password recovery failed: %w", err)
	}
	return result, nil
}

// do executes a provider request and decodes the JSON response into out.
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path, bearerToken string, body, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("auth provider not configured")
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.serviceKey != "" {
		req.Header.Set("apikey", c.serviceKey)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		c.logger.Warn("provider call rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
