package auth

import (
	"net/http"
	"time"

	"github.com/upb/auth-gateway/provider"
)

const (
	// AccessTokenCookieName is the cookie carrying the provider access token
	AccessTokenCookieName = "accesstoken"
	// RefreshTokenCookieName is the cookie carrying the provider refresh token
	RefreshTokenCookieName = "refreshtoken"

	accessTokenTTL           = 15 * time.Minute
	accessTokenTTLRemembered = 24 * time.Hour

	refreshTokenTTL           = 7 * 24 * time.Hour
	refreshTokenTTLRemembered = 30 * 24 * time.Hour
)

// CookiePolicy derives the session cookie pair from the remember flag. It is
// purely presentational: the tokens themselves are never inspected.
type CookiePolicy struct {
	// Domain is the bare deployment hostname in production, empty otherwise.
	Domain string
}

// SessionCookies produces the access/refresh cookie pair for a session.
// Remember selects the long-lived TTLs (access 1 day, refresh 30 days)
// over the short-lived ones (15 minutes, 7 days).
func (p CookiePolicy) SessionCookies(session *provider.Session, remember bool) []*http.Cookie {
	accessTTL := accessTokenTTL
	refreshTTL := refreshTokenTTL
	if remember {
		accessTTL = accessTokenTTLRemembered
		refreshTTL = refreshTokenTTLRemembered
	}

	return []*http.Cookie{
		p.cookie(AccessTokenCookieName, session.AccessToken, int(accessTTL.Seconds())),
		p.cookie(RefreshTokenCookieName, session.RefreshToken, int(refreshTTL.Seconds())),
	}
}

// ClearSessionCookies produces expirations for both session cookies
func (p CookiePolicy) ClearSessionCookies() []*http.Cookie {
	return []*http.Cookie{
		p.cookie(AccessTokenCookieName, "", -1),
		p.cookie(RefreshTokenCookieName, "", -1),
	}
}

// cookie builds a cookie with the fixed transport attributes: http-only,
// secure, cross-site-shareable, whole-site path.
func (p CookiePolicy) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   p.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// setCookies writes all cookies to the response
func setCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		http.SetCookie(w, c)
	}
}
