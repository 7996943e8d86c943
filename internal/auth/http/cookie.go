package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
)

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	// Secure marks the cookie HTTPS-only. Enabled when APP_ENV=production.
	Secure bool
	// TTL becomes the cookie Max-Age and matches the session token lifetime.
	TTL time.Duration
}

// SetSessionCookie writes the auth-token cookie: HttpOnly, SameSite=Lax, Path "/".
func SetSessionCookie(c *gin.Context, token string, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authDomain.SessionCookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}

// ClearSessionCookie expires the auth-token cookie on the client.
// The token itself stays valid until its exp; there is no server-side revocation.
func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authDomain.SessionCookieName, "", -1, "/", "", cfg.Secure, true)
}

// sessionToken extracts the token from the auth-token cookie, falling back to
// an "Authorization: Bearer" header for non-browser clients.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(authDomain.SessionCookieName); err == nil && token != "" {
		return token
	}

	const bearerPrefix = "bearer "
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return authHeader[len(bearerPrefix):]
	}
	return ""
}
