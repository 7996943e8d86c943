package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	"github.com/allisson/storefront/internal/httputil"
)

// SessionMiddleware authenticates the request from its session token.
//
// The token is read from the auth-token cookie, or from an "Authorization: Bearer"
// header when no cookie is sent. On success the Session is stored in the request
// context (see GetSession). Missing and invalid tokens are answered with 401.
//
// Usage:
//
//	router.POST("/v1/products", SessionMiddleware(authUseCase, logger), handler)
func SessionMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := authUseCase.Authenticate(c.Request.Context(), sessionToken(c))
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))

		logger.Debug("authentication successful", slog.String("user_id", session.UserID.String()))

		c.Next()
	}
}
