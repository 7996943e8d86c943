package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/storefront/internal/auth/http/dto"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	apperrors "github.com/allisson/storefront/internal/errors"
	"github.com/allisson/storefront/internal/httputil"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	cookie      CookieConfig
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookie:      cookie,
		logger:      logger,
	}
}

// LoginHandler verifies credentials and sets the session cookie.
// POST /v1/auth/login - Returns 200 OK with {success, user}; 401 on bad credentials.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), authUseCase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	SetSessionCookie(c, output.Session.Token, h.cookie)

	h.logger.Info("user logged in", slog.String("user_id", output.User.ID.String()))

	c.JSON(http.StatusOK, dto.MapLoginToResponse(output.User))
}

// LogoutHandler clears the session cookie.
// POST /v1/auth/logout - Always returns 200 OK.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	ClearSessionCookie(c, h.cookie)
	c.JSON(http.StatusOK, dto.LogoutResponse{Success: true})
}

// MeHandler returns the identity of the current session.
// GET /v1/auth/me - Requires SessionMiddleware.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	session, ok := GetSession(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}
