// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/allisson/storefront/internal/auth/http"
	authUseCase "github.com/allisson/storefront/internal/auth/usecase"
	"github.com/allisson/storefront/internal/config"
	"github.com/allisson/storefront/internal/metrics"
	productHTTP "github.com/allisson/storefront/internal/product/http"
	userHTTP "github.com/allisson/storefront/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// RouterDeps groups the handlers and collaborators mounted by SetupRouter.
type RouterDeps struct {
	UserHandler    *userHTTP.UserHandler
	AuthHandler    *authHTTP.AuthHandler
	ProductHandler *productHTTP.ProductHandler
	AuthUseCase    authUseCase.AuthUseCase

	// MeterProvider enables HTTP request metrics when non-nil.
	MeterProvider metric.MeterProvider
}

// NewServer creates a new API server. db is used by the readiness probe and may be nil.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with all routes.
//
// Public: health probes, product reads, register and login (per-IP rate limited).
// Session required: logout, me, user count and product writes.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDeps) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	requireSession := authHTTP.SessionMiddleware(deps.AuthUseCase, s.logger)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	{
		public := auth.Group("")
		if cfg.RateLimitLoginEnabled {
			public.Use(authHTTP.IPRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		public.POST("/register", deps.UserHandler.RegisterHandler)
		public.POST("/login", deps.AuthHandler.LoginHandler)

		// Logout only clears the client cookie, so it does not require a valid session.
		auth.POST("/logout", deps.AuthHandler.LogoutHandler)
		auth.GET("/me", requireSession, deps.AuthHandler.MeHandler)
	}

	v1.GET("/users/count", requireSession, deps.UserHandler.CountHandler)

	products := v1.Group("/products")
	{
		products.GET("", deps.ProductHandler.ListHandler)
		products.GET("/latest", deps.ProductHandler.LatestHandler)
		products.GET("/search", deps.ProductHandler.SearchHandler)
		products.GET("/:id", deps.ProductHandler.GetHandler)
		products.POST("", requireSession, deps.ProductHandler.CreateHandler)
		products.PUT("/:id", requireSession, deps.ProductHandler.UpdateHandler)
		products.DELETE("/:id", requireSession, deps.ProductHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			dbStatus = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if dbStatus != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": dbStatus},
	})
}
