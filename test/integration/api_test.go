// Package integration provides end-to-end tests of the storefront API.
// Every flow runs against both PostgreSQL and MySQL and is skipped when the
// database is not reachable.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/storefront/internal/app"
	authDTO "github.com/allisson/storefront/internal/auth/http/dto"
	"github.com/allisson/storefront/internal/config"
	productDTO "github.com/allisson/storefront/internal/product/http/dto"
	"github.com/allisson/storefront/internal/testutil"
	userDTO "github.com/allisson/storefront/internal/user/http/dto"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// client is a browser-like HTTP client that keeps the auth-token cookie between requests.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (ctx *integrationTestContext) newClient(t *testing.T) *client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &client{
		t:    t,
		base: ctx.server.URL,
		http: &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

// do performs an HTTP request and returns the response and body.
func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(c.t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.base+path, bodyReader)
	require.NoError(c.t, err, "failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := c.http.Do(req)
	require.NoError(c.t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		c.t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		AppEnv:                "test",
		DBDriver:              dbDriver,
		DBConnectionString:    dsn,
		DBMaxOpenConnections:  10,
		DBMaxIdleConnections:  5,
		DBConnMaxLifetime:     time.Hour,
		ServerHost:            "localhost",
		ServerPort:            8080,
		LogLevel:              "error",
		SessionSecret:         "integration-test-session-secret",
		SessionTTL:            time.Hour,
		PasswordHashAlgorithm: "scrypt",
		OutboxInterval:        time.Second,
		OutboxBatchSize:       50,
		OutboxMaxRetries:      3,
	}
	require.NoError(t, cfg.Validate())

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer(context.Background())
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

func registerAndLogin(t *testing.T, c *client, email, password string) userDTO.UserResponse {
	t.Helper()

	resp, body := c.do(http.MethodPost, "/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = c.do(http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var login authDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.True(t, login.Success)
	return login.User
}

func TestIntegration_Storefront(t *testing.T) {
	for _, dbDriver := range []string{"postgres", "mysql"} {
		t.Run(dbDriver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, dbDriver)
			defer teardownIntegrationTest(t, ctx)

			owner := ctx.newClient(t)
			other := ctx.newClient(t)
			anonymous := ctx.newClient(t)

			ownerUser := registerAndLogin(t, owner, "Owner@Example.com", "owner-password")
			assert.Equal(t, "owner@example.com", ownerUser.Email)
			registerAndLogin(t, other, "other@example.com", "other-password")

			t.Run("duplicate registration is rejected", func(t *testing.T) {
				resp, _ := anonymous.do(http.MethodPost, "/v1/auth/register", map[string]string{
					"email":    "OWNER@example.com",
					"password": "another-password",
				})
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			t.Run("wrong password is rejected", func(t *testing.T) {
				resp, _ := anonymous.do(http.MethodPost, "/v1/auth/login", map[string]string{
					"email":    "owner@example.com",
					"password": "wrong-password",
				})
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("session identifies the owner", func(t *testing.T) {
				resp, body := owner.do(http.MethodGet, "/v1/auth/me", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				var session authDTO.SessionResponse
				require.NoError(t, json.Unmarshal(body, &session))
				assert.Equal(t, ownerUser.ID.String(), session.Subject)

				resp, _ = anonymous.do(http.MethodGet, "/v1/auth/me", nil)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			var created productDTO.ProductResponse
			t.Run("owner creates a product", func(t *testing.T) {
				resp, body := owner.do(http.MethodPost, "/v1/products", map[string]any{
					"name":        "  Mechanical Keyboard  ",
					"description": "Tactile switches",
					"price":       129.9,
				})
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
				require.NoError(t, json.Unmarshal(body, &created))

				assert.Equal(t, "Mechanical Keyboard", created.Name)
				assert.Equal(t, ownerUser.ID.String(), created.CreatedBy)
				require.NotNil(t, created.Price)
				assert.InDelta(t, 129.9, *created.Price, 0.001)
			})

			t.Run("anonymous create is rejected", func(t *testing.T) {
				resp, _ := anonymous.do(http.MethodPost, "/v1/products", map[string]any{"name": "Mouse"})
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("public listing and search", func(t *testing.T) {
				resp, body := anonymous.do(http.MethodGet, "/v1/products", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				var list productDTO.ListProductsResponse
				require.NoError(t, json.Unmarshal(body, &list))
				require.Len(t, list.Data, 1)
				assert.Equal(t, created.ID, list.Data[0].ID)

				resp, body = anonymous.do(http.MethodGet, "/v1/products/search?q=TACTILE&sort=price_desc", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &list))
				assert.Len(t, list.Data, 1)

				resp, body = anonymous.do(http.MethodGet, "/v1/products/search?q=monitor", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				require.NoError(t, json.Unmarshal(body, &list))
				assert.Empty(t, list.Data)
			})

			t.Run("non-owner cannot modify", func(t *testing.T) {
				resp, _ := other.do(http.MethodPut, "/v1/products/"+created.ID, map[string]any{"name": "Stolen"})
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)

				resp, _ = other.do(http.MethodDelete, "/v1/products/"+created.ID, nil)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Run("owner updates the product", func(t *testing.T) {
				resp, body := owner.do(http.MethodPut, "/v1/products/"+created.ID, map[string]any{"price": 99.5})
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var updated productDTO.ProductResponse
				require.NoError(t, json.Unmarshal(body, &updated))
				assert.Equal(t, "Mechanical Keyboard", updated.Name)
				require.NotNil(t, updated.Price)
				assert.InDelta(t, 99.5, *updated.Price, 0.001)
			})

			t.Run("owner deletes the product", func(t *testing.T) {
				resp, _ := owner.do(http.MethodDelete, "/v1/products/"+created.ID, nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				resp, _ = anonymous.do(http.MethodGet, "/v1/products/"+created.ID, nil)
				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})

			t.Run("outbox events are processed", func(t *testing.T) {
				// two registrations plus create, update and delete
				assert.Equal(t, 5, testutil.CountRows(t, ctx.db, "outbox_events"))

				outboxUseCase, err := ctx.container.OutboxUseCase()
				require.NoError(t, err)
				require.NoError(t, outboxUseCase.ProcessEvents(context.Background()))

				var pending int
				err = ctx.db.QueryRow(
					"SELECT COUNT(*) FROM outbox_events WHERE status = 'pending'",
				).Scan(&pending)
				require.NoError(t, err)
				assert.Zero(t, pending)
			})

			t.Run("logout clears the session", func(t *testing.T) {
				resp, _ := owner.do(http.MethodPost, "/v1/auth/logout", nil)
				require.Equal(t, http.StatusOK, resp.StatusCode)

				resp, _ = owner.do(http.MethodGet, "/v1/auth/me", nil)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})
		})
	}
}
