package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	authService "github.com/allisson/storefront/internal/auth/service"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func TestRunVerifySessionToken(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Unix(1700000000, 0)}
	sessionService, err := authService.NewSessionService(
		[]byte("test-secret"),
		7*24*time.Hour,
		clock,
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)

	claims := authDomain.Claims{
		Subject: "0194f1b2-7c3d-7e4f-8a5b-6c7d8e9f0a1b",
		Email:   "john@example.com",
	}
	issued, err := sessionService.Issue(ctx, claims)
	require.NoError(t, err)

	t.Run("valid token text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunVerifySessionToken(ctx, sessionService, issued.Token, "text", IOTuple{Writer: &out}))

		assert.Contains(t, out.String(), "Subject: "+claims.Subject)
		assert.Contains(t, out.String(), "Email: john@example.com")
	})

	t.Run("valid token json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunVerifySessionToken(ctx, sessionService, issued.Token, "json", IOTuple{Writer: &out}))

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, true, result["valid"])
		assert.Equal(t, claims.Subject, result["subject"])
	})

	t.Run("tampered token", func(t *testing.T) {
		var out bytes.Buffer
		err := RunVerifySessionToken(ctx, sessionService, issued.Token+"x", "text", IOTuple{Writer: &out})

		assert.ErrorIs(t, err, ErrInvalidSessionToken)
		assert.Empty(t, out.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		err := RunVerifySessionToken(ctx, sessionService, "not-a-token", "text", IOTuple{Writer: &bytes.Buffer{}})
		assert.ErrorIs(t, err, ErrInvalidSessionToken)
	})

	t.Run("invalid format", func(t *testing.T) {
		err := RunVerifySessionToken(ctx, sessionService, issued.Token, "xml", IOTuple{Writer: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "invalid format")
	})
}
