package commands

import (
	"context"
	"errors"
	"fmt"

	authService "github.com/allisson/storefront/internal/auth/service"
)

// ErrInvalidSessionToken is returned when a token fails verification.
var ErrInvalidSessionToken = errors.New("session token is invalid or expired")

// RunVerifySessionToken checks token against the configured session secret and
// prints its claims. Rejection reasons stay internal, as they do for HTTP requests.
func RunVerifySessionToken(
	ctx context.Context,
	sessionService authService.SessionService,
	token, format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	claims, ok := sessionService.Verify(ctx, token)
	if !ok {
		return ErrInvalidSessionToken
	}

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{
			"valid":   true,
			"subject": claims.Subject,
			"email":   claims.Email,
		})
	}

	_, _ = fmt.Fprintln(io.Writer, "Session token is valid")
	_, _ = fmt.Fprintf(io.Writer, "Subject: %s\n", claims.Subject)
	_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", claims.Email)
	return nil
}
