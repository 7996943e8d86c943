package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authService "github.com/allisson/storefront/internal/auth/service"
)

// RunGenerateSessionSecret prints a fresh session signing secret as environment
// variable assignments. When kmsKeyURI is set the secret is wrapped by that keeper
// and only the ciphertext is printed.
func RunGenerateSessionSecret(
	ctx context.Context,
	secretService authService.SecretService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	secret, err := secretService.GenerateSecret()
	if err != nil {
		return err
	}

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintf(writer, "SESSION_SECRET=%s\n", secret)
		logger.Info("session secret generated")
		return nil
	}

	ciphertext, err := secretService.WrapSecret(ctx, kmsKeyURI, secret)
	if err != nil {
		return fmt.Errorf("failed to wrap session secret: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "SESSION_SECRET_CIPHERTEXT=%s\n", ciphertext)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%s\n", kmsKeyURI)
	logger.Info("session secret generated and wrapped with kms")
	return nil
}
