package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	userUsecase "github.com/allisson/storefront/internal/user/usecase"
)

// RunCreateUser registers an account from the command line, applying the same
// email and password rules as the register endpoint.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUsecase.UseCase,
	logger *slog.Logger,
	email, password, format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	user, err := userUseCase.RegisterUser(ctx, userUsecase.RegisterUserInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]string{
			"id":         user.ID.String(),
			"email":      user.Email,
			"created_at": user.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "User created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", user.ID)
		_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
	}

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}
