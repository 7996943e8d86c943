package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/allisson/storefront/internal/app"
	"github.com/allisson/storefront/internal/config"
	outboxUsecase "github.com/allisson/storefront/internal/outbox/usecase"
)

// RunWorker runs only the outbox processor, for deployments that scale it apart
// from the API. Blocks until SIGINT/SIGTERM.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting outbox worker", slog.String("version", version))

	defer closeContainer(container, logger)

	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox processor: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runOutbox(ctx, outboxUseCase, logger)
}

// runOutbox blocks in the processor loop and treats cancellation as a clean stop.
func runOutbox(ctx context.Context, outboxUseCase outboxUsecase.UseCase, logger *slog.Logger) error {
	if err := outboxUseCase.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox processor error: %w", err)
	}
	logger.Info("outbox worker stopped")
	return nil
}
