// Command tokencleanup deletes all used or expired email verification
// tokens. Run it periodically, e.g. from cron.
package main

import (
	"log/slog"
	"os"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	count, err := app.AuthService.CleanupTokens()
	if err != nil {
		slog.Error("token cleanup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("token cleanup finished", "deleted", count)
}
