package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/api"
	"github.com/dmuiruri/bankcore/internal/config"
	"github.com/dmuiruri/bankcore/internal/db"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	store := ledger.NewPGStore(pool)
	orch := ledger.NewOrchestrator(store, logger)

	app := fiber.New()
	api.InitializeRoutes(app, cfg.JWTSecret, store, orch)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	<-stop
	slog.Info("shutting down")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	pool.Close()
	slog.Info("server exited")
}
