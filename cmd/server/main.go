package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propman-backend/internal/audit"
	"propman-backend/internal/cache"
	"propman-backend/internal/config"
	"propman-backend/internal/database"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/router"
	"propman-backend/internal/store"
	"propman-backend/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migrate", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc := cache.Connect(ctx, cfg.RedisAddr)
	defer rc.Close()

	uploads := upload.New(cfg.UploadDir, cfg.UploadMaxBytes)

	svc := portfolio.New(store.New(db), rc,
		portfolio.WithCacheTTL(cfg.DashboardCacheTTL),
		portfolio.WithLocale(cfg.LabelLocale),
	)

	app := router.New(router.Deps{
		Config:    cfg,
		DB:        db,
		Portfolio: svc,
		Audit:     audit.New(db, svc),
		Uploads:   uploads,
		AccessLog: true,
	})

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("server listening", "port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		slog.Error("listen", "error", err)
		os.Exit(1)
	}
}
