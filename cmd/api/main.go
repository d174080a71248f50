package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/config"
	"github.com/MrJamesThe3rd/presence/internal/database"
	"github.com/MrJamesThe3rd/presence/internal/export"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
	exportlogStore "github.com/MrJamesThe3rd/presence/internal/exportlog/store"
	presenceHttp "github.com/MrJamesThe3rd/presence/internal/http"
	attendanceHandler "github.com/MrJamesThe3rd/presence/internal/http/attendance"
	employeeHandler "github.com/MrJamesThe3rd/presence/internal/http/employee"
	exportHandler "github.com/MrJamesThe3rd/presence/internal/http/export"
	sessionHandler "github.com/MrJamesThe3rd/presence/internal/http/session"
	"github.com/MrJamesThe3rd/presence/internal/logging"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, cfg.App.LogLevel)

	if cfg.Auth.Secret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	client, err := backend.New(cfg.Backend.URL, cfg.Backend.Timeout)
	if err != nil {
		slog.Error("invalid backend url", "error", err)
		os.Exit(1)
	}

	var (
		sessions      = session.NewManager(client, cfg.Auth.Secret, cfg.Auth.TTL, nil)
		exportService = export.NewService(nil)
		exportHistory = exportlog.NewService(exportlogStore.New(db))
	)

	var (
		sessionH    = sessionHandler.NewHandler(sessions)
		attendanceH = attendanceHandler.NewHandler(client, exportService, exportHistory, nil)
		exportH     = exportHandler.NewHandler(exportHistory)
		employeeH   = employeeHandler.NewHandler(client)
	)

	router := presenceHttp.New(presenceHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Verifier:       sessions,
	}, sessionH, attendanceH, exportH, employeeH)

	port := fmt.Sprintf(":%d", cfg.App.Port)

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout + cfg.Backend.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", port, "backend", cfg.Backend.URL)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
