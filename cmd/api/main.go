// Package main is the entry point for the Pack Rat API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/packrat/internal/auth"
	"github.com/pkordes/packrat/internal/config"
	"github.com/pkordes/packrat/internal/handler"
	"github.com/pkordes/packrat/internal/mail"
	"github.com/pkordes/packrat/internal/notify"
	"github.com/pkordes/packrat/internal/repo"
	"github.com/pkordes/packrat/internal/service"
	"github.com/pkordes/packrat/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	if cfg.MigrateOnStart {
		if err := migrate(context.Background(), cfg.DatabaseURL, logger); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Services ---------------------------------------------------------
	repos := repo.NewRepos(pool)
	tx := repo.NewTxManager(pool)

	var mailer mail.Mailer = mail.NewLogMailer(logger)
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, logger)
	} else {
		slog.Warn("RESEND_API_KEY not set; password reset links will be logged")
	}

	authSvc := service.NewAuthService(repos.Users, repos.Sessions, tx, auth.NewTokenIssuer(cfg.JWTSecret), mailer,
		service.AuthConfig{
			SessionTTL: cfg.SessionTTL,
			ResetTTL:   cfg.ResetTokenTTL,
			ResetURL:   cfg.ResetURL,
		})

	// The hub owns one LISTEN connection for the lifetime of the process.
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := notify.NewHub(pool, logger)
	go func() {
		if err := hub.Run(hubCtx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("change hub stopped", "error", err)
		}
	}()

	srvHandler := handler.NewServer(handler.Services{
		Trips:   service.NewTripService(repos.Trips, tx),
		Packing: service.NewPackingService(repos, tx),
		Events:  service.NewEventService(repos.Events, tx),
		Bags:    service.NewBagService(repos.Trips, repos.Bags),
		Summary: service.NewSummaryService(repos.Trips, repos.Items, repos.Bags),
		Auth:    authSvc,
		Changes: hub,
	}, logger)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(srvHandler, handler.RouterConfig{
			Logger:       logger,
			CORSOrigins:  cfg.CORSOrigins,
			MaxBodyBytes: cfg.MaxBodyBytes,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	// Change streams never finish on their own. Stopping the hub closes their
	// subscriptions so Shutdown can drain ordinary requests normally.
	srv.RegisterOnShutdown(stopHub)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies every pending goose migration embedded in the binary.
func migrate(ctx context.Context, dsn string, log *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}
