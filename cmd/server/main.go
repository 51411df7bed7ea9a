package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"metdesk/internal/auth"
	httpapi "metdesk/internal/http"
	"metdesk/internal/jwttoken"
	"metdesk/internal/notify"
	"metdesk/internal/platform/config"
	"metdesk/internal/platform/httpserver"
	"metdesk/internal/platform/logger"
	"metdesk/internal/platform/metrics"
	"metdesk/internal/platform/redis"
	"metdesk/internal/ratelimit"
	reporthandler "metdesk/internal/report/handler"
	"metdesk/internal/report/models"
	reportservice "metdesk/internal/report/service"
	"metdesk/internal/report/store"
	"metdesk/internal/sheets"
	"metdesk/internal/station"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	reportStore, dbCloser, err := buildStore(cfg, log)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	if dbCloser != nil {
		defer dbCloser()
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	var limiter ratelimit.BucketStore
	if redisClient != nil {
		defer redisClient.Close()
		limiter = ratelimit.NewRedisBucketStore(redisClient.Client)
		log.Info("rate limiter backed by redis")
	} else {
		limiter = ratelimit.NewMemoryBucketStore()
		log.Info("rate limiter backed by process memory")
	}

	var relay notify.Relay
	if cfg.SMTP.Enabled() {
		smtpRelay, err := notify.NewSMTPRelay(cfg.SMTP, log, m)
		if err != nil {
			log.Error("smtp init failed", "error", err)
			os.Exit(1)
		}
		relay = smtpRelay
	} else {
		log.Warn("smtp not configured, notification emails disabled")
	}

	reports := reportservice.New(reportStore, relay, cfg.RecipientEmail, log, m)

	tokens := jwttoken.NewService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	directory := station.NewDirectory(cfg.Stations)
	authService := auth.NewService(directory, tokens)

	var drive *sheets.DriveClient
	if cfg.Drive.Enabled() {
		drive = sheets.NewDriveClient(cfg.Drive.BaseURL, cfg.Drive.AccessToken)
	} else {
		log.Warn("drive not configured, template copies disabled")
	}
	resolver := sheets.NewResolver(sheets.DefaultTable(), driveTemplates(cfg.Drive), drive, reports, log, m)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Logger:      log,
		Metrics:     m,
		Reports:     reporthandler.New(reports, log),
		Auth:        auth.NewHandler(authService, log),
		Sheets:      sheets.NewHandler(resolver, reports, log),
		Tokens:      tokens,
		Limiter:     limiter,
		RateLimit:   cfg.RateLimit.Requests,
		RateWindow:  cfg.RateLimit.Window,
		CORSOrigins: cfg.CORSOrigins,
		Ping:        reports.Ping,
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// buildStore opens PostgreSQL when DATABASE_URL is set, otherwise falls back
// to the in-memory store for local development.
func buildStore(cfg config.Config, log *slog.Logger) (store.Store, func() error, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		return store.NewMemoryStore(), nil, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pg := store.NewPostgres(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pg.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("connected to postgres")
	return pg, db.Close, nil
}

func driveTemplates(cfg config.DriveConfig) map[models.SheetType]string {
	templates := make(map[models.SheetType]string, len(cfg.Templates))
	for formType, id := range cfg.Templates {
		if id != "" {
			templates[models.SheetType(formType)] = id
		}
	}
	return templates
}
