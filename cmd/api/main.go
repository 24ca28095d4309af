// Package main is the entry point for the GoBishoftu API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/config"
	"github.com/gobishoftu/site/backend/internal/handler"
	"github.com/gobishoftu/site/backend/internal/middleware"
	"github.com/gobishoftu/site/backend/internal/notify"
	"github.com/gobishoftu/site/backend/internal/repo"
	"github.com/gobishoftu/site/backend/internal/service"
)

// multipartOverhead is the allowance on top of MaxImageBytes for the
// multipart envelope of an image upload.
const multipartOverhead = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
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

	// --- Store ------------------------------------------------------------
	// The backend is chosen once from configuration; there is no runtime fallback.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := repo.Open(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("store ready", "mode", backend.Mode)

	// --- Services ---------------------------------------------------------
	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if err != nil {
		slog.Error("failed to create telegram notifier", "error", err)
		os.Exit(1)
	}
	catalog := service.NewCatalogService(backend.Store, cfg.StoreTimeout)
	feedback := service.NewFeedbackService(backend.Store, notifier, cfg.StoreTimeout, logger)
	sessions := admin.NewManager(backend.Store, admin.Options{
		AccessCode:    cfg.AdminAccessCode,
		StoreTimeout:  cfg.StoreTimeout,
		MaxImageBytes: cfg.MaxImageBytes,
		Logger:        logger,
	}, cfg.SessionLimit, cfg.SessionTTL)

	api := handler.NewServer(catalog, feedback, sessions, handler.Options{
		Mode:          string(backend.Mode),
		SessionTTL:    cfg.SessionTTL,
		MaxImageBytes: cfg.MaxImageBytes,
		BookingLink:   cfg.TelegramLink,
		Logger:        logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxImageBytes + multipartOverhead))
	r.Mount("/", api.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a full STORE_TIMEOUT plus the refetch after a save.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.StoreTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "mode", backend.Mode)
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
