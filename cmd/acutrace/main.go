package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"acutrace/internal/config"
	apphttp "acutrace/internal/http"
	applog "acutrace/internal/log"
	"acutrace/internal/services"
	"acutrace/internal/session"
	"acutrace/internal/theme"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store := session.New(cfg.MaxSessions, cfg.SessionTTL)
	store.StartCleanup(cfg.CleanupInterval)

	svc := services.NewAnalysisService(store)
	defer svc.Close()

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Palette:            theme.Default(),
		CacheSize:          cfg.CacheSize,
		CacheTTL:           cfg.CacheTTL,
		CleanupInterval:    cfg.CleanupInterval,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		MaxPayloadBytes:    cfg.MaxPayloadBytes,
	})

	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting acutrace server",
		"port", cfg.Port,
		"session_ttl", cfg.SessionTTL.String(),
		"max_sessions", cfg.MaxSessions)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
