package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xxtg666/Discord-Webhook-RSS/internal/config"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/generator"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/handler"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/logger"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/middleware"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/service"
	"github.com/xxtg666/Discord-Webhook-RSS/internal/store"
)

func main() {
	// ============================================================
	// LOAD CONFIGURATION
	// ============================================================
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// ============================================================
	// Initialize logger
	// ============================================================
	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Environment: cfg.Log.Environment,
	})

	if !cfg.Shortener.Enabled {
		log.Info("url shortener disabled by configuration, not starting")
		return
	}

	log.Info("starting url shortener",
		"domain", cfg.Shortener.Domain,
		"storage_file", cfg.Shortener.StorageFile,
		"environment", cfg.App.Environment)

	// ============================================================
	// INITIALIZE LAYERS
	// ============================================================
	gen := generator.New(cfg.Shortener.CodeLength)
	st := store.New(cfg.Shortener.StorageFile, gen, cfg.Shortener.MaxAttempts, log)
	log.Info("mapping store loaded", "mappings", st.Count())

	svc := service.NewURLService(st, gen, cfg.Shortener.Domain, cfg.Shortener.Enabled, log)

	h := handler.NewURLHandler(svc)
	router := h.SetupRoutes()

	// ============================================================
	// BUILD MIDDLEWARE CHAIN
	// ============================================================
	middlewares := []middleware.Middleware{
		middleware.RequestID,
		middleware.RecoveryWithLogger(log),
		middleware.LoggingWithLogger(log),
		middleware.CORS(cfg.Server.CORSOrigins),
	}
	wrappedRouter := middleware.Chain(router, middlewares...)

	// ============================================================
	// CREATE SERVER WITH CONFIG TIMEOUTS
	// ============================================================
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      wrappedRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel to track server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if cfg.IsDevelopment() {
			fmt.Printf("Server starting on http://%s\n", addr)
			fmt.Println("Endpoints:")
			fmt.Println("  POST /shorten - Create short URL")
			fmt.Println("  GET  /{code}  - Redirect to original")
			fmt.Println("  GET  /        - Service status")
		}
		log.Info("server starting", "addr", addr)
		serverErr <- server.ListenAndServe()
	}()

	// ============================================================
	// WAIT FOR SHUTDOWN OR ERROR
	// ============================================================
	select {
	case err := <-serverErr:
		// Failing to bind the listen address is the only fatal error
		log.Error("server error", "error", err.Error())
		os.Exit(1)

	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "error", err.Error())
			if err := server.Close(); err != nil {
				log.Error("forced shutdown failed", "error", err.Error())
			}
		}

		log.Info("server stopped")
	}
}
