package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"listinha/internal/amqp"
	"listinha/internal/compare"
	"listinha/internal/config"
	"listinha/internal/core"
	"listinha/internal/export"
	apphttp "listinha/internal/http"
	applog "listinha/internal/log"
	"listinha/internal/services"
	"listinha/internal/store"
	"listinha/internal/store/memory"
	"listinha/internal/store/sqlite"
)

func main() {
	// .env is for local development; missing file is fine.
	_ = godotenv.Load()

	applog.Setup()
	logger := applog.New("main")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var st store.Store
	switch cfg.StoreBackend {
	case "memory":
		st = memory.New()
		logger.Info("Initialized memory backend")
	default:
		sqliteStore, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		st = sqliteStore
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	}

	// AMQP is optional: without it, finalized lists are only kept locally.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, finalize events will not be published", "error", err)
		} else {
			amqpClient = client
			defer amqpClient.Close()
		}
	}

	settings := core.Settings{
		HistoryLimit: cfg.HistoryLimit,
		Thresholds:   cfg.AlertThresholds,
	}
	svc, err := services.NewListService(context.Background(), st, amqpClient, cfg.ListName, settings)
	if err != nil {
		logger.Error("Failed to initialize list service", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	comparer := compare.NewService(&compare.StubFetcher{Stores: cfg.CompareStores})
	srv := apphttp.NewServer(":"+cfg.Port, svc, export.NewShareLinker(cfg.ShareBaseURL), apphttp.Options{
		Compare:        comparer,
		CompareTimeout: cfg.CompareTimeout,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

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

	logger.Info("Starting listinha server", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
