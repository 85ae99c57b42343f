package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"listinha/internal/amqp"
	"listinha/internal/config"
	"listinha/internal/export"
	exportgoogle "listinha/internal/export/google"
	applog "listinha/internal/log"
	"listinha/internal/store/sqlite"
	"listinha/internal/worker"
)

func main() {
	_ = godotenv.Load()

	applog.Setup()
	logger := applog.New("worker-main")

	logger.Info("Starting listinha-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// The worker reads the same SQLite file the server writes.
	st, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer st.Close()

	// Google Sheets archiving is optional.
	var archive export.ArchiveWriter
	if os.Getenv("GOOGLE_SPREADSHEET_ID") != "" {
		client, err := exportgoogle.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		archive = client
		logger.Info("Google Sheets archiving enabled")
	} else {
		logger.Info("Google Sheets archiving disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(st, archive, cfg.ExportDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeListFinalized(gctx, func(msg *amqp.ListFinalizedMessage) error {
			handleCtx, cancel := context.WithTimeout(gctx, 30*time.Second)
			defer cancel()
			return exportWorker.HandleFinalized(handleCtx, msg)
		})
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
