package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordflash/internal/api"
	"github.com/vytor/wordflash/internal/config"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/repository/jsonfile"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/scheduler"
	"github.com/vytor/wordflash/internal/services"
	"github.com/vytor/wordflash/internal/store"
	"github.com/vytor/wordflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("WordFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("storage_backend=%s", cfg.StorageBackend)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("counts: learn=%d, review=%d, test=%d", cfg.LearnCount, cfg.ReviewCount, cfg.TestCount)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("backup_interval_minutes=%d", cfg.BackupIntervalMinutes)

	paths := cfg.Paths()

	repo, closer, err := openRepository(cfg, paths)
	if err != nil {
		log.Error("failed to open %s storage: %v", cfg.StorageBackend, err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing storage")
		closer.Close()
	}()

	st := store.New(repo, store.Options{
		LastDeckPath:    paths.LastDeck,
		DefaultDeckPath: paths.DefaultDeck,
		Settings: models.Settings{
			LearnCount:  cfg.LearnCount,
			ReviewCount: cfg.ReviewCount,
			TestCount:   cfg.TestCount,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	src, err := st.Load(logger.NewContext(ctx, log))
	if err != nil {
		// Starting empty would overwrite the unreadable progress on the first answer.
		log.Error("failed to load progress: %v", err)
		os.Exit(1)
	}
	stats := st.Statistics()
	log.Info("loaded %d words from %s (learned=%d, reviewed=%d, tested=%d)",
		stats.Total, src, stats.Learned, stats.Reviewed, stats.Tested)

	// Initialize services
	lib := services.NewLibrary(st)
	deckService := services.NewDeckService(lib, jsonfile.NewBackupRepository(paths.Backups, cfg.BackupKeep))
	drillService := services.NewDrillService(lib, nil)

	// Initialize worker pool
	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	importPool.Start(ctx)

	backups := scheduler.New(deckService, time.Duration(cfg.BackupIntervalMinutes)*time.Minute)
	if err := backups.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DeckService:  deckService,
		DrillService: drillService,
		JobQueue:     jobs.NewWorkerQueue(importPool, deckService),
		ImportRoot:   cfg.DataDir,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	backups.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Queued imports finish before the storage is closed.
	log.Debug("stopping import pool")
	importPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("WordFlash Server Stopped")
	log.Info("===========================================")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openRepository returns the snapshot repository of the configured backend
// and what to close on shutdown.
func openRepository(cfg config.Config, paths config.Paths) (repository.SnapshotRepository, io.Closer, error) {
	if cfg.StorageBackend == config.BackendSQLite {
		database, err := db.Open(paths.Database)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSnapshotRepository(database.DB), database, nil
	}
	return jsonfile.NewSnapshotRepository(paths.Progress), nopCloser{}, nil
}
