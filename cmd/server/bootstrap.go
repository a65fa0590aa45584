package main

import (
	"context"

	"github.com/dovira-ua/dovira/backend/internal/analytics"
	"github.com/dovira-ua/dovira/backend/internal/config"
	"github.com/dovira-ua/dovira/backend/internal/models"
	"github.com/dovira-ua/dovira/backend/internal/services"
	"github.com/dovira-ua/dovira/backend/pkg/logger"
)

// appServices holds all initialized services needed by the application.
type appServices struct {
	lexicon      *analytics.Lexicon
	statsService *services.StatsService
	syncService  *services.ConfirmationSyncService
	taskQueue    services.TaskQueue
	worker       *services.Worker
	reconciler   *services.ReconcileScheduler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Load the sentiment lexicon. A broken or missing file falls back to
	// the built-in Ukrainian word lists so the server still starts.
	lexicon := analytics.DefaultLexicon()
	if cfg.Analytics.LexiconPath != "" {
		loaded, err := analytics.LoadLexicon(cfg.Analytics.LexiconPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Analytics.LexiconPath).Msg("Failed to load lexicon, using built-in defaults")
		} else {
			lexicon = loaded
		}
	}

	statsService := services.NewStatsService(models.GetDB())
	syncService := services.NewConfirmationSyncService(models.GetDB(), statsService)

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	processStatsTask := func(ctx context.Context, task *services.StatsTask) error {
		return statsService.RefreshOfficerStats(task.OfficerID)
	}
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(processStatsTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(processStatsTask)
			worker.Start()
		}
	}

	// Start the nightly reconciliation and recalibration run
	reconciler := services.NewReconcileScheduler(syncService, statsService, cfg.Analytics.ReconcileSpec)
	reconciler.Start()

	return &appServices{
		lexicon:      lexicon,
		statsService: statsService,
		syncService:  syncService,
		taskQueue:    taskQueue,
		worker:       worker,
		reconciler:   reconciler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reconciler.Stop()
	logger.Info().Msg("Reconcile scheduler stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}
