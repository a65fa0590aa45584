package services

import (
	"github.com/robfig/cron/v3"

	"github.com/dovira-ua/dovira/backend/pkg/logger"
)

// ReconcileScheduler runs the nightly maintenance pass: confirmation
// reconciliation over all derived evaluations followed by a full stats
// recalibration, so any drift the day introduced is gone by morning.
type ReconcileScheduler struct {
	sync          *ConfirmationSyncService
	stats         *StatsService
	cronScheduler *cron.Cron
	spec          string
}

func NewReconcileScheduler(sync *ConfirmationSyncService, stats *StatsService, spec string) *ReconcileScheduler {
	return &ReconcileScheduler{
		sync:  sync,
		stats: stats,
		spec:  spec,
	}
}

// Start schedules the nightly run. Invalid cron expressions disable the
// scheduler rather than failing startup; reconciliation stays reachable
// through the maintenance endpoints.
func (s *ReconcileScheduler) Start() {
	s.cronScheduler = cron.New()

	_, err := s.cronScheduler.AddFunc(s.spec, s.Run)
	if err != nil {
		logger.Errorf("[Reconcile] Invalid cron spec %q, nightly run disabled: %v", s.spec, err)
		return
	}

	s.cronScheduler.Start()
	logger.Infof("[Reconcile] Scheduler started (cron: %s)", s.spec)
}

func (s *ReconcileScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// Run executes one maintenance pass.
func (s *ReconcileScheduler) Run() {
	logger.Infof("[Reconcile] Nightly run starting")

	if err := s.sync.ReconcileAll(); err != nil {
		logger.Errorf("[Reconcile] Reconciliation failed: %v", err)
	}
	if err := s.stats.RefreshAllOfficerStats(); err != nil {
		logger.Errorf("[Reconcile] Recalibration failed: %v", err)
	}

	logger.Infof("[Reconcile] Nightly run complete")
}
