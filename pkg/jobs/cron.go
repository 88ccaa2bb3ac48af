// Package jobs runs background maintenance work on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jordanlanch/freelanceflow/pkg/cache"
	"github.com/jordanlanch/freelanceflow/pkg/leadscoring"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

const rescoreTimeout = 10 * time.Minute

// StaleLeadStore lists leads whose persisted score has gone stale.
type StaleLeadStore interface {
	ListStaleScoredLeads(ctx context.Context, maxAge time.Duration, limit int) ([]models.Lead, error)
}

// CronManager manages scheduled jobs.
type CronManager struct {
	cron      *cron.Cron
	store     StaleLeadStore
	scorer    *leadscoring.Service
	cache     *cache.Client
	maxAge    time.Duration
	batchSize int
	log       logger.Logger
}

// NewCronManager creates a new cron manager. cache may be nil when no Redis
// is configured.
func NewCronManager(store StaleLeadStore, scorer *leadscoring.Service, cacheClient *cache.Client, maxAge time.Duration, batchSize int, log logger.Logger) *CronManager {
	return &CronManager{
		cron:      cron.New(),
		store:     store,
		scorer:    scorer,
		cache:     cacheClient,
		maxAge:    maxAge,
		batchSize: batchSize,
		log:       log,
	}
}

// SetupJobs configures all scheduled jobs.
func (cm *CronManager) SetupJobs() error {
	// Nightly at 2 AM: refresh scores that are older than the staleness window.
	_, err := cm.cron.AddFunc("0 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), rescoreTimeout)
		defer cancel()
		cm.RescoreStaleLeads(ctx)
	})
	if err != nil {
		return err
	}

	cm.log.Info("cron jobs configured", "rescore_schedule", "0 2 * * *", "batch_size", cm.batchSize)
	return nil
}

// RescoreStaleLeads refreshes up to batchSize stale lead scores. A single
// failed lead is logged and skipped so one bad record cannot stall the batch.
func (cm *CronManager) RescoreStaleLeads(ctx context.Context) {
	cm.log.Info("running stale lead re-scoring job")

	leads, err := cm.store.ListStaleScoredLeads(ctx, cm.maxAge, cm.batchSize)
	if err != nil {
		cm.log.Error("failed to list stale leads", "error", err)
		return
	}
	if len(leads) == 0 {
		cm.log.Info("no stale lead scores found")
		return
	}

	rescored := 0
	for _, lead := range leads {
		if _, err := cm.scorer.ScoreAndPersist(ctx, lead.WorkspaceID, lead.ID); err != nil {
			cm.log.Warn("failed to re-score lead",
				"workspace_id", lead.WorkspaceID, "lead_id", lead.ID, "error", err)
			continue
		}
		if cm.cache != nil {
			if err := cm.cache.InvalidateScore(ctx, lead.WorkspaceID, lead.ID); err != nil {
				cm.log.Warn("failed to invalidate cached score",
					"workspace_id", lead.WorkspaceID, "lead_id", lead.ID, "error", err)
			}
		}
		rescored++
	}

	cm.log.Info("stale lead re-scoring job completed",
		"stale", len(leads), "rescored", rescored)
}

// Start starts the cron scheduler.
func (cm *CronManager) Start() {
	cm.log.Info("starting cron scheduler")
	cm.cron.Start()
}

// Stop stops the cron scheduler.
func (cm *CronManager) Stop() {
	cm.log.Info("stopping cron scheduler")
	cm.cron.Stop()
}
