// Package container wires application dependencies together.
package container

import (
	"github.com/jordanlanch/freelanceflow/config"
	"github.com/jordanlanch/freelanceflow/pkg/analytics"
	"github.com/jordanlanch/freelanceflow/pkg/api/handlers"
	"github.com/jordanlanch/freelanceflow/pkg/cache"
	"github.com/jordanlanch/freelanceflow/pkg/invoicing"
	"github.com/jordanlanch/freelanceflow/pkg/jobs"
	"github.com/jordanlanch/freelanceflow/pkg/leadscoring"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/metrics"
	"github.com/jordanlanch/freelanceflow/pkg/projectrisk"
	"github.com/jordanlanch/freelanceflow/pkg/proposals"
	"github.com/jordanlanch/freelanceflow/pkg/store"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger logger.Logger

	// Infrastructure
	Store   *store.Postgres
	Cache   *cache.Client
	Metrics *metrics.Metrics

	// Services
	LeadScoringService *leadscoring.Service
	ProjectRiskService *projectrisk.Service
	ProposalService    *proposals.Service
	InvoicingService   *invoicing.Service
	AnalyticsService   *analytics.Service

	// Background jobs
	CronManager *jobs.CronManager

	// Handlers
	LeadScoringHandler *handlers.LeadScoringHandler
	ProjectRiskHandler *handlers.ProjectRiskHandler
	ProposalsHandler   *handlers.ProposalsHandler
	InvoicingHandler   *handlers.InvoicingHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
}

// New creates and initializes all application dependencies
func New(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger.New(cfg.LogLevel),
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initServices()
	c.initHandlers()

	c.Logger.Info("Container initialized successfully",
		"environment", cfg.APIEnvironment,
		"database", "connected")

	return c, nil
}

// initInfrastructure initializes database and cache connections. The cache
// is optional: a missing or unreachable Redis degrades to uncached scoring.
func (c *Container) initInfrastructure() error {
	var err error

	c.Store, err = store.NewPostgres(c.Config.DatabaseURL)
	if err != nil {
		c.Logger.Error("Failed to connect to database", "error", err)
		return err
	}

	if c.Config.RedisURL != "" {
		cacheClient, err := cache.NewClient(c.Config.RedisURL)
		if err != nil {
			c.Logger.Warn("Cache unavailable, continuing without score cache", "error", err)
		} else {
			c.Cache = cacheClient
		}
	}

	c.Metrics = metrics.New()

	c.Logger.Info("Infrastructure initialized",
		"database", "connected",
		"cache_enabled", c.Cache != nil)

	return nil
}

// initServices initializes all domain services
func (c *Container) initServices() {
	scoringCfg := leadscoring.DefaultConfig()
	scoringCfg.CohortLimit = c.Config.CohortLimit

	c.LeadScoringService = leadscoring.NewServiceWithConfig(c.Store, c.Logger, scoringCfg)
	c.ProjectRiskService = projectrisk.NewService(c.Store, c.Logger)
	c.ProposalService = proposals.NewService(c.Store, c.Logger)
	c.InvoicingService = invoicing.NewServiceWithHistoryLimit(c.Store, c.Logger, c.Config.InvoiceHistLimit)
	c.AnalyticsService = analytics.NewService(c.Store, c.Logger)

	if c.Config.RescoringEnabled {
		c.CronManager = jobs.NewCronManager(
			c.Store,
			c.LeadScoringService,
			c.Cache,
			c.Config.RescoringMaxAge,
			c.Config.RescoringBatch,
			c.Logger,
		)
	}

	c.Logger.Info("Services initialized",
		"lead_scoring", "ready",
		"project_risk", "ready",
		"proposals", "ready",
		"invoicing", "ready",
		"analytics", "ready")
}

// initHandlers initializes all HTTP handlers
func (c *Container) initHandlers() {
	c.LeadScoringHandler = handlers.NewLeadScoringHandler(
		c.LeadScoringService,
		c.Cache,
		c.AnalyticsService,
		c.Metrics,
		c.Config.ScoreCacheTTL,
		c.Logger,
	)
	c.ProjectRiskHandler = handlers.NewProjectRiskHandler(c.ProjectRiskService, c.Metrics)
	c.ProposalsHandler = handlers.NewProposalsHandler(c.ProposalService, c.Metrics)
	c.InvoicingHandler = handlers.NewInvoicingHandler(c.InvoicingService, c.Metrics)
	c.AnalyticsHandler = handlers.NewAnalyticsHandler(c.AnalyticsService)

	c.Logger.Info("Handlers initialized")
}

// Close closes all resources (database, cache connections)
func (c *Container) Close() error {
	c.Logger.Info("Shutting down container...")

	if c.CronManager != nil {
		c.CronManager.Stop()
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Error("Failed to close cache", "error", err)
		}
	}

	if err := c.Store.Close(); err != nil {
		c.Logger.Error("Failed to close database", "error", err)
		return err
	}

	c.Logger.Info("Container shutdown complete")
	return nil
}
