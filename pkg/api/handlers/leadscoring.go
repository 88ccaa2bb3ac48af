package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/freelanceflow/pkg/api/errors"
	"github.com/jordanlanch/freelanceflow/pkg/analytics"
	"github.com/jordanlanch/freelanceflow/pkg/cache"
	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/leadscoring"
	"github.com/jordanlanch/freelanceflow/pkg/logger"
	"github.com/jordanlanch/freelanceflow/pkg/metrics"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// LeadScoringHandler handles lead scoring operations.
type LeadScoringHandler struct {
	service  *leadscoring.Service
	cache    *cache.Client
	tracker  *analytics.Service
	metrics  *metrics.Metrics
	cacheTTL time.Duration
	log      logger.Logger
}

// NewLeadScoringHandler creates a new lead scoring handler. cache may be nil
// when no Redis is configured.
func NewLeadScoringHandler(service *leadscoring.Service, cacheClient *cache.Client, tracker *analytics.Service, m *metrics.Metrics, cacheTTL time.Duration, log logger.Logger) *LeadScoringHandler {
	return &LeadScoringHandler{
		service:  service,
		cache:    cacheClient,
		tracker:  tracker,
		metrics:  m,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetScore godoc
// @Summary Get lead score
// @Description Return the cached scoring result for a lead, computing it on a cache miss
// @Tags Lead Scoring
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.ScoringResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/leads/{id}/score [get]
func (h *LeadScoringHandler) GetScore(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ws, err := workspaceID(c)
	if err != nil {
		return err
	}
	leadID := c.Param("id")

	if h.cache != nil {
		if cached, err := h.cache.GetScore(ctx, ws, leadID); err != nil {
			h.log.Warn("score cache read failed", "lead_id", leadID, "error", err)
		} else if cached != nil {
			return c.JSON(http.StatusOK, cached)
		}
	}

	start := time.Now()
	result, err := h.service.Score(ctx, ws, leadID)
	h.metrics.ObserveAnalysis("lead_scoring", err, time.Since(start))
	if err != nil {
		if domain.IsNotFound(err) {
			return apierrors.NotFoundError(c, "lead")
		}
		return apierrors.InternalError(c, err)
	}

	if h.cache != nil {
		if err := h.cache.SetScore(ctx, ws, leadID, result, h.cacheTTL); err != nil {
			h.log.Warn("score cache write failed", "lead_id", leadID, "error", err)
		}
	}

	return c.JSON(http.StatusOK, result)
}

// RunAnalysis godoc
// @Summary Run lead analysis
// @Description Score a lead and persist the result back onto the lead record
// @Tags Lead Scoring
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.ScoringResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/leads/{id}/score [post]
func (h *LeadScoringHandler) RunAnalysis(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ws, err := workspaceID(c)
	if err != nil {
		return err
	}
	leadID := c.Param("id")

	start := time.Now()
	result, err := h.service.ScoreAndPersist(ctx, ws, leadID)
	h.metrics.ObserveAnalysis("lead_scoring", err, time.Since(start))
	if err != nil {
		if domain.IsNotFound(err) {
			return apierrors.NotFoundError(c, "lead")
		}
		return apierrors.InternalError(c, err)
	}

	if h.cache != nil {
		if err := h.cache.SetScore(ctx, ws, leadID, result, h.cacheTTL); err != nil {
			h.log.Warn("score cache write failed", "lead_id", leadID, "error", err)
		}
	}

	h.tracker.TrackAsync(ctx, ws, models.TrackEventRequest{
		Type:       "lead_analyzed",
		EntityType: "lead",
		EntityID:   leadID,
		Properties: map[string]interface{}{
			"final_score": result.FinalScore,
			"priority":    result.NextActions.Priority,
		},
	})

	return c.JSON(http.StatusOK, result)
}
