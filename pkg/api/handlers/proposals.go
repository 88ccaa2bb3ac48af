package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/freelanceflow/pkg/api/errors"
	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/metrics"
	"github.com/jordanlanch/freelanceflow/pkg/models"
	"github.com/jordanlanch/freelanceflow/pkg/proposals"
)

// ProposalsHandler handles proposal optimization and drafting.
type ProposalsHandler struct {
	service *proposals.Service
	metrics *metrics.Metrics
}

// NewProposalsHandler creates a new proposals handler.
func NewProposalsHandler(service *proposals.Service, m *metrics.Metrics) *ProposalsHandler {
	return &ProposalsHandler{service: service, metrics: m}
}

// Optimize godoc
// @Summary Optimize a proposal
// @Description Suggest templates, pricing and content improvements for a proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body models.OptimizeProposalRequest true "Optimization input"
// @Success 200 {object} models.ProposalOptimization
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/proposals/optimize [post]
func (h *ProposalsHandler) Optimize(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ws, err := workspaceID(c)
	if err != nil {
		return err
	}

	var req models.OptimizeProposalRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	start := time.Now()
	result, err := h.service.Optimize(ctx, ws, req)
	h.metrics.ObserveAnalysis("proposal_optimization", err, time.Since(start))
	if err != nil {
		if domain.IsNotFound(err) {
			return apierrors.NotFoundError(c, "client")
		}
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Draft godoc
// @Summary Draft a proposal
// @Description Generate a structured proposal draft from project parameters
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body models.DraftProposalRequest true "Draft input"
// @Success 200 {object} models.ProposalDraft
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/proposals/draft [post]
func (h *ProposalsHandler) Draft(c echo.Context) error {
	var req models.DraftProposalRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	start := time.Now()
	result := h.service.Draft(req)
	h.metrics.ObserveAnalysis("proposal_draft", nil, time.Since(start))

	return c.JSON(http.StatusOK, result)
}
