package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/freelanceflow/pkg/api/errors"
	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/metrics"
	"github.com/jordanlanch/freelanceflow/pkg/projectrisk"
)

// ProjectRiskHandler handles project risk analysis operations.
type ProjectRiskHandler struct {
	service *projectrisk.Service
	metrics *metrics.Metrics
}

// NewProjectRiskHandler creates a new project risk handler.
func NewProjectRiskHandler(service *projectrisk.Service, m *metrics.Metrics) *ProjectRiskHandler {
	return &ProjectRiskHandler{service: service, metrics: m}
}

// GetRisk godoc
// @Summary Analyze project risk
// @Description Compute the risk and completion forecast for a project
// @Tags Project Risk
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.RiskAnalysis
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/projects/{id}/risk [get]
func (h *ProjectRiskHandler) GetRisk(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ws, err := workspaceID(c)
	if err != nil {
		return err
	}
	projectID := c.Param("id")

	start := time.Now()
	result, err := h.service.Analyze(ctx, ws, projectID)
	h.metrics.ObserveAnalysis("project_risk", err, time.Since(start))
	if err != nil {
		if domain.IsNotFound(err) {
			return apierrors.NotFoundError(c, "project")
		}
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
