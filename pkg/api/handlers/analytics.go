package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/freelanceflow/pkg/analytics"
	apierrors "github.com/jordanlanch/freelanceflow/pkg/api/errors"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// AnalyticsHandler handles usage event tracking.
type AnalyticsHandler struct {
	service *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Track godoc
// @Summary Track an event
// @Description Record a usage event. Persistence is best-effort and never blocks the response.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body models.TrackEventRequest true "Event"
// @Success 202 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/events [post]
func (h *AnalyticsHandler) Track(c echo.Context) error {
	ws, err := workspaceID(c)
	if err != nil {
		return err
	}

	var req models.TrackEventRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	h.service.TrackAsync(c.Request().Context(), ws, req)

	return c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
}
