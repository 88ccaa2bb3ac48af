package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierrors "github.com/jordanlanch/freelanceflow/pkg/api/errors"
	"github.com/jordanlanch/freelanceflow/pkg/domain"
	"github.com/jordanlanch/freelanceflow/pkg/invoicing"
	"github.com/jordanlanch/freelanceflow/pkg/metrics"
	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// InvoicingHandler handles invoice automation.
type InvoicingHandler struct {
	service *invoicing.Service
	metrics *metrics.Metrics
}

// NewInvoicingHandler creates a new invoicing handler.
func NewInvoicingHandler(service *invoicing.Service, m *metrics.Metrics) *InvoicingHandler {
	return &InvoicingHandler{service: service, metrics: m}
}

// Automate godoc
// @Summary Automate an invoice
// @Description Propose invoice line items, payment terms and a follow-up schedule for a work period
// @Tags Invoicing
// @Accept json
// @Produce json
// @Param request body models.AutomateInvoiceRequest true "Automation input"
// @Success 200 {object} models.InvoiceAutomation
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/invoices/automate [post]
func (h *InvoicingHandler) Automate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ws, err := workspaceID(c)
	if err != nil {
		return err
	}

	var req models.AutomateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	start := time.Now()
	result, err := h.service.Automate(ctx, ws, req)
	h.metrics.ObserveAnalysis("invoice_automation", err, time.Since(start))
	if err != nil {
		if domain.IsNotFound(err) {
			return apierrors.NotFoundError(c, "project or client")
		}
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Content godoc
// @Summary Generate invoice content
// @Description Generate an invoice title, description and line items from a summary of completed work
// @Tags Invoicing
// @Accept json
// @Produce json
// @Param request body models.InvoiceContentRequest true "Content input"
// @Success 200 {object} models.InvoiceContent
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/invoices/content [post]
func (h *InvoicingHandler) Content(c echo.Context) error {
	var req models.InvoiceContentRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}
	if err := validate.Struct(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	start := time.Now()
	result := h.service.Content(req)
	h.metrics.ObserveAnalysis("invoice_content", nil, time.Since(start))

	return c.JSON(http.StatusOK, result)
}
