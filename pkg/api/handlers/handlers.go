// Package handlers exposes the scoring engine over HTTP. Each handler runs
// one module per request: read records, compute synchronously, optionally
// persist, return the result.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// WorkspaceHeader carries the tenant id. Authorization enforcement lives
// upstream; the engine only uses it to scope every read.
const WorkspaceHeader = "X-Workspace-ID"

const requestTimeout = 10 * time.Second

var validate = validator.New()

// workspaceID extracts the tenant id from the request, failing the request
// when absent since every engine query must be workspace-scoped.
func workspaceID(c echo.Context) (string, error) {
	ws := c.Request().Header.Get(WorkspaceHeader)
	if ws == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing_workspace",
			Message: "X-Workspace-ID header is required",
		})
	}
	return ws, nil
}
