// Package errors maps engine failures to generic API responses without
// exposing internal details.
package errors

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/freelanceflow/pkg/models"
)

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested resource was not found.",
	})
}

// InternalError returns a generic internal server error. Callers see
// "analysis failed, retry"; the actual cause only reaches the logs.
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "Analysis failed. Please try again later.",
	})
}
