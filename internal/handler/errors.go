package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/search"
	"github.com/dharmasatrya/ticketkini/internal/session"
)

const loginPath = "/login"

// writeError maps an error from any layer to the JSON error body the pages
// expect. Authentication failures carry a redirect to the login page.
func writeError(c echo.Context, err error) error {
	var ve models.ValidationError
	var apiErr *api.APIError

	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: ve.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrSessionExpired),
		errors.Is(err, session.ErrInvalidToken),
		errors.Is(err, api.ErrUnauthorized):
		return unauthorized(c, authMessage(err))
	case errors.Is(err, api.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: messageOf(err, "Not found"),
			Code:    http.StatusNotFound,
		})
	case errors.Is(err, search.ErrSearchInProgress):
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "search_in_progress",
			Message: "A search is already running",
			Code:    http.StatusConflict,
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
			Error:   "upstream_timeout",
			Message: "The booking service took too long to answer",
			Code:    http.StatusGatewayTimeout,
		})
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: messageOf(err, "Invalid request"),
			Code:    http.StatusBadRequest,
		})
	}

	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "upstream_error",
		Message: messageOf(err, "The booking service is unavailable"),
		Code:    http.StatusBadGateway,
	})
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:    "unauthorized",
		Message:  message,
		Code:     http.StatusUnauthorized,
		Redirect: loginPath,
	})
}

func authMessage(err error) string {
	if errors.Is(err, session.ErrSessionExpired) {
		return "Your session has expired. Please log in again."
	}
	return messageOf(err, "Please log in to continue.")
}

// messageOf prefers the remote API's own message.
func messageOf(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
