package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError translates a typed error from the core into an HTTP response.
// Unclassified errors are reported as 500 without leaking their message.
func respondError(ctx echo.Context, err error) error {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrInvalidStateTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrBusinessRuleViolated):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrCollaboratorFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
