package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request. Code is a
// stable machine-readable string; Message is for humans and may change.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps a use-case error onto an HTTP status and a stable code.
// Unknown errors become 500 without leaking internals to the caller.
func respondError(ctx echo.Context, err error) error {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	return ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, identity.ErrTokenRejected):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusConflict, "illegal_transition"
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, errs.ErrDuplicateRating):
		return http.StatusConflict, "duplicate_rating"
	case errors.Is(err, errs.ErrCourierInactive):
		return http.StatusConflict, "courier_inactive"
	case errors.Is(err, errs.ErrConfirmationRequired):
		return http.StatusBadRequest, "confirmation_required"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
