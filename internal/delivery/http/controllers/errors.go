package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/domain"
)

// writeServiceError maps domain errors to the API error envelope.
// ErrCreditNotApplied is checked first: it wraps whatever the identity service returned.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrCreditNotApplied):
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeCreditNotApplied, domain.ErrCreditNotApplied.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeEventNotFound, "event not found")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeUserNotFound, "user not found")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrNoRewardConfigured):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeNoRewardConfigured, "no reward configured for event")
	case errors.Is(err, domain.ErrDuplicateReward), errors.Is(err, domain.ErrRoleAlreadySet):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrIdentityUnavailable):
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeIdentityUnavailable, "identity service unavailable")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
