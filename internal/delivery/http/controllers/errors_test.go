package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", fmt.Errorf("%w: title is required", domain.ErrInvalidInput), http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"event not found", domain.ErrEventNotFound, http.StatusNotFound, helpers.ErrCodeEventNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, helpers.ErrCodeUserNotFound},
		{"generic not found", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"no reward configured", domain.ErrNoRewardConfigured, http.StatusBadRequest, helpers.ErrCodeNoRewardConfigured},
		{"duplicate reward kind", domain.ErrDuplicateReward, http.StatusConflict, helpers.ErrCodeConflict},
		{"role already set", domain.ErrRoleAlreadySet, http.StatusConflict, helpers.ErrCodeConflict},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, helpers.ErrCodeForbidden},
		{"identity unavailable", fmt.Errorf("%w: status 503", domain.ErrIdentityUnavailable), http.StatusBadGateway, helpers.ErrCodeIdentityUnavailable},
		{
			"credit not applied wins over identity unavailable",
			fmt.Errorf("%w: drawCount: %w", domain.ErrCreditNotApplied, domain.ErrIdentityUnavailable),
			http.StatusBadGateway,
			helpers.ErrCodeCreditNotApplied,
		},
		{
			"credit not applied wins over user not found",
			&domain.IssuanceError{
				Phase: domain.PhaseCreditFailed,
				Step:  domain.StepCreditApply,
				Err:   fmt.Errorf("%w: point: %w", domain.ErrCreditNotApplied, domain.ErrUserNotFound),
			},
			http.StatusBadGateway,
			helpers.ErrCodeCreditNotApplied,
		},
		{
			"credit not applied wins over invalid input",
			fmt.Errorf("%w: drawCount: %w", domain.ErrCreditNotApplied, domain.ErrInvalidInput),
			http.StatusBadGateway,
			helpers.ErrCodeCreditNotApplied,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)

			writeServiceError(rr, req, testLogger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Nil(t, envelope.Data)
		})
	}
}
