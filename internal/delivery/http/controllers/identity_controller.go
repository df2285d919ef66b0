package controllers

import (
	"log/slog"
	"net/http"

	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/domain"
)

// CreditRequest is the request body for POST /internal/users/{userID}/credits.
type CreditRequest struct {
	Point     int `json:"point"`
	DrawCount int `json:"draw_count"`
}

// Validate implements Validator.
func (c CreditRequest) Validate() []string {
	var errs []string
	if c.Point < 0 || c.DrawCount < 0 {
		errs = append(errs, "point and draw_count must not be negative")
	}
	if c.Point == 0 && c.DrawCount == 0 {
		errs = append(errs, "point or draw_count is required")
	}
	return errs
}

type StatsSuccessResponse struct {
	Data  *domain.UserAchievementStats `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// IdentityController serves the identity service's internal stats and credit API.
type IdentityController struct {
	Logger  *slog.Logger
	Service domain.CreditService
}

func NewIdentityController(logger *slog.Logger, svc domain.CreditService) *IdentityController {
	return &IdentityController{
		Logger:  logger,
		Service: svc,
	}
}

// @Summary Get a user's achievement counters
// @Tags internal
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} controllers.StatsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: user_not_found"
// @Router /internal/users/{userID}/stats [get]
func (c *IdentityController) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	stats, err := c.Service.GetStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// ApplyCredit increments the user's balances and returns the updated counters.
// @Summary Credit a user's point and draw count
// @Tags internal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param credit body CreditRequest true "Non-negative deltas"
// @Success 200 {object} controllers.StatsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: user_not_found"
// @Router /internal/users/{userID}/credits [post]
func (c *IdentityController) ApplyCredit(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	var req CreditRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	stats, err := c.Service.ApplyCredit(r.Context(), userID, domain.Credit{Point: req.Point, DrawCount: req.DrawCount})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
