package controllers

import (
	"log/slog"
	"net/http"

	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/delivery/http/middleware"
	"eventrewards/internal/domain"
)

// RequestRewardResponse is the data of a completed reward request.
type RequestRewardResponse struct {
	Status domain.RequestStatus `json:"status"`
}

// RewardRequestListResponse is the data of a ledger listing.
type RewardRequestListResponse struct {
	Items    []*domain.RewardRequest `json:"items"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

type RequestRewardSuccessResponse struct {
	Data  *RequestRewardResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type RewardRequestListSuccessResponse struct {
	Data  *RewardRequestListResponse `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

type RewardRequestController struct {
	Logger  *slog.Logger
	Rewards domain.RewardService
	Events  domain.EventService
}

func NewRewardRequestController(logger *slog.Logger, rewards domain.RewardService, events domain.EventService) *RewardRequestController {
	return &RewardRequestController{
		Logger:  logger,
		Rewards: rewards,
		Events:  events,
	}
}

// RequestReward handles POST /events/{eventID}/reward-requests for the authenticated user.
// failed and duplicate are recorded outcomes and return 201 like success.
// @Summary Request an event's reward
// @Description Checks the caller's progress against the event goal, records the outcome and credits the identity service on success.
// @Tags reward-requests
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.RequestRewardSuccessResponse "data.status is success, failed or duplicate"
// @Failure 400 {object} helpers.APIResponse "error.code: no_reward_configured"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found, user_not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: identity_unavailable, credit_not_applied"
// @Router /events/{eventID}/reward-requests [post]
func (c *RewardRequestController) RequestReward(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	status, err := c.Rewards.RequestReward(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RequestRewardResponse{Status: status})
}

// ListRewardRequests handles GET /reward-requests. event_id takes precedence over status.
// @Summary List reward requests
// @Tags reward-requests
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Filter by event"
// @Param status query string false "Filter by status" Enums(success, failed, duplicate)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20) maximum(100)
// @Success 200 {object} controllers.RewardRequestListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /reward-requests [get]
func (c *RewardRequestController) ListRewardRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.RewardRequestFilter{
		EventID: q.Get("event_id"),
		Status:  domain.RequestStatus(q.Get("status")),
	}
	page, err := helpers.ParsePagination(r)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	reqs, err := c.Events.ListRewardRequests(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RewardRequestListResponse{Items: reqs, Page: page.Page, PageSize: page.PageSize})
}

// ListMyRewardRequests handles GET /me/reward-requests.
// @Summary List the caller's reward requests
// @Tags reward-requests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20) maximum(100)
// @Success 200 {object} controllers.RewardRequestListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me/reward-requests [get]
func (c *RewardRequestController) ListMyRewardRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	page, err := helpers.ParsePagination(r)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	reqs, err := c.Events.ListUserRewardRequests(r.Context(), userID, page)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RewardRequestListResponse{Items: reqs, Page: page.Page, PageSize: page.PageSize})
}
