package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/delivery/http/middleware"
	"eventrewards/internal/domain"
)

// GoalRequest is the goal object accepted when creating or updating an event.
type GoalRequest struct {
	Type        string `json:"type"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

func (g *GoalRequest) validate() []string {
	var errs []string
	switch domain.GoalKind(g.Type) {
	case domain.GoalKindAttendance, domain.GoalKindInvite:
	default:
		errs = append(errs, "goal.type must be attendance or invite")
	}
	if g.Count < 1 {
		errs = append(errs, "goal.count must be at least 1")
	}
	return errs
}

func (g *GoalRequest) goal() (domain.Goal, error) {
	return domain.NewGoal(domain.GoalKind(g.Type), g.Count, strings.TrimSpace(g.Description))
}

func validStatus(s string) bool {
	return domain.EventStatus(s).Valid()
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title     string       `json:"title"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Status    string       `json:"status"`
	Goal      *GoalRequest `json:"goal"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.StartTime.IsZero() || c.EndTime.IsZero() {
		errs = append(errs, "start_time and end_time are required")
	} else if !c.EndTime.After(c.StartTime) {
		errs = append(errs, "end_time must be after start_time")
	}
	if c.Status != "" && !validStatus(c.Status) {
		errs = append(errs, "status must be active or inactive")
	}
	if c.Goal == nil {
		errs = append(errs, "goal is required")
	} else {
		errs = append(errs, c.Goal.validate()...)
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Title     *string      `json:"title"`
	StartTime *time.Time   `json:"start_time"`
	EndTime   *time.Time   `json:"end_time"`
	Status    *string      `json:"status"`
	Goal      *GoalRequest `json:"goal"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title == nil && u.StartTime == nil && u.EndTime == nil && u.Status == nil && u.Goal == nil {
		errs = append(errs, "at least one field is required")
	}
	if u.Status != nil && !validStatus(*u.Status) {
		errs = append(errs, "status must be active or inactive")
	}
	if u.Goal != nil {
		errs = append(errs, u.Goal.validate()...)
	}
	return errs
}

// AddRewardRequest is the request body for POST /events/{eventID}/rewards.
type AddRewardRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// Validate implements Validator.
func (a AddRewardRequest) Validate() []string {
	var errs []string
	if !domain.RewardKind(a.Type).Valid() {
		errs = append(errs, "type must be point or drawCount")
	}
	if a.Quantity < 1 {
		errs = append(errs, "quantity must be a positive integer")
	}
	return errs
}

// UpdateRewardRequest is the request body for PATCH /events/{eventID}/rewards/{rewardID}.
type UpdateRewardRequest struct {
	Quantity int `json:"quantity"`
}

// Validate implements Validator.
func (u UpdateRewardRequest) Validate() []string {
	if u.Quantity < 1 {
		return []string{"quantity must be a positive integer"}
	}
	return nil
}

type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RewardSuccessResponse struct {
	Data  *domain.Reward    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent handles POST /events. New events are inactive unless status says otherwise.
// @Summary Create an event
// @Description Creates an event with its goal. Status defaults to inactive.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event to create"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	goal, err := req.Goal.goal()
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Title, req.StartTime, req.EndTime, domain.EventStatus(req.Status), goal, now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents handles GET /events. Users see active events only; staff see all.
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEvents(r.Context(), claims.Role)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent handles GET /events/{eventID} and returns the event with its rewards.
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// @Summary Update an event
// @Description Changes only the fields present in the body.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.EventUpdate{
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		upd.Status = &status
	}
	if req.Goal != nil {
		goal, err := req.Goal.goal()
		if err != nil {
			writeServiceError(w, r, c.Logger, err)
			return
		}
		upd.Goal = goal
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, upd)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// @Summary Add a reward to an event
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param reward body AddRewardRequest true "Reward kind and quantity"
// @Success 201 {object} controllers.RewardSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events/{eventID}/rewards [post]
func (c *EventController) AddReward(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req AddRewardRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reward, err := c.Service.AddReward(r.Context(), eventID, domain.RewardKind(req.Type), req.Quantity)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reward)
}

// @Summary Change a reward's quantity
// @Tags rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param rewardID path string true "Reward ID (UUID)"
// @Param reward body UpdateRewardRequest true "New quantity"
// @Success 200 {object} controllers.RewardSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rewards/{rewardID} [patch]
func (c *EventController) UpdateReward(w http.ResponseWriter, r *http.Request) {
	eventID, rewardID := r.PathValue("eventID"), r.PathValue("rewardID")
	if eventID == "" || rewardID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or rewardID")
		return
	}
	var req UpdateRewardRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reward, err := c.Service.UpdateReward(r.Context(), eventID, rewardID, req.Quantity)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reward)
}

// @Summary Remove a reward
// @Tags rewards
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param rewardID path string true "Reward ID (UUID)"
// @Success 204 "No Content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rewards/{rewardID} [delete]
func (c *EventController) RemoveReward(w http.ResponseWriter, r *http.Request) {
	eventID, rewardID := r.PathValue("eventID"), r.PathValue("rewardID")
	if eventID == "" || rewardID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or rewardID")
		return
	}
	if err := c.Service.RemoveReward(r.Context(), eventID, rewardID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
