package controllers

import (
	"log/slog"
	"net/http"

	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/delivery/http/middleware"
	"eventrewards/internal/domain"
)

// UpdateRoleRequest is the request body for PUT /users/{userID}/role.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (u UpdateRoleRequest) Validate() []string {
	if u.Role == "" {
		return []string{"role is required"}
	}
	return nil
}

type ProfileSuccessResponse struct {
	Data  *domain.UserProfile `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// UserController serves the identity service's account routes.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMe returns the caller's own profile.
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: user_not_found"
// @Router /users/me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// @Summary Change a user's role
// @Description Admin only. Invalidates the user's older tokens by bumping their token version.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param role body UpdateRoleRequest true "New role"
// @Success 200 {object} controllers.ProfileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: user_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /users/{userID}/role [put]
func (c *UserController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	var req UpdateRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	profile, err := c.Service.UpdateRole(r.Context(), userID, req.Role)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "role updated", "user_id", userID, "role", req.Role)
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
