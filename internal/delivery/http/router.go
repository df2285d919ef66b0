package http

import (
	"log/slog"
	"net/http"

	"eventrewards/internal/delivery/http/controllers"
	"eventrewards/internal/delivery/http/helpers"
	"eventrewards/internal/delivery/http/middleware"
	"eventrewards/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	members  = []domain.Role{domain.RoleUser, domain.RoleOperator, domain.RoleAuditor, domain.RoleAdmin}
	managers = []domain.Role{domain.RoleOperator, domain.RoleAdmin}
	staff    = []domain.Role{domain.RoleOperator, domain.RoleAuditor, domain.RoleAdmin}
)

func health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewEventRouter initializes the event service router. Every route except /healthz and /swagger/ requires a user token.
func NewEventRouter(events *controllers.EventController, requests *controllers.RewardRequestController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	manage := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(managers...)(next))
	}

	mux.HandleFunc("GET /healthz", health)

	// Events
	mux.HandleFunc("POST /events", manage(events.CreateEvent))
	mux.HandleFunc("GET /events", auth(events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", manage(events.UpdateEvent))

	// Rewards
	mux.HandleFunc("POST /events/{eventID}/rewards", manage(events.AddReward))
	mux.HandleFunc("PATCH /events/{eventID}/rewards/{rewardID}", manage(events.UpdateReward))
	mux.HandleFunc("DELETE /events/{eventID}/rewards/{rewardID}", manage(events.RemoveReward))

	// Reward requests
	mux.HandleFunc("POST /events/{eventID}/reward-requests", auth(requests.RequestReward))
	mux.HandleFunc("GET /reward-requests", auth(middleware.RequireRole(staff...)(requests.ListRewardRequests)))
	mux.HandleFunc("GET /me/reward-requests", auth(requests.ListMyRewardRequests))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewIdentityRouter initializes the identity service router.
// Internal routes accept service tokens only; /users routes accept user tokens.
func NewIdentityRouter(identity *controllers.IdentityController, users *controllers.UserController, serviceVerifier, userVerifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	internal := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(serviceVerifier, logger)(middleware.RequireRole(domain.RoleService)(next))
	}
	member := func(roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return middleware.RequireAuth(userVerifier, logger)(middleware.RequireRole(roles...)(next))
		}
	}

	mux.HandleFunc("GET /healthz", health)
	mux.HandleFunc("GET /internal/users/{userID}/stats", internal(identity.GetStats))
	mux.HandleFunc("POST /internal/users/{userID}/credits", internal(identity.ApplyCredit))

	mux.HandleFunc("GET /users/me", member(members...)(users.GetMe))
	mux.HandleFunc("PUT /users/{userID}/role", member(domain.RoleAdmin)(users.UpdateRole))

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
