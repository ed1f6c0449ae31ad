package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/baechuer/flatfile-auth/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	// Core auth
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)

	// Role-gated
	ModeratorArea(w http.ResponseWriter, r *http.Request)
	AdminArea(w http.ResponseWriter, r *http.Request)
	SetRole(w http.ResponseWriter, r *http.Request)

	// Profile
	UpdateDisplayName(w http.ResponseWriter, r *http.Request)
	UpdateProfilePicture(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	ModMW   func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler

	// Metrics serves /metrics when non-nil.
	Metrics http.Handler

	AllowedOrigins []string

	// HSTS adds Strict-Transport-Security to every response.
	HSTS bool
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.ModMW == nil {
		return nil, fmt.Errorf("nil Mod middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(deps.HSTS))

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	// --- Core auth ---
	r.Post("/register", deps.Auth.Register)
	r.Post("/login", deps.Auth.Login)
	r.Post("/logout", deps.Auth.Logout)
	r.Get("/me", deps.Auth.Me)

	// --- Role-gated ---
	r.With(deps.ModMW).Get("/moderator-area", deps.Auth.ModeratorArea)
	r.With(deps.AdminMW).Get("/admin-area", deps.Auth.AdminArea)
	// the service runs its own admin check before reading the body
	r.Post("/set-role", deps.Auth.SetRole)

	// --- Profile ---
	r.Post("/update-display-name", deps.Auth.UpdateDisplayName)
	r.Post("/update-profile-picture", deps.Auth.UpdateProfilePicture)

	return r, nil
}
