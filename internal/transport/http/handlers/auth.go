package http_handlers

import (
	"net/http"

	"github.com/baechuer/flatfile-auth/internal/application/auth"
	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/security"
	"github.com/baechuer/flatfile-auth/internal/logger"
	"github.com/baechuer/flatfile-auth/internal/transport/http/dto"
	"github.com/baechuer/flatfile-auth/internal/transport/http/middleware"
	"github.com/baechuer/flatfile-auth/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.Decode(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Register(r.Context(), req.Email, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Msg("user_registered")
	response.OK(w, "registered")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.Decode(r, &req); err != nil {
		// /login fails one way only
		middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		response.WriteError(w, r, domain.ErrInvalidCredentials())
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status := "error"
		if domain.Is(err, domain.CodeInvalidCredentials) {
			status = "invalid_credentials"
		}
		middleware.LoginAttemptsTotal.WithLabelValues(status).Inc()
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	security.SetSession(w, token)
	response.OK(w, "logged in")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.svc.Logout(r.Context())
	security.ClearSession(w)
	response.OK(w, "logged out")
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), security.ReadSession(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, p)
}

// ModeratorArea and AdminArea sit behind middleware.RequireRole.
func (h *AuthHandler) ModeratorArea(w http.ResponseWriter, r *http.Request) {
	logAreaAccess(r, "moderator")
	response.OK(w, "Welcome moderator")
}

func (h *AuthHandler) AdminArea(w http.ResponseWriter, r *http.Request) {
	logAreaAccess(r, "admin")
	response.OK(w, "Welcome admin")
}

func logAreaAccess(r *http.Request, area string) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return
	}
	logger.WithCtx(r.Context()).Debug().
		Str("area", area).
		Str("role", string(u.EffectiveRole())).
		Msg("area_access")
}

// SetRole handles POST /set-role. The admin check runs in the service; an
// undecodable body is only reported to a caller who passes it.
func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRoleRequest
	if err := h.decodeGated(r, &req, h.requireAdmin); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.SetRole(r.Context(), security.ReadSession(r), req.Email, req.Role); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "role updated")
}

func (h *AuthHandler) UpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDisplayNameRequest
	if err := h.decodeGated(r, &req, h.requireSession); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.UpdateDisplayName(r.Context(), security.ReadSession(r), req.DisplayName); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "display name updated")
}

func (h *AuthHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfilePictureRequest
	if err := h.decodeGated(r, &req, h.requireSession); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.UpdateProfilePicture(r.Context(), security.ReadSession(r), req.Image); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "profile picture updated")
}

// decodeGated decodes the body into dst. When that fails, gate decides the
// response first, so session and role errors outrank body errors.
func (h *AuthHandler) decodeGated(r *http.Request, dst any, gate func(*http.Request) error) error {
	err := response.Decode(r, dst)
	if err == nil {
		return nil
	}
	if gerr := gate(r); gerr != nil {
		return gerr
	}
	return err
}

func (h *AuthHandler) requireSession(r *http.Request) error {
	_, ok, err := h.svc.Identify(r.Context(), security.ReadSession(r))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotLoggedIn()
	}
	return nil
}

func (h *AuthHandler) requireAdmin(r *http.Request) error {
	_, err := h.svc.Authorize(r.Context(), security.ReadSession(r), domain.RoleAdmin)
	return err
}
