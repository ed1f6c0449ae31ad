package http_handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/flatfile-auth/internal/logger"
	"github.com/baechuer/flatfile-auth/internal/transport/http/response"
)

// ReadyChecker reports whether the user store can be read.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

type HealthHandler struct {
	ready ReadyChecker
}

func NewHealthHandler(ready ReadyChecker) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Healthz handles GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready.Ready(r.Context()); err != nil {
			logger.WithCtx(r.Context()).Warn().Err(err).Msg("readiness check failed")
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  "user store unavailable",
			})
			return
		}
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
