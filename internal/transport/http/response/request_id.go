package response

import (
	"net/http"

	appCtx "github.com/baechuer/flatfile-auth/internal/pkg/context"
)

// RequestIDFromContext extracts the id set by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	return appCtx.GetRequestID(r.Context())
}
