package audit

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	appCtx "github.com/baechuer/flatfile-auth/internal/pkg/context"
)

// Logger provides structured audit logging for auth business events
type Logger struct {
	log zerolog.Logger
}

// New creates a new audit logger
func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Record is the hook shape accepted by auth.Service.WithAudit.
// Known actions get their dedicated event; anything else is logged generically.
func (l *Logger) Record(ctx context.Context, action string, fields map[string]string) {
	switch action {
	case "user_registered":
		l.UserRegistered(ctx, fields["email"])
	case "login_success":
		l.LoginSuccess(ctx, fields["email"])
	case "login_failed":
		l.LoginFailed(ctx, fields["email"])
	case "role_changed":
		l.RoleChanged(ctx, fields["actor"], fields["target"], fields["old_role"], fields["new_role"])
	default:
		evt := l.log.Info().
			Str("action", action).
			Str("request_id", appCtx.GetRequestID(ctx))
		for k, v := range fields {
			if k == "email" || k == "actor" || k == "target" {
				v = maskEmail(v)
			}
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	}
}

// UserRegistered logs a new registration
func (l *Logger) UserRegistered(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "user_registered").
		Str("email", maskEmail(email)).
		Str("request_id", appCtx.GetRequestID(ctx)).
		Msg("User registered")
}

// LoginSuccess logs a successful login
func (l *Logger) LoginSuccess(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "login_success").
		Str("email", maskEmail(email)).
		Str("request_id", appCtx.GetRequestID(ctx)).
		Msg("User logged in successfully")
}

// LoginFailed logs a failed login attempt
func (l *Logger) LoginFailed(ctx context.Context, email string) {
	l.log.Warn().
		Str("action", "login_failed").
		Str("email", maskEmail(email)).
		Str("request_id", appCtx.GetRequestID(ctx)).
		Msg("Login attempt failed")
}

// RoleChanged logs when a user's role is changed
func (l *Logger) RoleChanged(ctx context.Context, actor, target, oldRole, newRole string) {
	l.log.Warn().
		Str("action", "role_changed").
		Str("actor", maskEmail(actor)).
		Str("target", maskEmail(target)).
		Str("old_role", oldRole).
		Str("new_role", newRole).
		Str("request_id", appCtx.GetRequestID(ctx)).
		Msg("User role changed")
}

// maskEmail keeps at most two leading characters of the local part plus the
// domain. Anything without a local part before '@' is masked entirely, since
// the raw value may be a session token or a mistyped password.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 || len(email) < 5 {
		return "***"
	}
	local := []rune(email[:at])
	keep := 2
	if len(local) < 3 {
		keep = 1
	}
	return string(local[:keep]) + "***" + email[at:]
}
