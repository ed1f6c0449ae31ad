package middleware

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

type ctxKey string

const ctxUser ctxKey = "user"

func WithUser(ctx context.Context, u domain.UserRecord) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

func UserFromContext(ctx context.Context) (domain.UserRecord, bool) {
	u, ok := ctx.Value(ctxUser).(domain.UserRecord)
	return u, ok && u.Email != ""
}
