package memory

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/logger"
)

// Store is the persistence surface SeedUsers needs; every backend satisfies it.
type Store interface {
	Load(ctx context.Context) ([]domain.UserRecord, error)
	Save(ctx context.Context, users []domain.UserRecord) error
}

type seedUser struct {
	Email string
	Role  domain.Role
	Pass  string
}

var devSeeds = []seedUser{
	{Email: "admin@example.com", Role: domain.RoleAdmin, Pass: "AdminPassword123!"},
	{Email: "moderator@example.com", Role: domain.RoleModerator, Pass: "ModeratorPassword123!"},
	{Email: "user@example.com", Role: domain.RoleUser, Pass: "UserPassword123!"},
}

// SeedUsers adds one account per role for local development.
// Safe to call multiple times (existing emails are left untouched).
func SeedUsers(ctx context.Context, store Store) error {
	users, err := store.Load(ctx)
	if err != nil {
		return err
	}

	added := 0
	for _, s := range devSeeds {
		if domain.FindByEmail(users, s.Email) >= 0 {
			continue
		}
		u := domain.NewUserRecord(s.Email, s.Pass)
		u.Role = s.Role
		users = append(users, u)
		added++
	}
	if added == 0 {
		return nil
	}

	if err := store.Save(ctx, users); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info().Int("added", added).Msg("[seed] dev users seeded")
	return nil
}
