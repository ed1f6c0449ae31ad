package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// Identify resolves a session token to its user record. ok is false for an
// empty token or a token naming no stored user (e.g. deleted after login).
func (s *Service) Identify(ctx context.Context, token string) (u domain.UserRecord, ok bool, err error) {
	if token == "" {
		return domain.UserRecord{}, false, nil
	}

	users, err := s.load(ctx)
	if err != nil {
		return domain.UserRecord{}, false, err
	}

	i := domain.FindByEmail(users, token)
	if i < 0 {
		return domain.UserRecord{}, false, nil
	}
	return users[i], true, nil
}

// identified is Identify with "no user" turned into NotLoggedIn.
func (s *Service) identified(ctx context.Context, token string) (domain.UserRecord, error) {
	u, ok, err := s.Identify(ctx, token)
	if err != nil {
		return domain.UserRecord{}, err
	}
	if !ok {
		return domain.UserRecord{}, domain.ErrNotLoggedIn()
	}
	return u, nil
}

// GetProfile returns the caller's profile with legacy defaults applied.
func (s *Service) GetProfile(ctx context.Context, token string) (domain.ProfileView, error) {
	u, err := s.identified(ctx, token)
	if err != nil {
		return domain.ProfileView{}, err
	}
	return u.Profile(), nil
}
