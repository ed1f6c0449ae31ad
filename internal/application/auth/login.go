package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// Login returns the session token for a matching email/password pair.
// The token is the email itself.
// IMPORTANT: unknown email and wrong password fail with the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	users, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			s.audit(ctx, "login_success", map[string]string{"email": email})
			return u.Email, nil
		}
	}

	s.audit(ctx, "login_failed", map[string]string{"email": email})
	return "", domain.ErrInvalidCredentials()
}
