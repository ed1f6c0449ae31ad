package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// Register appends a new user with role "user" and the email's local part
// as display name. The password is stored exactly as submitted.
func (s *Service) Register(ctx context.Context, email, password string) error {
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.ErrMissingField("password")
	}

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	if domain.FindByEmail(users, email) >= 0 {
		return domain.ErrAlreadyExists()
	}

	users = append(users, domain.NewUserRecord(email, password))
	if err := s.save(ctx, users); err != nil {
		return err
	}

	s.audit(ctx, "user_registered", map[string]string{"email": email})
	return nil
}
