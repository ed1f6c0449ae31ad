package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// SetRole lets an admin session assign newRole to targetEmail.
// Checks run in order: admin authorization, role validity, target existence.
func (s *Service) SetRole(ctx context.Context, actingToken, targetEmail, newRole string) error {
	actor, err := s.Authorize(ctx, actingToken, domain.RoleAdmin)
	if err != nil {
		return err
	}

	if !domain.IsValidRole(newRole) {
		return domain.ErrInvalidRole(newRole)
	}

	// reload: the collection may have changed since Authorize read it
	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := domain.FindByEmail(users, targetEmail)
	if i < 0 {
		return domain.ErrUserNotFound()
	}

	oldRole := users[i].EffectiveRole()
	users[i].Role = domain.Role(newRole)
	if err := s.save(ctx, users); err != nil {
		return err
	}

	s.audit(ctx, "role_changed", map[string]string{
		"actor":    actor.Email,
		"target":   targetEmail,
		"old_role": string(oldRole),
		"new_role": newRole,
	})
	return nil
}
