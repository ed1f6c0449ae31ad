package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// Authorize checks that the session's user may act with required.
// Admin passes every check; any other role must equal required exactly.
// The identified record is returned on success.
func (s *Service) Authorize(ctx context.Context, token string, required domain.Role) (domain.UserRecord, error) {
	u, err := s.identified(ctx, token)
	if err != nil {
		return domain.UserRecord{}, err
	}

	if !u.EffectiveRole().Satisfies(required) {
		s.audit(ctx, "authorization_denied", map[string]string{
			"email":    u.Email,
			"role":     string(u.EffectiveRole()),
			"required": string(required),
		})
		return domain.UserRecord{}, domain.ErrForbidden(required)
	}
	return u, nil
}
