package auth

import "context"

// Logout always succeeds; there is no server-side session to revoke.
// The transport clears the client's cookie.
func (s *Service) Logout(ctx context.Context) error {
	s.audit(ctx, "logout", nil)
	return nil
}
