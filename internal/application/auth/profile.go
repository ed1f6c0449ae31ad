package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// UpdateDisplayName replaces the session user's display name.
// No length bound is enforced.
func (s *Service) UpdateDisplayName(ctx context.Context, token, newName string) error {
	return s.updateOwn(ctx, token, "displayName", newName, "display_name_updated", func(u *domain.UserRecord) {
		u.DisplayName = newName
	})
}

// UpdateProfilePicture stores image on the session user's record as-is.
// The content is opaque: no decoding, type or size check.
func (s *Service) UpdateProfilePicture(ctx context.Context, token, image string) error {
	return s.updateOwn(ctx, token, "image", image, "profile_picture_updated", func(u *domain.UserRecord) {
		img := image
		u.ProfilePicture = &img
	})
}

func (s *Service) updateOwn(
	ctx context.Context,
	token, field, value, action string,
	apply func(u *domain.UserRecord),
) error {
	if token == "" {
		return domain.ErrNotLoggedIn()
	}

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := domain.FindByEmail(users, token)
	if i < 0 {
		return domain.ErrNotLoggedIn()
	}
	if value == "" {
		return domain.ErrMissingField(field)
	}

	apply(&users[i])
	if err := s.save(ctx, users); err != nil {
		return err
	}

	s.audit(ctx, action, map[string]string{"email": token})
	return nil
}
