package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

type Service struct {
	users UserStore
	audit AuditFunc
}

func NewService(users UserStore) *Service {
	return &Service{
		users: users,
		audit: func(context.Context, string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn AuditFunc) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

func (s *Service) load(ctx context.Context) ([]domain.UserRecord, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, domain.ErrStoreUnavailable(err)
	}
	return users, nil
}

func (s *Service) save(ctx context.Context, users []domain.UserRecord) error {
	if err := s.users.Save(ctx, users); err != nil {
		return domain.ErrStoreUnavailable(err)
	}
	return nil
}

// Ready reports whether the store can currently be read.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}
