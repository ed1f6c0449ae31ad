package memory

import (
	"context"
	"sync"

	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/logger"
)

// UserStore holds the serialized collection in memory. Every Load/Save goes
// through the same JSON form the file backend writes, so callers never share
// slices with the store.
//
// The mutex guards the byte slice only. A load-mutate-save cycle is not
// atomic here either.
type UserStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

// NewUserStoreFromJSON starts the store with raw persisted content,
// valid or not.
func NewUserStoreFromJSON(raw []byte) *UserStore {
	return &UserStore{data: append([]byte(nil), raw...)}
}

func (s *UserStore) Load(ctx context.Context) ([]domain.UserRecord, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data == nil {
		return []domain.UserRecord{}, nil
	}
	users, err := domain.UnmarshalUsers(data)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Str("backend", "memory").Msg("user store unparseable, treating as empty")
		return []domain.UserRecord{}, nil
	}
	return users, nil
}

func (s *UserStore) Save(ctx context.Context, users []domain.UserRecord) error {
	b, err := domain.MarshalUsers(users)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = b
	s.mu.Unlock()
	return nil
}

// Raw returns a copy of the persisted bytes.
func (s *UserStore) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...)
}
