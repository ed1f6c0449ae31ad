package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/logger"
)

// UserStore keeps the whole collection as one JSON string under key.
// GET then SET, with no WATCH/MULTI around the pair: last writer wins,
// exactly like the file backend.
type UserStore struct {
	rdb *goredis.Client
	key string
}

func NewUserStore(c *Client, key string) *UserStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	if key == "" {
		key = "users"
	}
	return &UserStore{rdb: rdb, key: key}
}

func (s *UserStore) Key() string { return s.key }

func (s *UserStore) Load(ctx context.Context) ([]domain.UserRecord, error) {
	if s.rdb == nil {
		return nil, errors.New("redis user store not configured")
	}

	b, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []domain.UserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	users, err := domain.UnmarshalUsers(b)
	if err != nil {
		logger.WithCtx(ctx).Warn().
			Err(err).
			Str("key", s.key).
			Msg("user store unparseable, treating as empty")
		return []domain.UserRecord{}, nil
	}
	return users, nil
}

func (s *UserStore) Save(ctx context.Context, users []domain.UserRecord) error {
	if s.rdb == nil {
		return errors.New("redis user store not configured")
	}

	b, err := domain.MarshalUsers(users)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
