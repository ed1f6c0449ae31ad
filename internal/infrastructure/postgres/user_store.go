package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/logger"
)

// UserStore keeps the whole collection as one JSON document in a single row
// of user_store, keyed by name. It is still a flat document store: the
// database adds durability, not per-record access or write serialization.
type UserStore struct {
	db   *sql.DB
	name string
}

func NewUserStore(db *sql.DB, name string) *UserStore {
	if name == "" {
		name = "users"
	}
	return &UserStore{db: db, name: name}
}

func (s *UserStore) Name() string { return s.name }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS user_store (
	name TEXT PRIMARY KEY,
	doc  JSON NOT NULL
);
`

func (s *UserStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure user_store schema: %w", err)
	}
	return nil
}

func (s *UserStore) Load(ctx context.Context) ([]domain.UserRecord, error) {
	const q = `
SELECT doc
FROM user_store
WHERE name = $1;
`
	var doc []byte
	err := s.db.QueryRowContext(ctx, q, s.name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.UserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user_store %s: %w", s.name, err)
	}

	users, err := domain.UnmarshalUsers(doc)
	if err != nil {
		logger.WithCtx(ctx).Warn().
			Err(err).
			Str("store", s.name).
			Msg("user store unparseable, treating as empty")
		return []domain.UserRecord{}, nil
	}
	return users, nil
}

func (s *UserStore) Save(ctx context.Context, users []domain.UserRecord) error {
	b, err := domain.MarshalUsers(users)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO user_store (name, doc)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc;
`
	if _, err := s.db.ExecContext(ctx, q, s.name, string(b)); err != nil {
		return fmt.Errorf("save user_store %s: %w", s.name, err)
	}
	return nil
}
