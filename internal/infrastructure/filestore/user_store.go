package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/logger"
)

// UserStore keeps the whole user collection in one indented JSON file.
//
// Save goes through a temp file + rename so readers never see a partial
// file. Load/Save pairs are not serialized: overlapping writers race and the
// last one wins.
type UserStore struct {
	path string
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) Path() string { return s.path }

func (s *UserStore) Load(ctx context.Context) ([]domain.UserRecord, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.UserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	users, err := domain.UnmarshalUsers(b)
	if err != nil {
		// corrupt file reads as "no users"; the next save overwrites it
		logger.WithCtx(ctx).Warn().
			Err(err).
			Str("path", s.path).
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

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
