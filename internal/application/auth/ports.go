package auth

import (
	"context"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

/*
UserStore
---------
Persistence port for the whole user collection.
Every operation loads the full collection, decides, and (when it mutates)
saves the full collection back. There is no per-record API and no lock
around the load/save pair: two overlapping writers can lose an update,
last writer wins.

Load contract:
  - missing resource      -> empty collection, nil error
  - unparseable resource  -> empty collection, nil error
  - any other read failure -> error
*/
type UserStore interface {
	Load(ctx context.Context) ([]domain.UserRecord, error)
	Save(ctx context.Context, users []domain.UserRecord) error
}

// AuditFunc receives one business event with flat string fields.
type AuditFunc func(ctx context.Context, action string, fields map[string]string)
