package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/baechuer/flatfile-auth/internal/domain"
)

// fakeStore keeps the collection as JSON so tests see the same copy
// semantics as the real backends.
type fakeStore struct {
	mu    sync.Mutex
	data  []byte
	saves int

	loadErr error
	saveErr error
}

func newFakeStore(t *testing.T, users ...domain.UserRecord) *fakeStore {
	t.Helper()
	s := &fakeStore{}
	if len(users) > 0 {
		b, err := json.Marshal(users)
		if err != nil {
			t.Fatalf("marshal seed: %v", err)
		}
		s.data = b
	}
	return s
}

func (s *fakeStore) Load(ctx context.Context) ([]domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	var users []domain.UserRecord
	if len(s.data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(s.data, &users); err != nil {
		return nil, nil
	}
	return users, nil
}

func (s *fakeStore) Save(ctx context.Context, users []domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}
	s.data = b
	s.saves++
	return nil
}

func (s *fakeStore) snapshot(t *testing.T) []domain.UserRecord {
	t.Helper()
	users, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return users
}

type auditEntry struct {
	action string
	fields map[string]string
}

func newSvcForTest(t *testing.T, users ...domain.UserRecord) (*Service, *fakeStore, *[]auditEntry) {
	t.Helper()
	store := newFakeStore(t, users...)
	audits := &[]auditEntry{}
	svc := NewService(store).WithAudit(func(_ context.Context, action string, fields map[string]string) {
		*audits = append(*audits, auditEntry{action: action, fields: fields})
	})
	return svc, store, audits
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected domain error with code %q, got %v", code, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}

func requireAuditAction(t *testing.T, audits *[]auditEntry, action string) auditEntry {
	t.Helper()
	for _, e := range *audits {
		if e.action == action {
			return e
		}
	}
	t.Fatalf("expected audit action %q, got %+v", action, *audits)
	return auditEntry{}
}

func strPtr(s string) *string { return &s }
