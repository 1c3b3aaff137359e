// Package testutil provides helpers for tests that need a real store.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nhle/crm/internal/model"
	"github.com/nhle/crm/internal/store"
)

// NewTestStore creates a SQLiteStore backed by a file in the test's temp
// directory, with all migrations applied. A file (rather than :memory:) is
// used so every pooled connection sees the same database. The store is
// closed automatically when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "crm-test.db"))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateUser seeds a user with the given email and returns it.
func CreateUser(t *testing.T, s *store.SQLiteStore, email string) *model.User {
	t.Helper()

	u := &model.User{Email: email}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seeding user %s: %v", email, err)
	}
	return u
}
