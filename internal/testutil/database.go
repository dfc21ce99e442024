// Package testutil provides test helpers for store-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/storage"
)

// SetupTestStore creates an in-memory SQLite store with migrations
// applied. Cleanup is registered automatically.
func SetupTestStore(t *testing.T) service.Store {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
