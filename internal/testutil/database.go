// Package testutil provides shared test fixtures: an in-memory migrated
// database plus deterministic clock and id fakes.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/every-penny/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database and registers
// cleanup on the test.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

// Now returns the configured instant.
func (c *FixedClock) Now() time.Time {
	return c.Time
}

// SequentialIDs mints id-1, id-2, ... deterministically. Safe for
// concurrent use.
type SequentialIDs struct {
	mu   sync.Mutex
	next int
}

// NewID returns the next identifier in sequence.
func (g *SequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}
