package postgres

import (
	"os"
	"testing"

	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/storagetest"
)

// TestStore_Integration runs the provider suite against a real database.
// Example: POSTGRES_TEST_URL="postgres://plop_user@localhost:5432/plop_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	storagetest.Run(t, func(t *testing.T) storage.Provider {
		store := New(connStr)
		if err := store.Init(); err != nil {
			t.Fatalf("Failed to initialize store: %v", err)
		}
		t.Cleanup(func() {
			for _, table := range []string{"notifications", "logs", "users", "settings"} {
				store.db.Exec("DELETE FROM " + table)
			}
			store.Close()
		})
		return store
	})
}
