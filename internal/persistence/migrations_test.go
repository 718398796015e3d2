package persistence

import (
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("no embedded migrations")
	}

	content, err := migrationFiles.ReadFile("migrations/001_create_users.sql")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	sql := string(content)

	// The users table must carry the unique-username constraint that makes
	// concurrent duplicate signups fail at the store.
	for _, want := range []string{"CREATE TABLE IF NOT EXISTS users", "UNIQUE", "painting BYTEA", "password_hash"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("migration missing %q:\n%s", want, sql)
		}
	}
}
