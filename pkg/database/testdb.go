package database

import (
	"database/sql"
	"testing"
)

// OpenTest returns a migrated in-memory database for package tests.
func OpenTest(t testing.TB) *sql.DB {
	t.Helper()

	db, err := Open(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// every pooled connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
