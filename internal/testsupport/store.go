package testsupport

import (
	"context"
	"testing"
	"time"

	"muscat/internal/catalog"
	"muscat/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewScan creates a completed-less scan session for tests.
func NewScan(t testing.TB, store *catalog.Store, name string) *catalog.ScanSession {
	t.Helper()

	session, err := store.CreateScan(context.Background(), name, time.Now())
	if err != nil {
		t.Fatalf("store.CreateScan: %v", err)
	}
	return session
}

// InsertFile inserts a file record for tests, filling required fields from the
// provided values.
func InsertFile(t testing.TB, store *catalog.Store, record *catalog.FileRecord) {
	t.Helper()

	if err := store.InsertFile(context.Background(), record); err != nil {
		t.Fatalf("store.InsertFile: %v", err)
	}
}
