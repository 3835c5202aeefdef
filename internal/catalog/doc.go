// Package catalog persists scan sessions and file records in SQLite and
// exposes the queries the rest of muscat is built on.
//
// The Store owns the database connection, schema bootstrap, per-file inserts,
// session lifecycle updates, and the read queries (extension histogram,
// paginated listings, cross-scan anti-join). Scan names are write-once: a
// session is created at the start of a run and mutated exactly once more to
// record its completion. File records are immutable after insert.
//
// Treat this package as the single source of truth for catalog semantics; the
// identity-key join in store_queries.go is a compatibility contract, not an
// implementation detail.
package catalog
