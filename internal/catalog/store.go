package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"muscat/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and ensures the schema
// is in place. Opening an already-initialized catalog is a no-op on the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// ScanExists reports whether a scan session has been recorded under name.
func (s *Store) ScanExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM scans WHERE scan_name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check scan name: %w", err)
	}
	return count > 0, nil
}

// CreateScan records the start of a new scan session. The name is claimed
// atomically; a duplicate returns ErrScanExists with no side effects.
func (s *Store) CreateScan(ctx context.Context, name string, startTime time.Time) (*ScanSession, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("scan name is empty")
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scans (scan_name, start_time) VALUES (?, ?)`,
		name,
		startTime.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s", ErrScanExists, name)
		}
		return nil, fmt.Errorf("insert scan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &ScanSession{ID: id, Name: name, StartTime: startTime.UTC()}, nil
}

// CompleteScan fills the session's end time and final counters. The session is
// mutated exactly once, at the end of its run.
func (s *Store) CompleteScan(ctx context.Context, name string, endTime time.Time, totals ScanTotals) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE scans
         SET end_time = ?, num_files = ?, num_taggable = ?, num_errors = ?
         WHERE scan_name = ?`,
		endTime.UTC().Format(time.RFC3339Nano),
		totals.Processed,
		totals.Taggable,
		totals.Errors,
		name,
	)
	if err != nil {
		return fmt.Errorf("complete scan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrScanNotFound, name)
	}
	return nil
}

// GetScan fetches a scan session by name. A missing session returns nil.
func (s *Store) GetScan(ctx context.Context, name string) (*ScanSession, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+scanColumns+` FROM scans WHERE scan_name = ?`, name)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scan: %w", err)
	}
	return session, nil
}

// ListScans returns every scan session ordered by start time.
func (s *Store) ListScans(ctx context.Context) ([]*ScanSession, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scanColumns+` FROM scans ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var sessions []*ScanSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// InsertFile records one catalogued file. Each insert commits on its own so a
// crash mid-run loses at most the in-flight file.
func (s *Store) InsertFile(ctx context.Context, record *FileRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO file_data (
            file_name, full_path, extension, song_title, album_name,
            album_artist, genre, year, duration, taggable, scan_name, content_digest
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.FileName,
		record.FullPath,
		record.Extension,
		nullableString(record.SongTitle),
		nullableString(record.AlbumName),
		nullableString(record.AlbumArtist),
		nullableString(record.Genre),
		nullableInt(record.Year),
		nullableFloat(record.Duration),
		boolToInt(record.Taggable),
		record.ScanName,
		nullableString(record.ContentDigest),
	)
	if err != nil {
		return fmt.Errorf("insert file record: %w", err)
	}

	record.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

// CountFiles returns the number of file records captured under a scan name.
func (s *Store) CountFiles(ctx context.Context, scanName string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM file_data WHERE scan_name = ?`, scanName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return count, nil
}

const scanColumns = "id, scan_name, start_time, end_time, num_files, num_taggable, num_errors"

func scanSession(scanner interface{ Scan(dest ...any) error }) (*ScanSession, error) {
	var (
		id          int64
		name        string
		startRaw    string
		endRaw      sql.NullString
		numFiles    sql.NullInt64
		numTaggable sql.NullInt64
		numErrors   sql.NullInt64
	)

	if err := scanner.Scan(&id, &name, &startRaw, &endRaw, &numFiles, &numTaggable, &numErrors); err != nil {
		return nil, err
	}

	session := &ScanSession{ID: id, Name: name}
	if start, err := parseTimeString(startRaw); err == nil {
		session.StartTime = start
	}
	if endRaw.Valid {
		if end, err := parseTimeString(endRaw.String); err == nil {
			session.EndTime = &end
		}
	}
	if numFiles.Valid {
		v := int(numFiles.Int64)
		session.NumFiles = &v
	}
	if numTaggable.Valid {
		v := int(numTaggable.Int64)
		session.NumTaggable = &v
	}
	if numErrors.Valid {
		v := int(numErrors.Int64)
		session.NumErrors = &v
	}
	return session, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
