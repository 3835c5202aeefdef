package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// identityJoin matches records across scans on the derived identity key:
// the song title when present, else the file name, concatenated with the
// album name (absent album counts as the empty string, not a wildcard).
// Records with neither title nor album collide on the bare file name; records
// with empty everything collide on the empty key. That fuzziness is the
// contract, not a defect.
const identityJoin = `COALESCE(dest.song_title, dest.file_name) || COALESCE(dest.album_name, '') =
       COALESCE(origin.song_title, origin.file_name) || COALESCE(origin.album_name, '')`

// DiffCount returns how many origin-scan records have no identity match in the
// destination scan.
func (s *Store) DiffCount(ctx context.Context, originScan, destScan string) (int, error) {
	query := `SELECT COUNT(1)
       FROM file_data origin
       LEFT JOIN file_data dest
         ON ` + identityJoin + `
         AND dest.scan_name = ?
       WHERE origin.scan_name = ?
         AND dest.id IS NULL`

	var count int
	if err := s.db.QueryRowContext(ctx, query, destScan, originScan).Scan(&count); err != nil {
		return 0, fmt.Errorf("diff count: %w", err)
	}
	return count, nil
}

// DiffPaths returns the full paths of origin-scan records with no identity
// match in the destination scan, in insertion order.
func (s *Store) DiffPaths(ctx context.Context, originScan, destScan string) ([]string, error) {
	query := `SELECT origin.full_path
       FROM file_data origin
       LEFT JOIN file_data dest
         ON ` + identityJoin + `
         AND dest.scan_name = ?
       WHERE origin.scan_name = ?
         AND dest.id IS NULL
       ORDER BY origin.id`

	rows, err := s.db.QueryContext(ctx, query, destScan, originScan)
	if err != nil {
		return nil, fmt.Errorf("diff paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// ExtensionCounts returns the extension histogram, most frequent first. An
// empty scanName covers the whole catalog.
func (s *Store) ExtensionCounts(ctx context.Context, scanName string) ([]ExtensionCount, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT extension, COUNT(1) FROM file_data`
	groupClause := ` GROUP BY extension ORDER BY COUNT(1) DESC, extension`

	if scanName == "" {
		rows, err = s.db.QueryContext(ctx, baseQuery+groupClause)
	} else {
		rows, err = s.db.QueryContext(ctx, baseQuery+` WHERE scan_name = ?`+groupClause, scanName)
	}
	if err != nil {
		return nil, fmt.Errorf("extension counts: %w", err)
	}
	defer rows.Close()

	var counts []ExtensionCount
	for rows.Next() {
		var entry ExtensionCount
		if err := rows.Scan(&entry.Extension, &entry.Count); err != nil {
			return nil, err
		}
		counts = append(counts, entry)
	}
	return counts, rows.Err()
}

// FilesByExtension returns file records matching an extension ordered by file
// name descending, with limit/offset pagination.
func (s *Store) FilesByExtension(ctx context.Context, ext string, limit, offset int) ([]*FileRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+fileColumns+` FROM file_data
         WHERE extension = ?
         ORDER BY file_name DESC
         LIMIT ? OFFSET ?`,
		ext, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("files by extension: %w", err)
	}
	defer rows.Close()

	var records []*FileRecord
	for rows.Next() {
		record, err := scanFileRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// FilesForScan returns every file record captured under a scan name in
// insertion order.
func (s *Store) FilesForScan(ctx context.Context, scanName string) ([]*FileRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+fileColumns+` FROM file_data WHERE scan_name = ? ORDER BY id`,
		scanName,
	)
	if err != nil {
		return nil, fmt.Errorf("files for scan: %w", err)
	}
	defer rows.Close()

	var records []*FileRecord
	for rows.Next() {
		record, err := scanFileRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

const fileColumns = "id, file_name, full_path, extension, song_title, album_name, album_artist, genre, year, duration, taggable, scan_name, content_digest"

func scanFileRecord(scanner interface{ Scan(dest ...any) error }) (*FileRecord, error) {
	var (
		id          int64
		fileName    string
		fullPath    string
		extension   string
		songTitle   sql.NullString
		albumName   sql.NullString
		albumArtist sql.NullString
		genre       sql.NullString
		year        sql.NullInt64
		duration    sql.NullFloat64
		taggable    int
		scanName    string
		digest      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&fileName,
		&fullPath,
		&extension,
		&songTitle,
		&albumName,
		&albumArtist,
		&genre,
		&year,
		&duration,
		&taggable,
		&scanName,
		&digest,
	); err != nil {
		return nil, err
	}

	record := &FileRecord{
		ID:            id,
		FileName:      fileName,
		FullPath:      fullPath,
		Extension:     extension,
		SongTitle:     songTitle.String,
		AlbumName:     albumName.String,
		AlbumArtist:   albumArtist.String,
		Genre:         genre.String,
		Taggable:      taggable != 0,
		ScanName:      scanName,
		ContentDigest: digest.String,
	}
	if year.Valid {
		v := int(year.Int64)
		record.Year = &v
	}
	if duration.Valid {
		v := duration.Float64
		record.Duration = &v
	}
	return record, nil
}
