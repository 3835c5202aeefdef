package reconcile

import (
	"context"
	"fmt"

	"muscat/internal/catalog"
)

// Engine computes the set of files present in an origin scan with no identity
// match in a destination scan. Both projections (count and path list) execute
// the same anti-join relation.
type Engine struct {
	store *catalog.Store
}

// New constructs a reconciliation engine over the given store.
func New(store *catalog.Store) *Engine {
	return &Engine{store: store}
}

// Count returns how many origin records have no identity match in the
// destination scan.
func (e *Engine) Count(ctx context.Context, originScan, destScan string) (int, error) {
	if err := e.checkScans(ctx, originScan, destScan); err != nil {
		return 0, err
	}
	return e.store.DiffCount(ctx, originScan, destScan)
}

// Paths returns the full paths of origin records with no identity match in
// the destination scan. Re-running with no intervening writes yields the same
// result.
func (e *Engine) Paths(ctx context.Context, originScan, destScan string) ([]string, error) {
	if err := e.checkScans(ctx, originScan, destScan); err != nil {
		return nil, err
	}
	return e.store.DiffPaths(ctx, originScan, destScan)
}

func (e *Engine) checkScans(ctx context.Context, originScan, destScan string) error {
	for _, name := range []string{originScan, destScan} {
		exists, err := e.store.ScanExists(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", catalog.ErrScanNotFound, name)
		}
	}
	return nil
}

// IdentityKey builds the matching key used to decide whether two records from
// different scans are the same logical file: the song title when present,
// else the file name, concatenated with the album name (absent album counts
// as the empty string). Records that are blank everywhere collide on the
// empty key; that weakness is part of the contract and is deliberately not
// de-conflicted.
func IdentityKey(record *catalog.FileRecord) string {
	title := record.SongTitle
	if title == "" {
		title = record.FileName
	}
	return title + record.AlbumName
}
