package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"muscat/internal/catalog"
	"muscat/internal/config"
	"muscat/internal/fileutil"
	"muscat/internal/logging"
	"muscat/internal/tags"
)

// ErrScanInProgress is returned when another scan holds the catalog scan lock.
var ErrScanInProgress = errors.New("another scan is in progress")

// systemMetadataSentinel marks per-directory attribute files that are never
// catalogued.
const systemMetadataSentinel = ".DS_Store"

// Scanner walks a directory tree and records every non-excluded file into the
// catalog under a named scan session. Files are processed one at a time; each
// record commits before the next file is attempted.
type Scanner struct {
	store    *catalog.Store
	reader   tags.Reader
	logger   *slog.Logger
	progress ProgressSink
	interval int
	excluded map[string]struct{}
	lockPath string
}

// Summary reports the counters of a completed scan run. Errors counts files
// that failed processing and were not recorded; it never makes a run fatal.
type Summary struct {
	ScanName  string
	Root      string
	Processed int
	Taggable  int
	Errors    int
	Started   time.Time
	Finished  time.Time
}

// New constructs a Scanner. The logger may be nil.
func New(cfg *config.Config, store *catalog.Store, reader tags.Reader, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	// The fixed set is unioned in here so no configuration can switch it off.
	fixed := config.FixedExcludeExtensions()
	excluded := make(map[string]struct{}, len(fixed)+len(cfg.Scan.ExcludeExtensions))
	for _, ext := range fixed {
		excluded[ext] = struct{}{}
	}
	for _, ext := range cfg.Scan.ExcludeExtensions {
		excluded[ext] = struct{}{}
	}
	return &Scanner{
		store:    store,
		reader:   reader,
		logger:   logger,
		interval: cfg.Scan.ProgressInterval,
		excluded: excluded,
		lockPath: filepath.Join(cfg.Paths.DataDir, "scan.lock"),
	}
}

// SetProgressSink replaces the default log-based progress sink.
func (s *Scanner) SetProgressSink(sink ProgressSink) {
	s.progress = sink
}

// StartScan records every file under root into the catalog as scan session
// scanName. A duplicate scan name aborts before any traversal or write and
// returns catalog.ErrScanExists. Individual file failures are counted and
// logged; they never abort the run.
func (s *Scanner) StartScan(ctx context.Context, root, scanName string) (*Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("inspect scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock %s)", ErrScanInProgress, s.lockPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	exists, err := s.store.ScanExists(ctx, scanName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", catalog.ErrScanExists, scanName)
	}

	started := time.Now()
	if _, err := s.store.CreateScan(ctx, scanName, started); err != nil {
		return nil, err
	}

	log := s.logger.With(
		logging.String("scan", scanName),
		logging.String("run_id", uuid.NewString()),
	)
	log.Info("scan started", logging.String("root", root))

	summary := &Summary{ScanName: scanName, Root: root, Started: started}
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			summary.Errors++
			log.Warn("cannot access path", logging.String("path", path), logging.Error(err))
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		switch outcome := s.processFile(ctx, log, path, entry.Name(), scanName, summary); outcome {
		case outcomeRecorded:
			summary.Processed++
			if s.interval > 0 && summary.Processed%s.interval == 0 {
				s.emitProgress(summary.Processed)
			}
		case outcomeFailed:
			summary.Errors++
		case outcomeSkipped:
			// excluded files are not counted
		}
		return nil
	})
	if walkErr != nil {
		// an aborted walk leaves the session without an end time; downstream
		// tooling treats that as incomplete
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	summary.Finished = time.Now()
	totals := catalog.ScanTotals{
		Processed: summary.Processed,
		Taggable:  summary.Taggable,
		Errors:    summary.Errors,
	}
	if err := s.store.CompleteScan(ctx, scanName, summary.Finished, totals); err != nil {
		return nil, err
	}

	log.Info("scan complete",
		logging.Int("processed", summary.Processed),
		logging.Int("taggable", summary.Taggable),
		logging.Int("errors", summary.Errors),
	)
	return summary, nil
}

// outcome is the tagged result of one file processing attempt.
type outcome int

const (
	outcomeRecorded outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (s *Scanner) processFile(ctx context.Context, log *slog.Logger, path, name, scanName string, summary *Summary) outcome {
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if s.isExcluded(path, extension) {
		return outcomeSkipped
	}

	record := &catalog.FileRecord{
		FileName:  name,
		FullPath:  path,
		Extension: extension,
		ScanName:  scanName,
	}

	// A digest read failure is the one non-fatal per-file fault: the record is
	// still written, just without a digest.
	digest, err := fileutil.SHA256File(path)
	if err != nil {
		log.Warn("could not hash file", logging.String("path", path), logging.Error(err))
	} else {
		record.ContentDigest = digest
	}

	if s.reader.Supported(path) {
		extracted, err := s.reader.Read(path)
		if err != nil {
			log.Warn("tag extraction failed", logging.String("path", path), logging.Error(err))
			return outcomeFailed
		}
		record.Taggable = true
		record.SongTitle = extracted.Title
		record.AlbumName = extracted.Album
		record.AlbumArtist = extracted.AlbumArtist
		record.Genre = extracted.Genre
		if year, ok := deriveYear(extracted.RawYear); ok {
			record.Year = &year
		}
		if extracted.Duration > 0 {
			duration := extracted.Duration
			record.Duration = &duration
		}
	}

	if err := s.store.InsertFile(ctx, record); err != nil {
		log.Warn("insert failed", logging.String("path", path), logging.Error(err))
		return outcomeFailed
	}

	if record.Taggable {
		summary.Taggable++
	}
	return outcomeRecorded
}

func (s *Scanner) isExcluded(path, extension string) bool {
	if strings.HasSuffix(path, systemMetadataSentinel) {
		return true
	}
	_, ok := s.excluded[extension]
	return ok
}

func (s *Scanner) emitProgress(processed int) {
	if s.progress != nil {
		s.progress.ScanProgress(processed)
		return
	}
	s.logger.Info("scan progress", logging.Int("processed", processed))
}
