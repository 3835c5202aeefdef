package copier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"muscat/internal/config"
	"muscat/internal/fileutil"
	"muscat/internal/logging"
	"muscat/internal/reconcile"
)

// Copier materializes a reconciliation diff as a flat set of file copies.
type Copier struct {
	engine   *reconcile.Engine
	logger   *slog.Logger
	progress ProgressSink
	interval int
	verify   bool
}

// Report summarizes one materialization batch.
type Report struct {
	Total   int
	Copied  int
	Missing int
}

// ProgressSink receives periodic notifications while a copy batch runs.
type ProgressSink interface {
	CopyProgress(copied, total int)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(copied, total int)

func (f ProgressFunc) CopyProgress(copied, total int) { f(copied, total) }

// New constructs a Copier. The logger may be nil.
func New(cfg *config.Config, engine *reconcile.Engine, logger *slog.Logger) *Copier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Copier{
		engine:   engine,
		logger:   logger,
		interval: cfg.Copy.ProgressInterval,
		verify:   cfg.Copy.Verify,
	}
}

// SetProgressSink replaces the default log-based progress sink.
func (c *Copier) SetProgressSink(sink ProgressSink) {
	c.progress = sink
}

// CopyDiff copies every file in the origin/destination diff into targetFolder,
// flattening directory structure (name collisions resolve last-write-wins). A
// source file that no longer exists is counted as missing and skipped; a
// destination write failure aborts the batch, since continuing would silently
// under-report.
func (c *Copier) CopyDiff(ctx context.Context, originScan, destScan, targetFolder string) (*Report, error) {
	if err := os.MkdirAll(targetFolder, 0o755); err != nil {
		return nil, fmt.Errorf("create target folder %q: %w", targetFolder, err)
	}

	paths, err := c.engine.Paths(ctx, originScan, destScan)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(paths)}
	for _, source := range paths {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		if _, err := os.Stat(source); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				report.Missing++
				c.logger.Warn("source file missing", logging.String("path", source))
				continue
			}
			return report, fmt.Errorf("inspect source %q: %w", source, err)
		}

		target := filepath.Join(targetFolder, filepath.Base(source))
		if err := c.copyFile(source, target); err != nil {
			return report, fmt.Errorf("copy %q: %w", source, err)
		}

		report.Copied++
		if c.interval > 0 && report.Copied%c.interval == 0 {
			c.emitProgress(report.Copied, report.Total)
		}
	}

	c.logger.Info("copy batch complete",
		logging.Int("copied", report.Copied),
		logging.Int("missing", report.Missing),
		logging.Int("total", report.Total),
	)
	return report, nil
}

func (c *Copier) copyFile(src, dst string) error {
	if c.verify {
		return fileutil.CopyFileVerified(src, dst)
	}
	return fileutil.CopyFilePreserving(src, dst)
}

func (c *Copier) emitProgress(copied, total int) {
	if c.progress != nil {
		c.progress.CopyProgress(copied, total)
		return
	}
	percent := 0.0
	if total > 0 {
		percent = float64(copied) / float64(total) * 100
	}
	c.logger.Info("copy progress",
		logging.Int("copied", copied),
		logging.Int("total", total),
		logging.Float64("percent", percent),
	)
}
