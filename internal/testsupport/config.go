package testsupport

import (
	"path/filepath"
	"testing"

	"muscat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithScanProgressInterval overrides the scan progress cadence.
func WithScanProgressInterval(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.ProgressInterval = n
	}
}

// WithCopyProgressInterval overrides the copy progress cadence.
func WithCopyProgressInterval(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Copy.ProgressInterval = n
	}
}

// WithVerifiedCopies enables hash-verified materialization.
func WithVerifiedCopies() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Copy.Verify = true
	}
}
