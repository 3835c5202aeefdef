// Package logging builds slog loggers for muscat.
//
// Two formats are supported: a compact console format for interactive use and
// JSON for machine consumption. Output fans out to stderr and a log file under
// the configured log directory.
package logging
