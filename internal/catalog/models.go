package catalog

import "time"

// ScanSession is one named scan run. Counters and end time stay nil until the
// run completes; a session with a nil EndTime is incomplete.
type ScanSession struct {
	ID          int64
	Name        string
	StartTime   time.Time
	EndTime     *time.Time
	NumFiles    *int
	NumTaggable *int
	NumErrors   *int
}

// Completed reports whether the session's run finished.
func (s *ScanSession) Completed() bool {
	return s != nil && s.EndTime != nil
}

// FileRecord is one catalogued file within one scan. String fields use "" for
// absent values and are stored as NULL; Year and Duration are nil when the
// tag carried nothing parseable.
type FileRecord struct {
	ID            int64
	FileName      string
	FullPath      string
	Extension     string
	SongTitle     string
	AlbumName     string
	AlbumArtist   string
	Genre         string
	Year          *int
	Duration      *float64
	Taggable      bool
	ScanName      string
	ContentDigest string
}

// ScanTotals are the final counters written when a scan run completes.
type ScanTotals struct {
	Processed int
	Taggable  int
	Errors    int
}

// ExtensionCount is one row of the extension histogram.
type ExtensionCount struct {
	Extension string
	Count     int
}
