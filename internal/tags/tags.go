package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the metadata extracted from one audio file. Empty strings mean
// the tag carried nothing for that field. RawYear is the year exactly as the
// container stored it (often a full date like "2015-06-01"); callers decide
// how to interpret it.
type Tags struct {
	Title       string
	Album       string
	AlbumArtist string
	Genre       string
	RawYear     string
	// Duration in seconds. The underlying tag library reads metadata frames
	// only, not audio frames, so it cannot report duration; the field stays
	// zero and the catalog column stays absent.
	Duration float64
}

// Reader is the metadata extraction contract. Read failures on malformed or
// truncated files are recoverable; callers must treat them as per-file errors,
// never as run-fatal.
type Reader interface {
	// Supported reports whether the file's container format is taggable.
	Supported(path string) bool
	// Read extracts tags from a supported file.
	Read(path string) (*Tags, error)
}

// supportedExtensions are the container formats the underlying library parses.
var supportedExtensions = map[string]struct{}{
	"mp3":  {},
	"m4a":  {},
	"m4b":  {},
	"m4p":  {},
	"mp4":  {},
	"flac": {},
	"ogg":  {},
	"oga":  {},
	"dsf":  {},
}

// NewReader returns the production Reader backed by the tag library.
func NewReader() Reader {
	return fileReader{}
}

type fileReader struct{}

func (fileReader) Supported(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := supportedExtensions[ext]
	return ok
}

func (fileReader) Read(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open for tagging: %w", err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}

	return &Tags{
		Title:       meta.Title(),
		Album:       meta.Album(),
		AlbumArtist: albumArtist(meta),
		Genre:       meta.Genre(),
		RawYear:     rawYear(meta.Raw(), meta.Year()),
	}, nil
}

func albumArtist(meta tag.Metadata) string {
	if artist := meta.AlbumArtist(); artist != "" {
		return artist
	}
	return meta.Artist()
}

// rawYearFrames are the per-container frame names that carry a date or year,
// in preference order: ID3v2.4, ID3v2.3, vorbis comments, MP4 atoms.
var rawYearFrames = []string{"TDRC", "TDRL", "TYER", "TORY", "date", "DATE", "year", "YEAR", "\xa9day"}

func rawYear(raw map[string]interface{}, parsedYear int) string {
	for _, frame := range rawYearFrames {
		if value, ok := raw[frame]; ok {
			if text, ok := value.(string); ok && strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	if parsedYear > 0 {
		return strconv.Itoa(parsedYear)
	}
	return ""
}
