package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"muscat/internal/catalog"
	"muscat/internal/testsupport"
)

func TestOpenBootstrapsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	session, err := store.CreateScan(ctx, "first", time.Now())
	if err != nil {
		t.Fatalf("CreateScan failed: %v", err)
	}
	if session.ID == 0 {
		t.Fatal("expected session ID to be assigned")
	}

	fetched, err := store.GetScan(ctx, "first")
	if err != nil {
		t.Fatalf("GetScan failed: %v", err)
	}
	if fetched == nil || fetched.Name != "first" {
		t.Fatalf("unexpected fetched session: %#v", fetched)
	}
	if fetched.Completed() {
		t.Fatal("new session should not be completed")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewScan(t, store, "kept")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	exists, err := reopened.ScanExists(context.Background(), "kept")
	if err != nil {
		t.Fatalf("ScanExists: %v", err)
	}
	if !exists {
		t.Fatal("expected scan to survive reopen")
	}
}

func TestCreateScanRejectsDuplicateName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.CreateScan(ctx, "dupe", time.Now()); err != nil {
		t.Fatalf("first CreateScan: %v", err)
	}
	_, err := store.CreateScan(ctx, "dupe", time.Now())
	if !errors.Is(err, catalog.ErrScanExists) {
		t.Fatalf("expected ErrScanExists, got %v", err)
	}
}

func TestCreateScanRejectsEmptyName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.CreateScan(context.Background(), "  ", time.Now()); err == nil {
		t.Fatal("expected error for empty scan name")
	}
}

func TestCompleteScan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	testsupport.NewScan(t, store, "run")

	end := time.Now()
	totals := catalog.ScanTotals{Processed: 10, Taggable: 7, Errors: 1}
	if err := store.CompleteScan(ctx, "run", end, totals); err != nil {
		t.Fatalf("CompleteScan: %v", err)
	}

	session, err := store.GetScan(ctx, "run")
	if err != nil {
		t.Fatalf("GetScan: %v", err)
	}
	if !session.Completed() {
		t.Fatal("expected session to be completed")
	}
	if session.NumFiles == nil || *session.NumFiles != 10 {
		t.Fatalf("unexpected num files: %v", session.NumFiles)
	}
	if session.NumTaggable == nil || *session.NumTaggable != 7 {
		t.Fatalf("unexpected num taggable: %v", session.NumTaggable)
	}
	if session.NumErrors == nil || *session.NumErrors != 1 {
		t.Fatalf("unexpected num errors: %v", session.NumErrors)
	}
}

func TestCompleteScanUnknownName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.CompleteScan(context.Background(), "ghost", time.Now(), catalog.ScanTotals{})
	if !errors.Is(err, catalog.ErrScanNotFound) {
		t.Fatalf("expected ErrScanNotFound, got %v", err)
	}
}

func TestInsertFileRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	testsupport.NewScan(t, store, "roundtrip")

	year := 1997
	duration := 214.5
	record := &catalog.FileRecord{
		FileName:      "track.mp3",
		FullPath:      "/music/album/track.mp3",
		Extension:     "mp3",
		SongTitle:     "Paranoid Android",
		AlbumName:     "OK Computer",
		AlbumArtist:   "Radiohead",
		Genre:         "Alternative",
		Year:          &year,
		Duration:      &duration,
		Taggable:      true,
		ScanName:      "roundtrip",
		ContentDigest: "abc123",
	}
	testsupport.InsertFile(t, store, record)
	if record.ID == 0 {
		t.Fatal("expected record ID to be assigned")
	}

	records, err := store.FilesForScan(ctx, "roundtrip")
	if err != nil {
		t.Fatalf("FilesForScan: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.SongTitle != "Paranoid Android" || got.AlbumName != "OK Computer" {
		t.Fatalf("unexpected tags: %#v", got)
	}
	if got.Year == nil || *got.Year != 1997 {
		t.Fatalf("unexpected year: %v", got.Year)
	}
	if got.Duration == nil || *got.Duration != 214.5 {
		t.Fatalf("unexpected duration: %v", got.Duration)
	}
	if !got.Taggable {
		t.Fatal("expected taggable record")
	}
}

func TestInsertFileNullableFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewScan(t, store, "nulls")

	testsupport.InsertFile(t, store, &catalog.FileRecord{
		FileName:  "raw.bin",
		FullPath:  "/stuff/raw.bin",
		Extension: "bin",
		ScanName:  "nulls",
	})

	records, err := store.FilesForScan(context.Background(), "nulls")
	if err != nil {
		t.Fatalf("FilesForScan: %v", err)
	}
	got := records[0]
	if got.SongTitle != "" || got.AlbumName != "" || got.ContentDigest != "" {
		t.Fatalf("expected absent strings, got %#v", got)
	}
	if got.Year != nil || got.Duration != nil {
		t.Fatalf("expected absent year/duration, got %#v", got)
	}
	if got.Taggable {
		t.Fatal("expected untaggable record")
	}
}

func TestInsertFileDuplicatePathWithinScan(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewScan(t, store, "uniq")
	testsupport.NewScan(t, store, "other")

	record := catalog.FileRecord{
		FileName:  "a.mp3",
		FullPath:  "/music/a.mp3",
		Extension: "mp3",
		ScanName:  "uniq",
	}
	first := record
	testsupport.InsertFile(t, store, &first)

	second := record
	if err := store.InsertFile(context.Background(), &second); err == nil {
		t.Fatal("expected unique violation for duplicate path within a scan")
	}

	// same path under a different scan is fine
	third := record
	third.ScanName = "other"
	testsupport.InsertFile(t, store, &third)
}

func TestExtensionCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	testsupport.NewScan(t, store, "hist")
	testsupport.NewScan(t, store, "other")

	for i, ext := range []string{"mp3", "mp3", "mp3", "flac", "flac", "ogg"} {
		testsupport.InsertFile(t, store, &catalog.FileRecord{
			FileName:  "f",
			FullPath:  "/hist/" + ext + "/" + string(rune('a'+i)),
			Extension: ext,
			ScanName:  "hist",
		})
	}
	testsupport.InsertFile(t, store, &catalog.FileRecord{
		FileName:  "f",
		FullPath:  "/other/x.wav",
		Extension: "wav",
		ScanName:  "other",
	})

	counts, err := store.ExtensionCounts(ctx, "hist")
	if err != nil {
		t.Fatalf("ExtensionCounts: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 extensions, got %d", len(counts))
	}
	if counts[0].Extension != "mp3" || counts[0].Count != 3 {
		t.Fatalf("unexpected leading entry: %#v", counts[0])
	}

	all, err := store.ExtensionCounts(ctx, "")
	if err != nil {
		t.Fatalf("ExtensionCounts all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 extensions across catalog, got %d", len(all))
	}
}

func TestFilesByExtensionPagination(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	testsupport.NewScan(t, store, "page")

	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		testsupport.InsertFile(t, store, &catalog.FileRecord{
			FileName:  name,
			FullPath:  "/page/" + name,
			Extension: "mp3",
			ScanName:  "page",
		})
	}

	records, err := store.FilesByExtension(ctx, "mp3", 2, 0)
	if err != nil {
		t.Fatalf("FilesByExtension: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// ordered by file name descending
	if records[0].FileName != "c.mp3" || records[1].FileName != "b.mp3" {
		t.Fatalf("unexpected order: %s, %s", records[0].FileName, records[1].FileName)
	}

	rest, err := store.FilesByExtension(ctx, "mp3", 2, 2)
	if err != nil {
		t.Fatalf("FilesByExtension offset: %v", err)
	}
	if len(rest) != 1 || rest[0].FileName != "a.mp3" {
		t.Fatalf("unexpected tail page: %#v", rest)
	}
}

func TestListScansOrdering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := store.CreateScan(ctx, "second", base.Add(time.Hour)); err != nil {
		t.Fatalf("CreateScan second: %v", err)
	}
	if _, err := store.CreateScan(ctx, "first", base); err != nil {
		t.Fatalf("CreateScan first: %v", err)
	}

	sessions, err := store.ListScans(ctx)
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "first" || sessions[1].Name != "second" {
		t.Fatalf("unexpected order: %s, %s", sessions[0].Name, sessions[1].Name)
	}
}
