package history

import (
	"path/filepath"
	"testing"
	"time"

	"pdfsqueeze/internal/domain/entities"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleRun(rootDir string) *entities.RunRecord {
	started := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	return &entities.RunRecord{
		StartedAt:       started,
		FinishedAt:      started.Add(42 * time.Second),
		RootDirectory:   rootDir,
		Algorithm:       "ghostscript",
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		OriginalBytes:   2048,
		CompressedBytes: 1024,
	}
}

func TestSaveRunAssignsID(t *testing.T) {
	store := newTestStore(t)

	run := sampleRun("/data/bills")
	if err := store.SaveRun(run, nil); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	if run.ID == 0 {
		t.Error("SaveRun() should assign run.ID")
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for _, dir := range []string{"/first", "/second", "/third"} {
		if err := store.SaveRun(sampleRun(dir), nil); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", dir, err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].RootDirectory != "/third" || runs[1].RootDirectory != "/second" {
		t.Errorf("runs order = [%s, %s], want newest first", runs[0].RootDirectory, runs[1].RootDirectory)
	}
	if runs[0].ID <= runs[1].ID {
		t.Errorf("run IDs = [%d, %d], want descending", runs[0].ID, runs[1].ID)
	}
}

func TestRecentRunsEmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("len(runs) = %d, want 0", len(runs))
	}
}

func TestRunRoundTrip(t *testing.T) {
	store := newTestStore(t)

	run := sampleRun("/data/bills")
	files := []entities.FileRecord{
		{Path: "/data/bills/a.pdf", OriginalSize: 1500, CompressedSize: 700, Success: true},
		{Path: "/data/bills/b.pdf", OriginalSize: 548, Success: false, Error: "ghostscript: exit status 1"},
	}
	if err := store.SaveRun(run, files); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	runs, err := store.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}

	got := runs[0]
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, run.StartedAt)
	}
	if !got.FinishedAt.Equal(run.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, run.FinishedAt)
	}
	if got.Algorithm != "ghostscript" {
		t.Errorf("Algorithm = %q", got.Algorithm)
	}
	if got.TotalFiles != 2 || got.SuccessfulFiles != 1 || got.FailedFiles != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1", got.TotalFiles, got.SuccessfulFiles, got.FailedFiles)
	}
	if got.SavedBytes() != 1024 {
		t.Errorf("SavedBytes() = %d, want 1024", got.SavedBytes())
	}

	stored, err := store.RunFiles(got.ID)
	if err != nil {
		t.Fatalf("RunFiles() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(stored))
	}
	if stored[0].Path != "/data/bills/a.pdf" || !stored[0].Success {
		t.Errorf("first file = %+v", stored[0])
	}
	if stored[1].Success || stored[1].Error != "ghostscript: exit status 1" {
		t.Errorf("second file = %+v", stored[1])
	}
	for _, file := range stored {
		if file.RunID != got.ID {
			t.Errorf("file RunID = %d, want %d", file.RunID, got.ID)
		}
	}
}

func TestRunFilesUnknownRun(t *testing.T) {
	store := newTestStore(t)

	files, err := store.RunFiles(99)
	if err != nil {
		t.Fatalf("RunFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("len(files) = %d, want 0", len(files))
	}
}

func TestNewSQLiteStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	if err := store.SaveRun(sampleRun("/x"), nil); err != nil {
		t.Errorf("SaveRun() error = %v", err)
	}
}
