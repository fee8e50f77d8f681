package usecases_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/infrastructure/archive"
	infrarepo "pdfsqueeze/internal/infrastructure/repositories"
	usecases "pdfsqueeze/internal/usecase"
)

func newArchiveUseCase(logger *recordLogger) *usecases.ArchiveDirectoryUseCase {
	return usecases.NewArchiveDirectoryUseCase(
		archive.NewZipArchiver(),
		infrarepo.NewFileSystemRepository(),
		logger,
	)
}

func TestArchiveExecutePacksEachSubdirectory(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bills")
	writePDF(t, filepath.Join(source, "2023", "jan.pdf"), 100)
	writePDF(t, filepath.Join(source, "2024", "feb.pdf"), 100)
	writePDF(t, filepath.Join(source, "readme.txt"), 10) // файлы верхнего уровня не архивируются
	out := filepath.Join(dir, "zips")

	result, err := newArchiveUseCase(&recordLogger{}).Execute(source, out, 23)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.TotalDirectories != 2 || result.ArchivedCount != 2 || result.FailedCount != 0 {
		t.Errorf("result = %d/%d/%d, want 2 dirs, 2 archived, 0 failed",
			result.TotalDirectories, result.ArchivedCount, result.FailedCount)
	}

	for _, name := range []string{"2023.zip", "2024.zip"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("archive %s missing: %v", name, err)
		}
	}
}

func TestArchiveExecuteDefaultOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bills")
	writePDF(t, filepath.Join(source, "2023", "jan.pdf"), 100)

	result, err := newArchiveUseCase(&recordLogger{}).Execute(source, "", 23)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.ArchivedCount != 1 {
		t.Fatalf("ArchivedCount = %d, want 1", result.ArchivedCount)
	}

	// Директорией по умолчанию служит <источник>_zips рядом с источником
	if _, err := os.Stat(filepath.Join(dir, "bills_zips", "2023.zip")); err != nil {
		t.Errorf("default output archive missing: %v", err)
	}
}

func TestArchiveExecuteMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := newArchiveUseCase(&recordLogger{}).Execute(filepath.Join(dir, "nope"), "", 23)
	if err == nil {
		t.Fatal("Execute() with missing source returned nil")
	}
	if !errors.Is(err, entities.ErrDirectoryNotFound) {
		t.Errorf("error = %v, want ErrDirectoryNotFound", err)
	}
}

func TestArchiveExecuteSkipsEmptySubdirectories(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bills")
	writePDF(t, filepath.Join(source, "2023", "jan.pdf"), 100)
	if err := os.MkdirAll(filepath.Join(source, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	result, err := newArchiveUseCase(&recordLogger{}).Execute(source, filepath.Join(dir, "out"), 23)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.TotalDirectories != 2 || result.ArchivedCount != 1 || result.FailedCount != 0 {
		t.Errorf("result = %d/%d/%d, want 2 dirs, 1 archived, 0 failed",
			result.TotalDirectories, result.ArchivedCount, result.FailedCount)
	}
}
