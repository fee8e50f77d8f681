package archive_test

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfsqueeze/internal/infrastructure/archive"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("z", size)), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip %s: %v", path, err)
	}
	defer reader.Close()

	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	return names
}

func TestArchiveDirectorySinglePart(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "2023")
	writeFile(t, filepath.Join(source, "jan", "bill.pdf"), 100)
	writeFile(t, filepath.Join(source, "feb.pdf"), 50)
	dest := filepath.Join(dir, "out")

	parts, err := archive.NewZipArchiver().ArchiveDirectory(source, dest, "2023", 1024*1024)
	if err != nil {
		t.Fatalf("ArchiveDirectory() error = %v", err)
	}

	// Единственная часть без суффикса _part1
	want := filepath.Join(dest, "2023.zip")
	if len(parts) != 1 || parts[0] != want {
		t.Fatalf("parts = %v, want [%s]", parts, want)
	}

	names := zipNames(t, parts[0])
	if len(names) != 2 {
		t.Fatalf("zip entries = %v, want 2 entries", names)
	}
	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	if !found["feb.pdf"] || !found["jan/bill.pdf"] {
		t.Errorf("zip entries = %v, want relative paths feb.pdf and jan/bill.pdf", names)
	}
}

func TestArchiveDirectorySplitsParts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "2024")
	writeFile(t, filepath.Join(source, "a.pdf"), 60)
	writeFile(t, filepath.Join(source, "b.pdf"), 60)
	writeFile(t, filepath.Join(source, "c.pdf"), 60)
	dest := filepath.Join(dir, "out")

	parts, err := archive.NewZipArchiver().ArchiveDirectory(source, dest, "2024", 100)
	if err != nil {
		t.Fatalf("ArchiveDirectory() error = %v", err)
	}

	if len(parts) != 3 {
		t.Fatalf("parts = %v, want 3 parts", parts)
	}
	for i, part := range parts {
		wantName := filepath.Join(dest, fmt.Sprintf("2024_part%d.zip", i+1))
		if part != wantName {
			t.Errorf("part %d = %s, want %s", i, part, wantName)
		}
		if names := zipNames(t, part); len(names) != 1 {
			t.Errorf("part %s holds %v, want exactly one file", part, names)
		}
	}
}

func TestArchiveDirectoryOversizedFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "big")
	writeFile(t, filepath.Join(source, "huge.pdf"), 500)
	dest := filepath.Join(dir, "out")

	// Файл крупнее лимита все равно попадает в собственную часть
	parts, err := archive.NewZipArchiver().ArchiveDirectory(source, dest, "big", 100)
	if err != nil {
		t.Fatalf("ArchiveDirectory() error = %v", err)
	}
	if len(parts) != 1 || parts[0] != filepath.Join(dest, "big.zip") {
		t.Fatalf("parts = %v, want single big.zip", parts)
	}
}

func TestArchiveDirectoryEmptySource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "empty")
	if err := os.MkdirAll(source, 0755); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "out")

	parts, err := archive.NewZipArchiver().ArchiveDirectory(source, dest, "empty", 100)
	if err != nil {
		t.Fatalf("ArchiveDirectory() error = %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("parts = %v, want none for empty directory", parts)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination directory created for empty source")
	}
}
