package usecases_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pdfsqueeze/internal/domain/entities"
	infrarepo "pdfsqueeze/internal/infrastructure/repositories"
	usecases "pdfsqueeze/internal/usecase"
)

func newSingle(compressor *fakeCompressor) *usecases.CompressPDFUseCase {
	return usecases.NewCompressPDFUseCase(
		compressor,
		infrarepo.NewFileSystemRepository(),
		infrarepo.NewConfigRepository(),
	)
}

func TestCompressFileMissingInput(t *testing.T) {
	uc := newSingle(&fakeCompressor{})

	_, err := uc.Execute(filepath.Join(t.TempDir(), "nope.pdf"), "", 85)
	if err == nil {
		t.Fatal("Execute() with missing file returned nil")
	}
	if !errors.Is(err, entities.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestCompressFileRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	writePDF(t, notes, 100)

	compressor := &fakeCompressor{}
	uc := newSingle(compressor)

	_, err := uc.Execute(notes, "", 85)
	if err == nil {
		t.Fatal("Execute() with non-PDF file returned nil")
	}
	if !errors.Is(err, entities.ErrInvalidFileFormat) {
		t.Errorf("error = %v, want ErrInvalidFileFormat", err)
	}
	if len(compressor.calls) != 0 {
		t.Errorf("compressor invoked %d times for non-PDF file", len(compressor.calls))
	}
}

func TestCompressFileDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	writePDF(t, doc, 500)
	original, _ := os.ReadFile(doc)

	uc := newSingle(&fakeCompressor{})
	result, err := uc.Execute(doc, "", 85)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Оригинал не тронут, сжатая версия лежит рядом
	data, _ := os.ReadFile(doc)
	if string(data) != string(original) {
		t.Error("original modified")
	}
	staged, err := os.ReadFile(entities.StagingPath(doc))
	if err != nil {
		t.Fatalf("compressed file missing: %v", err)
	}
	if len(staged) != 250 {
		t.Errorf("compressed size = %d, want 250", len(staged))
	}

	if result.OriginalSize != 500 || result.CompressedSize != 250 {
		t.Errorf("result sizes = %d/%d, want 500/250", result.OriginalSize, result.CompressedSize)
	}
	if result.CompressionRatio != 50 {
		t.Errorf("CompressionRatio = %v, want 50", result.CompressionRatio)
	}
	if result.SavedSpace != 250 {
		t.Errorf("SavedSpace = %d, want 250", result.SavedSpace)
	}
}

func TestCompressFileExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	out := filepath.Join(dir, "small.pdf")
	writePDF(t, doc, 400)

	compressor := &fakeCompressor{}
	uc := newSingle(compressor)

	if _, err := uc.Execute(doc, out, 85); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if compressor.outputs[0] != out {
		t.Errorf("output path = %s, want %s", compressor.outputs[0], out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if len(data) != 200 {
		t.Errorf("output size = %d, want 200", len(data))
	}
}

func TestCompressFileFailureRemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	writePDF(t, doc, 300)

	compressor := &fakeCompressor{
		failByName:  map[string]error{"doc.pdf": errors.New("exit status 1")},
		writeOnFail: true,
	}
	uc := newSingle(compressor)

	if _, err := uc.Execute(doc, "", 85); err == nil {
		t.Fatal("Execute() with failing compressor returned nil")
	}
	if _, err := os.Stat(entities.StagingPath(doc)); !os.IsNotExist(err) {
		t.Errorf("partial output %s left behind", entities.StagingPath(doc))
	}
}

func TestCompressReplaceSwapsOriginal(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	writePDF(t, doc, 600)

	uc := newSingle(&fakeCompressor{})
	result, err := uc.ExecuteReplace(doc, 85)
	if err != nil {
		t.Fatalf("ExecuteReplace() error = %v", err)
	}

	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read %s: %v", doc, err)
	}
	if len(data) != 300 {
		t.Errorf("replaced size = %d, want 300", len(data))
	}
	if _, err := os.Stat(entities.StagingPath(doc)); !os.IsNotExist(err) {
		t.Errorf("staging file %s left behind", entities.StagingPath(doc))
	}
	if _, err := os.Stat(doc + ".backup"); !os.IsNotExist(err) {
		t.Errorf("backup file %s left behind", doc+".backup")
	}
	if result.CurrentFile != doc {
		t.Errorf("CurrentFile = %s, want %s", result.CurrentFile, doc)
	}
}

func TestCompressReplaceFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	writePDF(t, doc, 600)
	original, _ := os.ReadFile(doc)

	compressor := &fakeCompressor{
		failByName:  map[string]error{"doc.pdf": errors.New("signal: killed")},
		writeOnFail: true,
	}
	uc := newSingle(compressor)

	if _, err := uc.ExecuteReplace(doc, 85); err == nil {
		t.Fatal("ExecuteReplace() with failing compressor returned nil")
	}

	data, _ := os.ReadFile(doc)
	if string(data) != string(original) {
		t.Error("original modified after failed compression")
	}
	if _, err := os.Stat(entities.StagingPath(doc)); !os.IsNotExist(err) {
		t.Errorf("staging file %s left behind", entities.StagingPath(doc))
	}
}
