package usecases_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pdfsqueeze/internal/domain/entities"
	infrarepo "pdfsqueeze/internal/infrastructure/repositories"
	usecases "pdfsqueeze/internal/usecase"
)

// fakeCompressor подменяет движок сжатия в тестах.
type fakeCompressor struct {
	mu          sync.Mutex
	calls       []string // input paths in invocation order
	outputs     []string // output paths in invocation order
	failByName  map[string]error
	writeOnFail bool // эмулирует частично записанный выходной файл
}

func (f *fakeCompressor) Compress(inputPath, outputPath string, config *entities.CompressionConfig) (*entities.CompressionResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inputPath)
	f.outputs = append(f.outputs, outputPath)
	f.mu.Unlock()

	if err, ok := f.failByName[filepath.Base(inputPath)]; ok && err != nil {
		if f.writeOnFail {
			_ = os.WriteFile(outputPath, []byte("partial"), 0644)
		}
		return &entities.CompressionResult{
			CurrentFile: inputPath,
			Success:     false,
			Error:       err,
		}, err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	compressed := data[:len(data)/2]
	if err := os.WriteFile(outputPath, compressed, 0644); err != nil {
		return nil, err
	}

	result := &entities.CompressionResult{
		CurrentFile:    inputPath,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
		Success:        true,
	}
	result.CalculateCompressionRatio()
	return result, nil
}

// recordLogger накапливает сообщения по уровням.
type recordLogger struct {
	mu        sync.Mutex
	debugs    []string
	infos     []string
	warnings  []string
	errors    []string
	successes []string
}

func (l *recordLogger) add(list *[]string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*list = append(*list, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Debug(format string, args ...interface{})   { l.add(&l.debugs, format, args...) }
func (l *recordLogger) Info(format string, args ...interface{})    { l.add(&l.infos, format, args...) }
func (l *recordLogger) Warning(format string, args ...interface{}) { l.add(&l.warnings, format, args...) }
func (l *recordLogger) Error(format string, args ...interface{})   { l.add(&l.errors, format, args...) }
func (l *recordLogger) Success(format string, args ...interface{}) { l.add(&l.successes, format, args...) }
func (l *recordLogger) Close() error                               { return nil }

func countContaining(lines []string, substr string) int {
	count := 0
	for _, line := range lines {
		if strings.Contains(line, substr) {
			count++
		}
	}
	return count
}

// fakeHistory записывает вызовы журнала запусков.
type fakeHistory struct {
	runs  []*entities.RunRecord
	files [][]entities.FileRecord
}

func (h *fakeHistory) SaveRun(run *entities.RunRecord, files []entities.FileRecord) error {
	h.runs = append(h.runs, run)
	h.files = append(h.files, files)
	return nil
}

func (h *fakeHistory) RecentRuns(limit int) ([]entities.RunRecord, error) { return nil, nil }
func (h *fakeHistory) RunFiles(runID int64) ([]entities.FileRecord, error) {
	return nil, nil
}
func (h *fakeHistory) Close() error { return nil }

func batchConfig(source string) *entities.Config {
	return &entities.Config{
		Scanner: entities.ScannerConfig{
			SourceDirectory: source,
			TargetDirectory: filepath.Join(source, "compressed"),
			ReplaceOriginal: true,
		},
		Compression: entities.AppCompressionConfig{
			Level:     85,
			Algorithm: entities.AlgorithmGhostscript,
		},
		Processing: entities.ProcessingConfig{
			ParallelWorkers: 1,
			RetryAttempts:   1,
		},
	}
}

func writePDF(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newBatch(compressor *fakeCompressor, logger *recordLogger) *usecases.ProcessPDFsUseCase {
	return usecases.NewProcessPDFsUseCase(
		compressor,
		infrarepo.NewFileSystemRepository(),
		infrarepo.NewConfigRepository(),
		logger,
	)
}

func TestExecuteMixedSuccessAndFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.pdf")
	bad := filepath.Join(dir, "b.PDF")
	writePDF(t, good, 1000)
	writePDF(t, bad, 800)
	badOriginal, _ := os.ReadFile(bad)

	compressor := &fakeCompressor{
		failByName:  map[string]error{"b.PDF": errors.New("exit status 1")},
		writeOnFail: true,
	}
	logger := &recordLogger{}
	uc := newBatch(compressor, logger)

	if err := uc.Execute(batchConfig(dir)); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Успешный файл заменен сжатой версией
	goodData, err := os.ReadFile(good)
	if err != nil {
		t.Fatalf("read %s: %v", good, err)
	}
	if len(goodData) != 500 {
		t.Errorf("compressed size = %d, want 500", len(goodData))
	}
	if _, err := os.Stat(entities.StagingPath(good)); !os.IsNotExist(err) {
		t.Errorf("staging file %s left behind", entities.StagingPath(good))
	}

	// Неудачный файл не тронут, промежуточный файл удален
	badData, err := os.ReadFile(bad)
	if err != nil {
		t.Fatalf("read %s: %v", bad, err)
	}
	if string(badData) != string(badOriginal) {
		t.Error("failed file content changed")
	}
	if _, err := os.Stat(entities.StagingPath(bad)); !os.IsNotExist(err) {
		t.Errorf("staging file %s left behind after failure", entities.StagingPath(bad))
	}

	// По одному уведомлению на файл
	if got := countContaining(logger.infos, "🟡 Пробуем сжать"); got != 2 {
		t.Errorf("start notices = %d, want 2", got)
	}
	if got := countContaining(logger.successes, "✅ Сжато: "+good); got != 1 {
		t.Errorf("success notices for %s = %d, want 1", good, got)
	}
	if got := countContaining(logger.warnings, "⚠️ Пропущено (ошибка или нет доступа): "+bad); got != 1 {
		t.Errorf("skip notices for %s = %d, want 1", bad, got)
	}
}

func TestExecuteDirectoryWithoutPDFs(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	writePDF(t, notes, 100)

	compressor := &fakeCompressor{}
	logger := &recordLogger{}
	uc := newBatch(compressor, logger)

	if err := uc.Execute(batchConfig(dir)); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(compressor.calls) != 0 {
		t.Errorf("compressor invoked %d times for directory without PDFs", len(compressor.calls))
	}
	if n := len(logger.infos) + len(logger.successes) + len(logger.warnings) + len(logger.errors); n != 0 {
		t.Errorf("emitted %d visible log lines for directory without PDFs", n)
	}

	// Посторонний файл не тронут
	data, err := os.ReadFile(notes)
	if err != nil || len(data) != 100 {
		t.Errorf("non-PDF file modified: err=%v len=%d", err, len(data))
	}
}

func TestExecuteFindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub", "doc.pdf")
	writePDF(t, nested, 600)

	compressor := &fakeCompressor{}
	logger := &recordLogger{}
	uc := newBatch(compressor, logger)

	if err := uc.Execute(batchConfig(dir)); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(compressor.calls) != 1 || compressor.calls[0] != nested {
		t.Fatalf("compressor calls = %v, want [%s]", compressor.calls, nested)
	}
	if want := filepath.Join(dir, "sub", "doc_compressed.pdf"); compressor.outputs[0] != want {
		t.Errorf("staging path = %s, want %s", compressor.outputs[0], want)
	}

	data, err := os.ReadFile(nested)
	if err != nil {
		t.Fatalf("read %s: %v", nested, err)
	}
	if len(data) != 300 {
		t.Errorf("nested file size = %d, want 300", len(data))
	}
}

func TestExecuteKilledProcessCountsAsFailure(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.pdf")
	writePDF(t, doc, 500)
	original, _ := os.ReadFile(doc)

	compressor := &fakeCompressor{
		failByName: map[string]error{"doc.pdf": errors.New("signal: killed")},
	}
	logger := &recordLogger{}
	uc := newBatch(compressor, logger)

	if err := uc.Execute(batchConfig(dir)); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, _ := os.ReadFile(doc)
	if string(data) != string(original) {
		t.Error("file changed after killed compression process")
	}
	if got := countContaining(logger.warnings, "⚠️ Пропущено"); got != 1 {
		t.Errorf("skip notices = %d, want 1", got)
	}
}

func TestExecuteMissingSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	config := batchConfig(filepath.Join(dir, "nope"))

	uc := newBatch(&fakeCompressor{}, &recordLogger{})
	err := uc.Execute(config)
	if err == nil {
		t.Fatal("Execute() with missing source returned nil")
	}
	if !errors.Is(err, entities.ErrDirectoryNotFound) {
		t.Errorf("error = %v, want ErrDirectoryNotFound", err)
	}
}

func TestExecutePreservesTreeWithoutReplacement(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src")
	nested := filepath.Join(source, "year", "doc.pdf")
	writePDF(t, nested, 400)
	original, _ := os.ReadFile(nested)

	config := batchConfig(source)
	config.Scanner.ReplaceOriginal = false
	config.Scanner.TargetDirectory = filepath.Join(dir, "out")

	uc := newBatch(&fakeCompressor{}, &recordLogger{})
	if err := uc.Execute(config); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Оригинал не тронут, сжатая копия повторяет структуру
	data, _ := os.ReadFile(nested)
	if string(data) != string(original) {
		t.Error("original modified in non-replace mode")
	}
	copied, err := os.ReadFile(filepath.Join(dir, "out", "year", "doc.pdf"))
	if err != nil {
		t.Fatalf("compressed copy missing: %v", err)
	}
	if len(copied) != 200 {
		t.Errorf("compressed copy size = %d, want 200", len(copied))
	}
}

func TestExecuteRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, filepath.Join(dir, "a.pdf"), 1000)
	writePDF(t, filepath.Join(dir, "b.pdf"), 800)

	compressor := &fakeCompressor{
		failByName: map[string]error{"b.pdf": errors.New("exit status 1")},
	}
	history := &fakeHistory{}
	uc := newBatch(compressor, &recordLogger{})
	uc.SetHistory(history)

	if err := uc.Execute(batchConfig(dir)); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(history.runs) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(history.runs))
	}
	run := history.runs[0]
	if run.TotalFiles != 2 || run.SuccessfulFiles != 1 || run.FailedFiles != 1 {
		t.Errorf("run totals = %d/%d/%d, want 2/1/1", run.TotalFiles, run.SuccessfulFiles, run.FailedFiles)
	}
	if run.Algorithm != entities.AlgorithmGhostscript {
		t.Errorf("run algorithm = %q", run.Algorithm)
	}
	if len(history.files[0]) != 2 {
		t.Errorf("recorded file rows = %d, want 2", len(history.files[0]))
	}
}

func TestExecuteTreatsZeroRetriesAsOneAttempt(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, filepath.Join(dir, "a.pdf"), 400)

	compressor := &fakeCompressor{}
	config := batchConfig(dir)
	config.Processing.RetryAttempts = 0

	uc := newBatch(compressor, &recordLogger{})
	if err := uc.Execute(config); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(compressor.calls) != 1 {
		t.Errorf("compressor calls = %d, want 1", len(compressor.calls))
	}
}
