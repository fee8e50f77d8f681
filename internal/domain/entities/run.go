package entities

import "time"

// RunRecord итог одного запуска пакетного сжатия для журнала
type RunRecord struct {
	ID              int64
	StartedAt       time.Time
	FinishedAt      time.Time
	RootDirectory   string
	Algorithm       string
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int
	OriginalBytes   int64
	CompressedBytes int64
}

// FileRecord результат обработки одного файла в рамках запуска
type FileRecord struct {
	RunID          int64
	Path           string
	OriginalSize   int64
	CompressedSize int64
	Success        bool
	Error          string
}

// NewRunRecord собирает запись запуска из итогового статуса обработки
func NewRunRecord(rootDir, algorithm string, status *ProcessingStatus) *RunRecord {
	return &RunRecord{
		StartedAt:       status.StartTime,
		FinishedAt:      status.StartTime.Add(status.ElapsedTime),
		RootDirectory:   rootDir,
		Algorithm:       algorithm,
		TotalFiles:      status.TotalFiles,
		SuccessfulFiles: status.SuccessfulFiles,
		FailedFiles:     status.FailedFiles,
		OriginalBytes:   status.TotalOriginalSize,
		CompressedBytes: status.TotalCompressedSize,
	}
}

// NewFileRecord собирает запись файла из результата сжатия
func NewFileRecord(result *CompressionResult) FileRecord {
	record := FileRecord{
		Path:           result.CurrentFile,
		OriginalSize:   result.OriginalSize,
		CompressedSize: result.CompressedSize,
		Success:        result.Success,
	}
	if result.Error != nil {
		record.Error = result.Error.Error()
	}
	return record
}

// SavedBytes возвращает сэкономленный объем за запуск
func (r *RunRecord) SavedBytes() int64 {
	return r.OriginalBytes - r.CompressedBytes
}
