package usecases

import (
	"fmt"
	"os"
	"path/filepath"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
	"pdfsqueeze/internal/infrastructure/archive"
)

// defaultMaxPartSizeMB предел размера части архива по умолчанию
const defaultMaxPartSizeMB = 23

// ArchiveDirectoryUseCase сценарий упаковки подпапок в zip архивы
type ArchiveDirectoryUseCase struct {
	archiver archive.DirectoryArchiver
	fileRepo repositories.FileRepository
	logger   repositories.Logger
}

// NewArchiveDirectoryUseCase создает новый сценарий архивации
func NewArchiveDirectoryUseCase(
	archiver archive.DirectoryArchiver,
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
) *ArchiveDirectoryUseCase {
	return &ArchiveDirectoryUseCase{
		archiver: archiver,
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// DirectoryArchiveResult результат архивации подпапок
type DirectoryArchiveResult struct {
	TotalDirectories int
	ArchivedCount    int
	FailedCount      int
	Parts            []string
	Errors           []error
}

// Execute упаковывает каждую подпапку источника в отдельный архив.
// Пустой outputDir означает директорию <источник>_zips рядом с источником.
// maxPartSizeMB <= 0 заменяется значением по умолчанию.
func (uc *ArchiveDirectoryUseCase) Execute(sourceDir, outputDir string, maxPartSizeMB int) (*DirectoryArchiveResult, error) {
	// Проверяем существование исходной директории
	if !uc.fileRepo.FileExists(sourceDir) {
		return nil, fmt.Errorf("%w: %s", entities.ErrDirectoryNotFound, sourceDir)
	}

	if outputDir == "" {
		abs, err := filepath.Abs(sourceDir)
		if err != nil {
			return nil, fmt.Errorf("ошибка определения пути источника: %w", err)
		}
		outputDir = abs + "_zips"
	}

	if maxPartSizeMB <= 0 {
		maxPartSizeMB = defaultMaxPartSizeMB
	}
	maxPartSize := int64(maxPartSizeMB) * 1024 * 1024

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", sourceDir, err)
	}

	result := &DirectoryArchiveResult{
		Parts:  make([]string, 0),
		Errors: make([]error, 0),
	}

	// Обрабатываем каждую подпапку
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		result.TotalDirectories++

		subDir := filepath.Join(sourceDir, entry.Name())
		parts, err := uc.archiver.ArchiveDirectory(subDir, outputDir, entry.Name(), maxPartSize)
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Errorf("ошибка архивации %s: %w", entry.Name(), err))
			uc.logError("Ошибка архивации %s: %v", entry.Name(), err)
			continue
		}

		// Пустая подпапка не дает архива
		if len(parts) == 0 {
			uc.logDebug("Подпапка без файлов пропущена: %s", subDir)
			continue
		}

		result.ArchivedCount++
		result.Parts = append(result.Parts, parts...)
		if len(parts) == 1 {
			uc.logInfo("📦 Архив создан: %s", parts[0])
		} else {
			uc.logInfo("📦 Архив создан: %s (%d частей)", entry.Name(), len(parts))
		}
	}

	return result, nil
}

func (uc *ArchiveDirectoryUseCase) logDebug(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Debug(format, args...)
	}
}

func (uc *ArchiveDirectoryUseCase) logInfo(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Info(format, args...)
	}
}

func (uc *ArchiveDirectoryUseCase) logError(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Error(format, args...)
	}
}
