package usecases

import (
	"fmt"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
	"pdfsqueeze/internal/infrastructure/compressors"
)

// ProcessAllFilesUseCase сценарий для обработки всех поддерживаемых типов файлов
type ProcessAllFilesUseCase struct {
	pdfProcessor     *ProcessPDFsUseCase
	imageProcessor   *CompressImageUseCase
	archiveProcessor *ArchiveDirectoryUseCase
	logger           repositories.Logger
}

// NewProcessAllFilesUseCase создает новый сценарий обработки всех файлов
func NewProcessAllFilesUseCase(
	pdfProcessor *ProcessPDFsUseCase,
	imageProcessor *CompressImageUseCase,
	archiveProcessor *ArchiveDirectoryUseCase,
	logger repositories.Logger,
) *ProcessAllFilesUseCase {
	return &ProcessAllFilesUseCase{
		pdfProcessor:     pdfProcessor,
		imageProcessor:   imageProcessor,
		archiveProcessor: archiveProcessor,
		logger:           logger,
	}
}

// Execute выполняет обработку всех поддерживаемых файлов: PDF, затем
// изображения, затем архивация подпапок. Каждый этап включается
// конфигурацией независимо от остальных.
func (uc *ProcessAllFilesUseCase) Execute(config *entities.Config) error {
	uc.logger.Debug("Начинаем обработку файлов в: %s", config.Scanner.SourceDirectory)

	var processedAnything bool

	// Обрабатываем PDF файлы
	if uc.shouldProcessPDFs(config) {
		uc.logger.Debug("Обработка PDF файлов...")
		if err := uc.pdfProcessor.Execute(config); err != nil {
			return fmt.Errorf("ошибка обработки PDF файлов: %w", err)
		}
		processedAnything = true
	}

	// Обрабатываем изображения
	if uc.shouldProcessImages(config) {
		uc.logger.Debug("Обработка изображений...")
		result, err := uc.imageProcessor.ProcessImagesInDirectory(
			config.Scanner.SourceDirectory,
			config.Scanner.TargetDirectory,
			&config.Compression,
			config.Scanner.ReplaceOriginal,
		)
		if err != nil {
			return fmt.Errorf("ошибка обработки изображений: %w", err)
		}

		if result.TotalFiles > 0 {
			uc.logger.Info("Изображений обработано: %d, успешно: %d, ошибок: %d",
				result.TotalFiles, result.SuccessfulFiles, len(result.FailedFiles))
		}
		for _, failed := range result.FailedFiles {
			uc.logger.Error("Не удалось обработать изображение %s: %v", failed.FilePath, failed.Error)
		}

		processedAnything = true
	}

	// Архивируем подпапки
	if config.Archive.Enabled && uc.archiveProcessor != nil {
		uc.logger.Debug("Архивация подпапок...")
		result, err := uc.archiveProcessor.Execute(
			config.Scanner.SourceDirectory,
			config.Archive.OutputDirectory,
			config.Archive.MaxPartSizeMB,
		)
		if err != nil {
			return fmt.Errorf("ошибка архивации: %w", err)
		}
		if result.ArchivedCount > 0 {
			uc.logger.Info("Архивов создано: %d (частей: %d)", result.ArchivedCount, len(result.Parts))
		}
		processedAnything = true
	}

	if !processedAnything {
		uc.logger.Warning("Не выбрано ни одного типа файлов для обработки")
		return fmt.Errorf("не выбрано ни одного типа файлов для обработки")
	}

	uc.logger.Debug("Обработка всех файлов завершена")
	return nil
}

// shouldProcessPDFs проверяет, нужно ли обрабатывать PDF файлы
func (uc *ProcessAllFilesUseCase) shouldProcessPDFs(config *entities.Config) bool {
	// PDF файлы обрабатываются всегда, если есть алгоритм сжатия
	return config.Compression.Algorithm != ""
}

// shouldProcessImages проверяет, нужно ли обрабатывать изображения
func (uc *ProcessAllFilesUseCase) shouldProcessImages(config *entities.Config) bool {
	return config.Compression.EnableJPEG || config.Compression.EnablePNG
}

// GetSupportedFileTypes возвращает список поддерживаемых типов файлов
func (uc *ProcessAllFilesUseCase) GetSupportedFileTypes(config *entities.Config) []string {
	var types []string

	if uc.shouldProcessPDFs(config) {
		types = append(types, "PDF")
	}

	if config.Compression.EnableJPEG {
		types = append(types, "JPEG")
	}

	if config.Compression.EnablePNG {
		types = append(types, "PNG")
	}

	return types
}

// IsFileSupported проверяет, поддерживается ли данный файл для обработки
func (uc *ProcessAllFilesUseCase) IsFileSupported(filename string, config *entities.Config) bool {
	// Проверяем PDF
	if entities.IsPDFPath(filename) {
		return uc.shouldProcessPDFs(config)
	}

	// Проверяем изображения
	if compressors.IsImageFile(filename) {
		switch compressors.GetImageFormat(filename) {
		case "jpeg":
			return config.Compression.EnableJPEG
		case "png":
			return config.Compression.EnablePNG
		}
	}

	return false
}
