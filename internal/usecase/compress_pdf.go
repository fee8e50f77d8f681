package usecases

import (
	"fmt"
	"os"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
)

// CompressPDFUseCase сценарий сжатия одного PDF файла
type CompressPDFUseCase struct {
	compressor repositories.PDFCompressor
	fileRepo   repositories.FileRepository
	configRepo repositories.ConfigRepository
}

// NewCompressPDFUseCase создает новый сценарий сжатия PDF
func NewCompressPDFUseCase(
	compressor repositories.PDFCompressor,
	fileRepo repositories.FileRepository,
	configRepo repositories.ConfigRepository,
) *CompressPDFUseCase {
	return &CompressPDFUseCase{
		compressor: compressor,
		fileRepo:   fileRepo,
		configRepo: configRepo,
	}
}

// Execute выполняет сжатие PDF файла в указанный выходной путь.
// Пустой outputPath означает файл рядом с исходным с суффиксом _compressed.
func (uc *CompressPDFUseCase) Execute(inputPath string, outputPath string, compressionLevel int) (*entities.CompressionResult, error) {
	// Проверяем существование входного файла
	if !uc.fileRepo.FileExists(inputPath) {
		return nil, fmt.Errorf("%w: %s", entities.ErrFileNotFound, inputPath)
	}

	// Сжимаем только PDF
	if !entities.IsPDFPath(inputPath) {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidFileFormat, inputPath)
	}

	// Получаем информацию о файле
	fileInfo, err := uc.fileRepo.GetFileInfo(inputPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	// Создаем конфигурацию сжатия
	config, err := uc.configRepo.GetCompressionConfig(compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания конфигурации: %w", err)
	}

	// Валидируем конфигурацию
	if err := uc.configRepo.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	// Генерируем имя выходного файла, если не указано
	if outputPath == "" {
		outputPath = entities.StagingPath(inputPath)
	}

	// Выполняем сжатие
	result, err := uc.compressor.Compress(inputPath, outputPath, config)
	if err != nil {
		// Недописанный результат не оставляем
		_ = os.Remove(outputPath)
		return nil, fmt.Errorf("ошибка сжатия файла: %w", err)
	}

	// Устанавливаем исходный размер
	result.OriginalSize = fileInfo.Size
	result.CalculateCompressionRatio()

	return result, nil
}

// ExecuteReplace сжимает PDF файл и заменяет оригинал сжатой версией
func (uc *CompressPDFUseCase) ExecuteReplace(inputPath string, compressionLevel int) (*entities.CompressionResult, error) {
	staging := entities.StagingPath(inputPath)

	result, err := uc.Execute(inputPath, staging, compressionLevel)
	if err != nil {
		return nil, err
	}

	if err := swapOriginal(nil, inputPath, staging); err != nil {
		_ = os.Remove(staging)
		return nil, fmt.Errorf("%w: %v", entities.ErrReplaceFailed, err)
	}

	result.CurrentFile = inputPath
	return result, nil
}
