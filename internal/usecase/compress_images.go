package usecases

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
	"pdfsqueeze/internal/infrastructure/compressors"
)

// CompressImageUseCase обрабатывает сжатие изображений
type CompressImageUseCase struct {
	logger     repositories.Logger
	compressor compressors.ImageCompressor
}

// NewCompressImageUseCase создает новый UseCase для сжатия изображений
func NewCompressImageUseCase(logger repositories.Logger, compressor compressors.ImageCompressor) *CompressImageUseCase {
	return &CompressImageUseCase{
		logger:     logger,
		compressor: compressor,
	}
}

// CompressImage сжимает одно изображение
func (uc *CompressImageUseCase) CompressImage(inputPath, outputPath string, config *entities.AppCompressionConfig) error {
	format := compressors.GetImageFormat(inputPath)
	if format == "" {
		return fmt.Errorf("неподдерживаемый формат изображения: %s", inputPath)
	}

	// Проверяем, включено ли сжатие для данного формата
	switch format {
	case "jpeg":
		if !config.EnableJPEG {
			uc.logger.Debug("Пропуск JPEG файла (сжатие отключено): %s", inputPath)
			return nil
		}
		return uc.compressor.CompressJPEG(inputPath, outputPath, config.JPEGQuality)
	case "png":
		if !config.EnablePNG {
			uc.logger.Debug("Пропуск PNG файла (сжатие отключено): %s", inputPath)
			return nil
		}
		return uc.compressor.CompressPNG(inputPath, outputPath, config.PNGQuality)
	default:
		return fmt.Errorf("неподдерживаемый формат изображения: %s", format)
	}
}

// ProcessImagesInDirectory обрабатывает все изображения в директории
func (uc *CompressImageUseCase) ProcessImagesInDirectory(sourceDir, targetDir string, config *entities.AppCompressionConfig, replaceOriginal bool) (*ProcessingResult, error) {
	result := &ProcessingResult{
		ProcessedFiles:  make([]string, 0),
		FailedFiles:     make([]ProcessingError, 0),
		SuccessfulFiles: 0,
		TotalFiles:      0,
	}

	// Без включенных форматов делать нечего
	if !config.EnableJPEG && !config.EnablePNG {
		uc.logger.Debug("Сжатие изображений отключено в конфигурации")
		return result, nil
	}

	// Рекурсивно обходим директорию
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == sourceDir {
				return err
			}
			uc.logger.Error("Ошибка доступа к файлу %s: %v", path, err)
			return nil // Продолжаем обработку других файлов
		}

		// Пропускаем директории
		if d.IsDir() {
			return nil
		}

		// Проверяем, является ли файл изображением
		if !compressors.IsImageFile(path) {
			return nil
		}

		result.TotalFiles++

		// Определяем путь выходного файла
		var outputPath string
		if replaceOriginal {
			outputPath = path
		} else {
			relPath, err := filepath.Rel(sourceDir, path)
			if err != nil {
				uc.logger.Error("Не удалось получить относительный путь для %s: %v", path, err)
				result.FailedFiles = append(result.FailedFiles, ProcessingError{
					FilePath: path,
					Error:    err,
				})
				return nil
			}
			outputPath = filepath.Join(targetDir, relPath)

			// Создаем директорию для выходного файла
			outputDir := filepath.Dir(outputPath)
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				uc.logger.Error("Не удалось создать директорию %s: %v", outputDir, err)
				result.FailedFiles = append(result.FailedFiles, ProcessingError{
					FilePath: path,
					Error:    err,
				})
				return nil
			}
		}

		// Сжимаем изображение
		uc.logger.Info("🖼️ Сжатие изображения: %s", path)
		if err := uc.CompressImage(path, outputPath, config); err != nil {
			uc.logger.Error("Ошибка сжатия изображения %s: %v", path, err)
			result.FailedFiles = append(result.FailedFiles, ProcessingError{
				FilePath: path,
				Error:    err,
			})
		} else {
			result.ProcessedFiles = append(result.ProcessedFiles, path)
			result.SuccessfulFiles++
			uc.logger.Success("Изображение сжато: %s", path)
		}

		return nil
	})

	if err != nil {
		return result, fmt.Errorf("ошибка обхода директории %s: %w", sourceDir, err)
	}

	return result, nil
}

// ProcessingResult результат обработки изображений
type ProcessingResult struct {
	ProcessedFiles  []string
	FailedFiles     []ProcessingError
	SuccessfulFiles int
	TotalFiles      int
}

// ProcessingError ошибка обработки файла
type ProcessingError struct {
	FilePath string
	Error    error
}

// GetSupportedImageExtensions возвращает список поддерживаемых расширений изображений
func GetSupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// CountImageFiles подсчитывает количество изображений в директории
func CountImageFiles(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Игнорируем ошибки доступа к файлам
		}

		if !d.IsDir() && compressors.IsImageFile(path) {
			count++
		}

		return nil
	})

	return count, err
}
