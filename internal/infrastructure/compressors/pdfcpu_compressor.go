package compressors

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"pdfsqueeze/internal/domain/entities"
)

// PDFCPUCompressor реализация компрессора с использованием PDFCPU
type PDFCPUCompressor struct{}

// NewPDFCPUCompressor создает новый PDFCPU компрессор
func NewPDFCPUCompressor() *PDFCPUCompressor {
	return &PDFCPUCompressor{}
}

// Compress сжимает PDF файл используя PDFCPU библиотеку
func (p *PDFCPUCompressor) Compress(inputPath, outputPath string, config *entities.CompressionConfig) (*entities.CompressionResult, error) {
	// Получаем исходный размер файла
	originalInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации об исходном файле: %w", err)
	}

	// Выполняем оптимизацию с базовыми настройками
	err = api.OptimizeFile(inputPath, outputPath, nil)
	if err != nil {
		err = fmt.Errorf("ошибка оптимизации PDFCPU: %w", err)
		return &entities.CompressionResult{
			CurrentFile:  inputPath,
			OriginalSize: originalInfo.Size(),
			Success:      false,
			Error:        err,
		}, err
	}

	// Получаем размер сжатого файла
	compressedInfo, err := os.Stat(outputPath)
	if err != nil {
		err = fmt.Errorf("ошибка получения информации о сжатом файле: %w", err)
		return &entities.CompressionResult{
			CurrentFile:  inputPath,
			OriginalSize: originalInfo.Size(),
			Success:      false,
			Error:        err,
		}, err
	}

	result := &entities.CompressionResult{
		CurrentFile:    inputPath,
		OriginalSize:   originalInfo.Size(),
		CompressedSize: compressedInfo.Size(),
		Success:        true,
	}

	result.CalculateCompressionRatio()

	return result, nil
}
