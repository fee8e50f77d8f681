package compressors

import (
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/common"
	"github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/model/optimize"

	"pdfsqueeze/internal/domain/entities"
)

// UniPDFCompressor реализация компрессора с использованием UniPDF
type UniPDFCompressor struct{}

// NewUniPDFCompressor создает новый UniPDF компрессор
func NewUniPDFCompressor() *UniPDFCompressor {
	return &UniPDFCompressor{}
}

// failure собирает неуспешный результат вместе с обернутой ошибкой
func failure(inputPath string, size int64, err error, format string, args ...interface{}) (*entities.CompressionResult, error) {
	wrapped := fmt.Errorf(format+": %w", append(args, err)...)
	return &entities.CompressionResult{
		CurrentFile:  inputPath,
		OriginalSize: size,
		Success:      false,
		Error:        wrapped,
	}, wrapped
}

// Compress сжимает PDF файл используя UniPDF библиотеку
func (u *UniPDFCompressor) Compress(inputPath, outputPath string, config *entities.CompressionConfig) (*entities.CompressionResult, error) {
	// Библиотека сама пишет в консоль, оставляем только ошибки
	common.SetLogger(common.NewConsoleLogger(common.LogLevelError))

	// Проверяем лицензионный ключ из конфигурации или переменной окружения
	licenseKey := config.UniPDFLicenseKey
	if licenseKey == "" {
		licenseKey = os.Getenv("UNIDOC_LICENSE_API_KEY")
	}

	if licenseKey == "" {
		err := fmt.Errorf("UniPDF требует лицензионный ключ: установите его в конфигурации или в переменной UNIDOC_LICENSE_API_KEY, либо используйте алгоритм 'pdfcpu' для бесплатной обработки (ключ выдается на https://cloud.unidoc.io)")
		return &entities.CompressionResult{
			CurrentFile: inputPath,
			Success:     false,
			Error:       err,
		}, err
	}

	// Устанавливаем лицензионный ключ
	os.Setenv("UNIDOC_LICENSE_API_KEY", licenseKey)

	// Получаем исходный размер файла
	originalInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации об исходном файле: %w", err)
	}

	// Открываем исходный PDF файл
	pdfReader, file, err := model.NewPdfReaderFromFile(inputPath, nil)
	if err != nil {
		return failure(inputPath, originalInfo.Size(), err, "ошибка открытия файла")
	}
	defer file.Close()

	// Создаем writer с оптимизацией
	pdfWriter := model.NewPdfWriter()

	// Настраиваем оптимизацию в зависимости от уровня сжатия
	optimizer := optimize.New(optimize.Options{
		CombineDuplicateDirectObjects:   true,
		CombineIdenticalIndirectObjects: true,
		ImageUpperPPI:                   float64(150 - config.Level), // чем выше уровень, тем ниже PPI
		ImageQuality:                    100 - config.Level,          // чем выше уровень, тем ниже качество
	})

	pdfWriter.SetOptimizer(optimizer)

	// Копируем страницы
	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return failure(inputPath, originalInfo.Size(), err, "ошибка получения количества страниц")
	}

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return failure(inputPath, originalInfo.Size(), err, "ошибка получения страницы %d", i)
		}

		if err := pdfWriter.AddPage(page); err != nil {
			return failure(inputPath, originalInfo.Size(), err, "ошибка добавления страницы %d", i)
		}
	}

	// Сохраняем оптимизированный файл
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return failure(inputPath, originalInfo.Size(), err, "ошибка создания выходного файла")
	}
	defer outputFile.Close()

	if err := pdfWriter.Write(outputFile); err != nil {
		return failure(inputPath, originalInfo.Size(), err, "ошибка записи файла")
	}

	// Получаем размер сжатого файла
	compressedInfo, err := os.Stat(outputPath)
	if err != nil {
		return failure(inputPath, originalInfo.Size(), err, "ошибка получения информации о сжатом файле")
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
