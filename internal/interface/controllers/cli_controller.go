package controllers

import (
	"fmt"

	"pdfsqueeze/internal/domain/entities"
	usecases "pdfsqueeze/internal/usecase"
)

// CLIController выполняет сжатие одного файла и печатает итог в консоль.
// Уровень сжатия и режим замены приходят из флагов командной строки.
type CLIController struct {
	compressPDFUseCase *usecases.CompressPDFUseCase
}

// NewCLIController создает новый CLI контроллер
func NewCLIController(compressPDFUseCase *usecases.CompressPDFUseCase) *CLIController {
	return &CLIController{
		compressPDFUseCase: compressPDFUseCase,
	}
}

// HandleSingleFile обрабатывает сжатие одного файла.
// При replace сжатая версия заменяет оригинал; иначе результат пишется
// в outputPath (пусто = рядом с исходным с суффиксом _compressed).
func (c *CLIController) HandleSingleFile(inputPath, outputPath string, compressionLevel int, replace bool) error {
	fmt.Printf("🚀 Начинаем сжатие файла: %s\n", inputPath)

	var result *entities.CompressionResult
	var err error

	if replace {
		result, err = c.compressPDFUseCase.ExecuteReplace(inputPath, compressionLevel)
	} else {
		if outputPath == "" {
			outputPath = entities.StagingPath(inputPath)
		}
		result, err = c.compressPDFUseCase.Execute(inputPath, outputPath, compressionLevel)
	}
	if err != nil {
		return fmt.Errorf("ошибка сжатия: %w", err)
	}

	c.showCompressionResult(result, outputPath, replace)

	return nil
}

// showCompressionResult показывает результат сжатия файла
func (c *CLIController) showCompressionResult(result *entities.CompressionResult, outputPath string, replace bool) {
	fmt.Println("\n📊 Результаты сжатия:")
	fmt.Printf("Исходный размер: %.2f MB\n", float64(result.OriginalSize)/1024/1024)
	fmt.Printf("Сжатый размер: %.2f MB\n", float64(result.CompressedSize)/1024/1024)
	fmt.Printf("Сжатие: %.1f%%\n", result.CompressionRatio)
	fmt.Printf("Сэкономлено: %.2f MB\n", float64(result.SavedSpace)/1024/1024)

	if result.IsEffective() {
		fmt.Println("✅ Сжатие выполнено успешно!")
	} else {
		fmt.Println("⚠️ Файл не был сжат (возможно, уже оптимизирован)")
	}

	if replace {
		fmt.Printf("\n🎉 Готово! Оригинал заменен сжатой версией: %s\n", result.CurrentFile)
	} else {
		fmt.Printf("\n🎉 Готово! Сжатый файл сохранен как: %s\n", outputPath)
	}
}
