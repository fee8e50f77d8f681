package usecases

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
)

// ProcessPDFsUseCase сценарий автоматической обработки PDF файлов
type ProcessPDFsUseCase struct {
	compressor       repositories.PDFCompressor
	fileRepo         repositories.FileRepository
	configRepo       repositories.ConfigRepository
	logger           repositories.Logger
	history          repositories.HistoryRepository
	progressReporter func(entities.ProcessingStatus)
}

// NewProcessPDFsUseCase создает новый сценарий обработки PDF
func NewProcessPDFsUseCase(
	compressor repositories.PDFCompressor,
	fileRepo repositories.FileRepository,
	configRepo repositories.ConfigRepository,
	logger repositories.Logger,
) *ProcessPDFsUseCase {
	return &ProcessPDFsUseCase{
		compressor: compressor,
		fileRepo:   fileRepo,
		configRepo: configRepo,
		logger:     logger,
	}
}

// SetProgressReporter устанавливает функцию для отчета о прогрессе
func (uc *ProcessPDFsUseCase) SetProgressReporter(reporter func(entities.ProcessingStatus)) {
	uc.progressReporter = reporter
}

// SetHistory подключает журнал запусков. Без журнала запуски не записываются.
func (uc *ProcessPDFsUseCase) SetHistory(history repositories.HistoryRepository) {
	uc.history = history
}

// reportProgress отправляет обновление прогресса
func (uc *ProcessPDFsUseCase) reportProgress(status *entities.ProcessingStatus) {
	if uc.progressReporter != nil {
		uc.progressReporter(*status)
	}
}

// Execute выполняет автоматическую обработку PDF файлов согласно конфигурации.
// Ошибка возвращается только если обработку невозможно начать: отсутствует
// исходная директория, не создается целевая или не читается список файлов.
// Неудача на отдельном файле обработку не прерывает.
func (uc *ProcessPDFsUseCase) Execute(config *entities.Config) error {
	// Фаза 1: Инициализация
	status := entities.NewProcessingStatus(0)
	status.SetPhase(entities.PhaseInitializing, "Инициализация обработки...")
	uc.reportProgress(status)

	// Проверяем существование исходной директории
	if !uc.fileRepo.FileExists(config.Scanner.SourceDirectory) {
		err := fmt.Errorf("%w: %s", entities.ErrDirectoryNotFound, config.Scanner.SourceDirectory)
		status.Fail(err)
		uc.reportProgress(status)
		return err
	}

	// Создаем целевую директорию, если не заменяем оригиналы
	if !config.Scanner.ReplaceOriginal {
		if err := uc.fileRepo.CreateDirectory(config.Scanner.TargetDirectory); err != nil {
			err = fmt.Errorf("ошибка создания целевой директории: %w", err)
			status.Fail(err)
			uc.reportProgress(status)
			return err
		}
	}

	// Фаза 2: Сканирование файлов
	status.SetPhase(entities.PhaseScanning, "Сканирование PDF файлов...")
	uc.reportProgress(status)
	uc.logDebug("🔍 Сканирование директории: %s", config.Scanner.SourceDirectory)

	files, err := uc.fileRepo.ListPDFFiles(config.Scanner.SourceDirectory)
	if err != nil {
		err = fmt.Errorf("ошибка получения списка файлов: %w", err)
		status.Fail(err)
		uc.reportProgress(status)
		return err
	}

	// Пустая директория не считается ошибкой и не шумит в консоль
	if len(files) == 0 {
		uc.logDebug("PDF файлы не найдены в директории: %s", config.Scanner.SourceDirectory)
		status.Complete()
		uc.reportProgress(status)
		return nil
	}

	status.TotalFiles = len(files)

	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Начало обработки PDF файлов")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Исходная директория: %s", config.Scanner.SourceDirectory)

	if config.Scanner.ReplaceOriginal {
		uc.logInfo("║ Режим: Замена оригинальных файлов")
	} else {
		uc.logInfo("║ Целевая директория: %s", config.Scanner.TargetDirectory)
	}

	uc.logInfo("║ Алгоритм: %s", config.Compression.Algorithm)
	uc.logInfo("║ Уровень сжатия: %d%%", config.Compression.Level)
	uc.logInfo("║ Найдено файлов: %d", len(files))
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	// Создаем конфигурацию сжатия
	compressionConfig := entities.NewCompressionConfigWithLicense(config.Compression.Level, config.Compression.UniPDFLicenseKey)
	if config.Compression.CompatibilityLevel != "" {
		compressionConfig.CompatibilityLevel = config.Compression.CompatibilityLevel
	}

	// Явный пресет имеет приоритет над выведенным из уровня
	if config.Compression.GhostscriptPreset != "" {
		preset, err := entities.ParsePreset(config.Compression.GhostscriptPreset)
		if err != nil {
			err = fmt.Errorf("%w: %s", err, config.Compression.GhostscriptPreset)
			status.Fail(err)
			uc.reportProgress(status)
			return err
		}
		compressionConfig.GhostscriptPreset = preset
	}

	if err := uc.configRepo.ValidateConfig(compressionConfig); err != nil {
		err = fmt.Errorf("ошибка валидации конфигурации сжатия: %w", err)
		status.Fail(err)
		uc.reportProgress(status)
		return err
	}

	// Фаза 3: Сжатие файлов
	status.SetPhase(entities.PhaseCompressing, "Сжатие PDF файлов...")
	uc.reportProgress(status)

	workers := config.Processing.ParallelWorkers
	if workers <= 0 {
		workers = 1
	}

	// Каналы для координации работы
	jobs := make(chan string, len(files))
	results := make(chan *entities.CompressionResult, len(files))

	var wg sync.WaitGroup

	// Запускаем воркеров
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go uc.worker(jobs, results, &wg, config, compressionConfig)
	}

	// Отправляем задачи воркерам
	for _, file := range files {
		jobs <- file
	}
	close(jobs)

	// Горутина для сбора результатов
	go func() {
		wg.Wait()
		close(results)
	}()

	// Обрабатываем результаты
	fileCounter := 0
	collected := make([]*entities.CompressionResult, 0, len(files))
	for result := range results {
		fileCounter++
		status.AddResult(result)
		collected = append(collected, result)

		// Обновляем текущий файл
		status.SetCurrentFile(result.CurrentFile, result.OriginalSize)

		// Отправляем обновление прогресса
		uc.reportProgress(status)

		// Логируем результат обработки файла
		if result.Success && result.Error == nil {
			uc.logSuccess("[%d/%d] ✅ Сжато: %s", fileCounter, status.TotalFiles, result.CurrentFile)
			uc.logInfo("    └─ Размер: %.2f MB → %.2f MB",
				float64(result.OriginalSize)/1024/1024,
				float64(result.CompressedSize)/1024/1024)
			uc.logInfo("    └─ Сжатие: %.1f%% | Сэкономлено: %.2f MB",
				result.CompressionRatio,
				float64(result.SavedSpace)/1024/1024)
		} else {
			uc.logWarning("[%d/%d] ⚠️ Пропущено (ошибка или нет доступа): %s", fileCounter, status.TotalFiles, result.CurrentFile)
			uc.logError("    └─ Ошибка: %v", result.Error)
		}
	}

	// Финальная фаза
	status.Complete()
	uc.reportProgress(status)

	// Логируем итоговую статистику
	uc.logInfo("")
	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Обработка завершена")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Время выполнения: %s", status.FormatElapsedTime())
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Статистика файлов:")
	uc.logInfo("║   • Всего: %d", status.TotalFiles)
	uc.logSuccess("║   • Успешно: %d", status.SuccessfulFiles)

	if status.FailedFiles > 0 {
		uc.logWarning("║   • Пропущено: %d", status.FailedFiles)
	}

	if status.TotalOriginalSize > 0 {
		uc.logInfo("╠════════════════════════════════════════════════════════════")
		uc.logInfo("║ Статистика сжатия:")
		uc.logInfo("║   • Исходный размер: %.2f MB", float64(status.TotalOriginalSize)/1024/1024)
		uc.logInfo("║   • Сжатый размер: %.2f MB", float64(status.TotalCompressedSize)/1024/1024)
		uc.logSuccess("║   • Среднее сжатие: %.1f%%", status.AverageCompression)
		uc.logSuccess("║   • Сэкономлено: %.2f MB", float64(status.TotalSavedSpace)/1024/1024)
	}

	uc.logInfo("╚════════════════════════════════════════════════════════════")

	uc.recordRun(config, status, collected)

	return nil
}

// worker обрабатывает файлы в отдельной горутине
func (uc *ProcessPDFsUseCase) worker(
	jobs <-chan string,
	results chan<- *entities.CompressionResult,
	wg *sync.WaitGroup,
	config *entities.Config,
	compressionConfig *entities.CompressionConfig,
) {
	defer wg.Done()

	for inputFile := range jobs {
		uc.logInfo("🟡 Пробуем сжать: %s", inputFile)

		// Определяем путь выходного файла
		var outputFile string
		if config.Scanner.ReplaceOriginal {
			outputFile = entities.StagingPath(inputFile)
		} else {
			// Сохраняем структуру директорий относительно источника
			relPath, err := filepath.Rel(config.Scanner.SourceDirectory, inputFile)
			if err != nil {
				outputFile = filepath.Join(config.Scanner.TargetDirectory, filepath.Base(inputFile))
			} else {
				outputFile = filepath.Join(config.Scanner.TargetDirectory, relPath)
				outputDir := filepath.Dir(outputFile)
				if err := os.MkdirAll(outputDir, 0755); err != nil {
					results <- &entities.CompressionResult{
						CurrentFile: inputFile,
						Success:     false,
						Error:       fmt.Errorf("не удалось создать директорию %s: %w", outputDir, err),
					}
					continue
				}
			}
		}

		// Получаем информацию о файле
		fileInfo, err := uc.fileRepo.GetFileInfo(inputFile)
		if err != nil {
			results <- &entities.CompressionResult{
				CurrentFile: inputFile,
				Success:     false,
				Error:       fmt.Errorf("ошибка получения информации о файле: %w", err),
			}
			continue
		}

		// Выполняем сжатие с повторными попытками
		attempts := config.Processing.RetryAttempts
		if attempts <= 0 {
			attempts = 1
		}

		var result *entities.CompressionResult
		for attempt := 0; attempt < attempts; attempt++ {
			result, err = uc.compressor.Compress(inputFile, outputFile, compressionConfig)
			if err == nil {
				break
			}

			if attempt < attempts-1 {
				uc.logWarning("Попытка %d/%d для файла %s не удалась: %v",
					attempt+1, attempts, filepath.Base(inputFile), err)
				time.Sleep(time.Second * 2) // Пауза перед повторной попыткой
			}
		}

		if err != nil {
			// Недописанный выходной файл не должен оставаться на диске
			_ = os.Remove(outputFile)
			results <- &entities.CompressionResult{
				CurrentFile:  inputFile,
				OriginalSize: fileInfo.Size,
				Success:      false,
				Error:        err,
			}
			continue
		}

		// Устанавливаем исходный размер и пересчитываем статистику
		result.CurrentFile = inputFile
		result.OriginalSize = fileInfo.Size
		result.CalculateCompressionRatio()

		// Если заменяем оригинал, переименовываем промежуточный файл
		if config.Scanner.ReplaceOriginal {
			uc.logDebug("Замена оригинального файла: %s", inputFile)
			if err := swapOriginal(uc.logger, inputFile, outputFile); err != nil {
				result.Success = false
				result.Error = fmt.Errorf("%w: %v", entities.ErrReplaceFailed, err)
				// Промежуточный файл при ошибке замены удаляется
				_ = os.Remove(outputFile)
				uc.logError("Не удалось заменить оригинальный файл %s: %v", inputFile, err)
			}
		}

		results <- result
	}
}

// swapOriginal заменяет оригинальный файл сжатым.
// Оригинал переименовывается в резервную копию до подстановки сжатой версии,
// поэтому при любой ошибке замены оригинал восстанавливается.
func swapOriginal(logger repositories.Logger, originalFile, tempFile string) error {
	// Проверяем существование промежуточного файла
	if _, err := os.Stat(tempFile); os.IsNotExist(err) {
		return fmt.Errorf("промежуточный файл не существует: %s", tempFile)
	}

	backupFile := originalFile + ".backup"

	// Создаем резервную копию оригинала
	if err := os.Rename(originalFile, backupFile); err != nil {
		return fmt.Errorf("ошибка создания резервной копии: %w", err)
	}

	// Переименовываем промежуточный файл в оригинальный
	if err := os.Rename(tempFile, originalFile); err != nil {
		// Восстанавливаем оригинальный файл из резервной копии
		_ = os.Rename(backupFile, originalFile)
		return fmt.Errorf("ошибка замены файла: %w", err)
	}

	// Удаляем резервную копию
	if err := os.Remove(backupFile); err != nil && logger != nil {
		logger.Warning("Не удалось удалить резервную копию %s: %v", backupFile, err)
	}

	return nil
}

// recordRun сохраняет итог запуска в журнал, если журнал подключен
func (uc *ProcessPDFsUseCase) recordRun(config *entities.Config, status *entities.ProcessingStatus, results []*entities.CompressionResult) {
	if uc.history == nil {
		return
	}

	run := entities.NewRunRecord(config.Scanner.SourceDirectory, config.Compression.Algorithm, status)
	files := make([]entities.FileRecord, 0, len(results))
	for _, result := range results {
		files = append(files, entities.NewFileRecord(result))
	}

	if err := uc.history.SaveRun(run, files); err != nil {
		uc.logWarning("Не удалось записать запуск в журнал: %v", err)
	}
}

// Методы для логирования
func (uc *ProcessPDFsUseCase) logDebug(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Debug(format, args...)
	}
}

func (uc *ProcessPDFsUseCase) logInfo(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Info(format, args...)
	}
}

func (uc *ProcessPDFsUseCase) logSuccess(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Success(format, args...)
	}
}

func (uc *ProcessPDFsUseCase) logWarning(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Warning(format, args...)
	}
}

func (uc *ProcessPDFsUseCase) logError(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Error(format, args...)
	}
}
