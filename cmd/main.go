package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
	"pdfsqueeze/internal/infrastructure/config"
	"pdfsqueeze/internal/infrastructure/logging"
	infraRepos "pdfsqueeze/internal/infrastructure/repositories"
	"pdfsqueeze/internal/interface/controllers"
	"pdfsqueeze/internal/presentation/tui"
	usecases "pdfsqueeze/internal/usecase"
)

// version задается при сборке через ldflags
var version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pdfsqueeze [путь]",
	Short: "Рекурсивное сжатие PDF файлов через Ghostscript",
	Long: `pdfsqueeze рекурсивно обходит директорию, сжимает каждый найденный PDF
и по умолчанию заменяет оригинал сжатой версией. Файлы, которые не удалось
сжать, пропускаются без прерывания обработки.

Аргументом можно передать директорию (пакетная обработка) или один PDF файл.
Без аргумента обрабатывается директория из конфигурации.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"файл конфигурации (по умолчанию ./pdfsqueeze.yaml или ~/.config/pdfsqueeze/pdfsqueeze.yaml)")

	rootCmd.Flags().IntP("level", "l", 85, "уровень сжатия 10-90")
	rootCmd.Flags().StringP("algorithm", "a", "", "алгоритм сжатия: ghostscript, pdfcpu, unipdf")
	rootCmd.Flags().String("preset", "", "пресет ghostscript: screen, ebook, printer, prepress (по умолчанию по уровню)")
	rootCmd.Flags().Bool("replace", true, "заменять оригинальные файлы сжатыми")
	rootCmd.Flags().StringP("target", "t", "", "директория для сжатых копий (отключает замену)")
	rootCmd.Flags().StringP("output", "o", "", "выходной файл (только при сжатии одного файла)")
	rootCmd.Flags().Int("workers", 0, "число параллельных обработчиков")
	rootCmd.Flags().Int("timeout", 0, "таймаут ghostscript в секундах (0 = без таймаута)")
	rootCmd.Flags().Bool("tui", false, "запустить текстовый интерфейс")
	rootCmd.Flags().String("log-level", "", "уровень логирования: debug, info, warning, error")
}

// loadAppConfig загружает конфигурацию с учетом флага --config
func loadAppConfig() (*entities.Config, error) {
	return config.NewRepository().Load(cfgFile)
}

// applyFlagOverrides переносит явно заданные флаги поверх конфигурации
func applyFlagOverrides(cmd *cobra.Command, appConfig *entities.Config) {
	flags := cmd.Flags()

	if flags.Changed("level") {
		appConfig.Compression.Level, _ = flags.GetInt("level")
	}
	if flags.Changed("algorithm") {
		appConfig.Compression.Algorithm, _ = flags.GetString("algorithm")
	}
	if flags.Changed("preset") {
		appConfig.Compression.GhostscriptPreset, _ = flags.GetString("preset")
	}
	if flags.Changed("replace") {
		appConfig.Scanner.ReplaceOriginal, _ = flags.GetBool("replace")
	}
	if flags.Changed("target") {
		appConfig.Scanner.TargetDirectory, _ = flags.GetString("target")
		// Явная целевая директория означает копии вместо замены
		if !flags.Changed("replace") {
			appConfig.Scanner.ReplaceOriginal = false
		}
	}
	if flags.Changed("workers") {
		appConfig.Processing.ParallelWorkers, _ = flags.GetInt("workers")
	}
	if flags.Changed("timeout") {
		appConfig.Processing.TimeoutSeconds, _ = flags.GetInt("timeout")
	}
	if flags.Changed("tui") {
		appConfig.Output.TUI, _ = flags.GetBool("tui")
	}
	if flags.Changed("log-level") {
		appConfig.Output.LogLevel, _ = flags.GetString("log-level")
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	appConfig, err := loadAppConfig()
	if err != nil {
		return err
	}

	applyFlagOverrides(cmd, appConfig)

	// Аргумент может быть директорией или одним PDF файлом
	var singleFile string
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("путь недоступен: %w", err)
		}
		if info.IsDir() {
			appConfig.Scanner.SourceDirectory = args[0]
		} else {
			singleFile = args[0]
		}
	}

	if err := appConfig.Compression.Validate(); err != nil {
		return err
	}

	if singleFile != "" {
		return runSingleFile(cmd, appConfig, singleFile)
	}

	if appConfig.Output.TUI {
		return runTUI(appConfig)
	}

	return runBatch(appConfig)
}

// runSingleFile сжимает один файл без пакетного обхода
func runSingleFile(cmd *cobra.Command, appConfig *entities.Config, inputPath string) error {
	compressor, err := buildCompressor(appConfig)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	replace := appConfig.Scanner.ReplaceOriginal
	if outputPath != "" {
		// Явный выходной файл означает копию вместо замены
		replace = false
	}

	useCase := usecases.NewCompressPDFUseCase(
		compressor,
		infraRepos.NewFileSystemRepository(),
		infraRepos.NewConfigRepository(),
	)
	controller := controllers.NewCLIController(useCase)

	return controller.HandleSingleFile(inputPath, outputPath, appConfig.Compression.Level, replace)
}

// runBatch выполняет пакетную обработку без TUI
func runBatch(appConfig *entities.Config) error {
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogMaxSizeMB,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		log.Printf("Предупреждение: не удалось инициализировать файловый логгер: %v", err)
	}

	loggers := []repositories.Logger{logging.NewConsoleLogger(appConfig.Output.LogLevel)}
	if fileLogger != nil {
		loggers = append(loggers, fileLogger)
	}
	logger := logging.NewMultiLogger(loggers...)
	defer logger.Close()

	processor, err := newApplicationProcessor(appConfig, logger)
	if err != nil {
		return err
	}
	defer processor.Shutdown()

	return processor.Run()
}

// runTUI запускает текстовый интерфейс
func runTUI(appConfig *entities.Config) error {
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogMaxSizeMB,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		log.Printf("Предупреждение: не удалось инициализировать файловый логгер: %v", err)
	}

	tuiManager := tui.NewManager(cfgFile)
	tuiManager.Initialize()

	// Оборачиваем логгер адаптером, чтобы видеть логи в TUI
	logger := tui.NewUILogger(fileLogger, tuiManager)

	processor, err := newApplicationProcessor(appConfig, logger)
	if err != nil {
		return err
	}
	defer processor.Shutdown()

	// Подключаем репортер прогресса к TUI
	processor.processUseCase.SetProgressReporter(func(s entities.ProcessingStatus) {
		tuiManager.SendStatusUpdate(s)
	})

	if processor.historyStore != nil {
		tuiManager.SetHistoryProvider(processor.historyStore.RecentRuns)
	}

	// Привязываем запуск обработки к TUI
	tuiManager.SetOnStartProcessing(func() {
		// Получаем актуальную конфигурацию из TUI
		processor.config = tuiManager.GetConfig()
		go processor.StartProcessing()
	})

	// Автозапуск, если включен в конфигурации
	if appConfig.Compression.AutoStart {
		go processor.StartProcessing()
	}

	if err := tuiManager.Run(); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}

	tuiManager.Cleanup()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
