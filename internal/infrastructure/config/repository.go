package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pdfsqueeze/internal/domain/entities"
)

// Имя конфигурационного файла без расширения и префикс переменных окружения
const (
	DefaultConfigName = "pdfsqueeze"
	DefaultConfigFile = "pdfsqueeze.yaml"
	envPrefix         = "PDFSQUEEZE"
)

// Repository реализация репозитория конфигурации приложения поверх viper
type Repository struct{}

// NewRepository создает новый репозиторий конфигурации
func NewRepository() *Repository {
	return &Repository{}
}

// Load загружает конфигурацию приложения.
// Пустой configPath включает поиск pdfsqueeze.yaml в текущей директории и
// в ~/.config/pdfsqueeze. Отсутствие файла не является ошибкой: действуют
// значения по умолчанию. Переменные окружения PDFSQUEEZE_* перекрывают
// значения файла, например PDFSQUEEZE_COMPRESSION_LEVEL=40.
func (r *Repository) Load(configPath string) (*entities.Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		// Явно указанный, но отсутствующий файл равнозначен умолчаниям
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", configPath, err)
			}
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
			}
		}
	}

	return fromViper(v), nil
}

// Save сохраняет конфигурацию в файл
func (r *Repository) Save(configPath string, config *entities.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// DefaultConfig возвращает конфигурацию по умолчанию без файла и окружения
func DefaultConfig() *entities.Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

// setDefaults регистрирует значения по умолчанию для всех ключей
func setDefaults(v *viper.Viper) {
	v.SetDefault("scanner.source_directory", ".")
	v.SetDefault("scanner.target_directory", "./compressed")
	v.SetDefault("scanner.replace_original", true)

	v.SetDefault("compression.level", 85)
	v.SetDefault("compression.algorithm", entities.AlgorithmGhostscript)
	v.SetDefault("compression.ghostscript_path", "gs")
	v.SetDefault("compression.ghostscript_preset", "")
	v.SetDefault("compression.compatibility_level", entities.DefaultCompatibilityLevel)
	v.SetDefault("compression.auto_start", false)
	v.SetDefault("compression.unipdf_license_key", "")
	v.SetDefault("compression.enable_jpeg", false)
	v.SetDefault("compression.enable_png", false)
	v.SetDefault("compression.jpeg_quality", 30)
	v.SetDefault("compression.png_quality", 25)

	v.SetDefault("processing.parallel_workers", 1)
	v.SetDefault("processing.timeout_seconds", 0)
	v.SetDefault("processing.retry_attempts", 1)

	v.SetDefault("output.log_level", "info")
	v.SetDefault("output.progress_bar", true)
	v.SetDefault("output.log_to_file", true)
	v.SetDefault("output.log_file_name", "pdfsqueeze.log")
	v.SetDefault("output.log_max_size_mb", 10)
	v.SetDefault("output.tui", false)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.output_directory", "")
	v.SetDefault("archive.max_part_size_mb", 23)
}

// fromViper собирает конфигурацию из ключей viper
func fromViper(v *viper.Viper) *entities.Config {
	return &entities.Config{
		Scanner: entities.ScannerConfig{
			SourceDirectory: v.GetString("scanner.source_directory"),
			TargetDirectory: v.GetString("scanner.target_directory"),
			ReplaceOriginal: v.GetBool("scanner.replace_original"),
		},
		Compression: entities.AppCompressionConfig{
			Level:              v.GetInt("compression.level"),
			Algorithm:          v.GetString("compression.algorithm"),
			GhostscriptPath:    v.GetString("compression.ghostscript_path"),
			GhostscriptPreset:  v.GetString("compression.ghostscript_preset"),
			CompatibilityLevel: v.GetString("compression.compatibility_level"),
			AutoStart:          v.GetBool("compression.auto_start"),
			UniPDFLicenseKey:   v.GetString("compression.unipdf_license_key"),
			EnableJPEG:         v.GetBool("compression.enable_jpeg"),
			EnablePNG:          v.GetBool("compression.enable_png"),
			JPEGQuality:        v.GetInt("compression.jpeg_quality"),
			PNGQuality:         v.GetInt("compression.png_quality"),
		},
		Processing: entities.ProcessingConfig{
			ParallelWorkers: v.GetInt("processing.parallel_workers"),
			TimeoutSeconds:  v.GetInt("processing.timeout_seconds"),
			RetryAttempts:   v.GetInt("processing.retry_attempts"),
		},
		Output: entities.OutputConfig{
			LogLevel:     v.GetString("output.log_level"),
			ProgressBar:  v.GetBool("output.progress_bar"),
			LogToFile:    v.GetBool("output.log_to_file"),
			LogFileName:  v.GetString("output.log_file_name"),
			LogMaxSizeMB: v.GetInt("output.log_max_size_mb"),
			TUI:          v.GetBool("output.tui"),
		},
		History: entities.HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			Path:    v.GetString("history.path"),
		},
		Archive: entities.ArchiveConfig{
			Enabled:         v.GetBool("archive.enabled"),
			OutputDirectory: v.GetString("archive.output_directory"),
			MaxPartSizeMB:   v.GetInt("archive.max_part_size_mb"),
		},
	}
}
