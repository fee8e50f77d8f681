package entities

import "strings"

// Пресеты ghostscript (-dPDFSETTINGS) в порядке убывания качества
const (
	PresetPrepress = "prepress"
	PresetPrinter  = "printer"
	PresetEbook    = "ebook"
	PresetScreen   = "screen"
)

// DefaultCompatibilityLevel версия PDF, которую пишет ghostscript по умолчанию
const DefaultCompatibilityLevel = "1.4"

// CompressionConfig представляет конфигурацию сжатия
type CompressionConfig struct {
	Level              int    // Уровень сжатия (10-90)
	GhostscriptPreset  string // Пресет ghostscript (screen/ebook/printer/prepress)
	CompatibilityLevel string // Версия PDF для -dCompatibilityLevel
	ImageQuality       int    // Качество изображений (10-100)
	ImageCompression   bool   // Сжимать изображения
	RemoveDuplicates   bool   // Удалять дубликаты объектов
	CompressStreams    bool   // Сжимать потоки данных
	RemoveMetadata     bool   // Удалять метаданные
	RemoveAnnotations  bool   // Удалять аннотации
	RemoveAttachments  bool   // Удалять вложения
	OptimizeForWeb     bool   // Оптимизировать для веб
	UniPDFLicenseKey   string // Лицензионный ключ для UniPDF
}

// NewCompressionConfig создает конфигурацию сжатия на основе уровня
func NewCompressionConfig(level int) *CompressionConfig {
	return NewCompressionConfigWithLicense(level, "")
}

// NewCompressionConfigWithLicense создает конфигурацию сжатия с лицензионным ключом
func NewCompressionConfigWithLicense(level int, licenseKey string) *CompressionConfig {
	if level < 10 {
		level = 10
	}
	if level > 90 {
		level = 90
	}

	config := &CompressionConfig{
		Level:              level,
		GhostscriptPreset:  PresetForLevel(level),
		CompatibilityLevel: DefaultCompatibilityLevel,
		RemoveDuplicates:   true,
		CompressStreams:    true,
		OptimizeForWeb:     true,
		UniPDFLicenseKey:   licenseKey,
	}

	switch {
	case level <= 20: // Слабое сжатие
		config.ImageQuality = 90
		config.ImageCompression = true
		config.RemoveMetadata = false
		config.RemoveAnnotations = false
		config.RemoveAttachments = false

	case level <= 40: // Умеренное сжатие
		config.ImageQuality = 75
		config.ImageCompression = true
		config.RemoveMetadata = true
		config.RemoveAnnotations = false
		config.RemoveAttachments = false

	case level <= 60: // Среднее сжатие
		config.ImageQuality = 60
		config.ImageCompression = true
		config.RemoveMetadata = true
		config.RemoveAnnotations = true
		config.RemoveAttachments = false

	case level <= 80: // Высокое сжатие
		config.ImageQuality = 40
		config.ImageCompression = true
		config.RemoveMetadata = true
		config.RemoveAnnotations = true
		config.RemoveAttachments = true

	default: // Максимальное сжатие (81-90%)
		config.ImageQuality = 25
		config.ImageCompression = true
		config.RemoveMetadata = true
		config.RemoveAnnotations = true
		config.RemoveAttachments = true
	}

	return config
}

// PresetForLevel возвращает пресет ghostscript для уровня сжатия.
// Чем выше уровень, тем агрессивнее пресет.
func PresetForLevel(level int) string {
	switch {
	case level <= 20:
		return PresetPrepress
	case level <= 40:
		return PresetPrinter
	case level <= 60:
		return PresetEbook
	default:
		return PresetScreen
	}
}

// ParsePreset нормализует пресет из пользовательского ввода.
// Принимает любой регистр и необязательный ведущий слэш ("/screen", "Ebook").
// Пустая строка означает пресет по умолчанию (screen).
func ParsePreset(s string) (string, error) {
	p := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "/")
	switch p {
	case "":
		return PresetScreen, nil
	case PresetScreen, PresetEbook, PresetPrinter, PresetPrepress:
		return p, nil
	default:
		return "", ErrInvalidPreset
	}
}

// Validate проверяет корректность конфигурации
func (c *CompressionConfig) Validate() error {
	if c.Level < 10 || c.Level > 90 {
		return ErrInvalidCompressionLevel
	}
	if c.ImageQuality < 10 || c.ImageQuality > 100 {
		return ErrInvalidImageQuality
	}
	switch c.GhostscriptPreset {
	case "", PresetScreen, PresetEbook, PresetPrinter, PresetPrepress:
	default:
		return ErrInvalidPreset
	}
	return nil
}
