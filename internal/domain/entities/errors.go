package entities

import "errors"

// Доменные ошибки
var (
	ErrInvalidCompressionLevel = errors.New("уровень сжатия должен быть от 10 до 90")
	ErrInvalidImageQuality     = errors.New("качество изображения должно быть от 10 до 100")
	ErrInvalidPreset           = errors.New("неизвестный пресет ghostscript")
	ErrInvalidJPEGQuality      = errors.New("качество JPEG должно быть от 10 до 50 с шагом 5")
	ErrInvalidPNGQuality       = errors.New("качество PNG должно быть от 10 до 50 с шагом 5")
	ErrUnknownAlgorithm        = errors.New("неизвестный алгоритм сжатия")
	ErrFileNotFound            = errors.New("файл не найден")
	ErrInvalidFileFormat       = errors.New("неверный формат файла")
	ErrCompressionFailed       = errors.New("ошибка сжатия файла")
	ErrCompressionTimeout      = errors.New("превышено время ожидания сжатия")
	ErrGhostscriptNotFound     = errors.New("ghostscript не найден, проверьте установку и PATH")
	ErrReplaceFailed           = errors.New("не удалось заменить оригинальный файл")
	ErrDirectoryNotFound       = errors.New("директория не найдена")
)
