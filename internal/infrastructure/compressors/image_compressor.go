package compressors

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// ImageCompressor интерфейс для сжатия изображений
type ImageCompressor interface {
	CompressJPEG(inputPath, outputPath string, quality int) error
	CompressPNG(inputPath, outputPath string, quality int) error
}

// DefaultImageCompressor реализация компрессора изображений
type DefaultImageCompressor struct{}

// NewImageCompressor создает новый компрессор изображений
func NewImageCompressor() ImageCompressor {
	return &DefaultImageCompressor{}
}

// CompressJPEG сжимает JPEG файл с указанным качеством (10-50)
func (c *DefaultImageCompressor) CompressJPEG(inputPath, outputPath string, quality int) error {
	// Маппинг качества: 10->20, 30->~47, 50->75
	jpegQuality := 20 + int(float64(quality-10)/40.0*55.0)
	if jpegQuality < 20 {
		jpegQuality = 20
	}
	if jpegQuality > 75 {
		jpegQuality = 75
	}

	encode := func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
	// quality 10 -> масштаб 0.5, quality 50 -> 0.9
	return c.recode(inputPath, outputPath, quality, 0.5, 0.4, 0, jpeg.Decode, encode)
}

// CompressPNG сжимает PNG файл с указанным качеством (10-50)
func (c *DefaultImageCompressor) CompressPNG(inputPath, outputPath string, quality int) error {
	encoder := &png.Encoder{CompressionLevel: png.BestCompression}
	encode := func(w io.Writer, img image.Image) error {
		return encoder.Encode(w, img)
	}
	// PNG масштабируется консервативнее, мелкие картинки не трогаем
	return c.recode(inputPath, outputPath, quality, 0.6, 0.3, 400, png.Decode, encode)
}

// recode декодирует изображение, уменьшает его по уровню качества и кодирует
// во временный файл. Если выигрыш меньше 5%, сохраняется оригинал.
// minKeepSide > 0 запрещает масштабирование изображений меньше этой стороны.
func (c *DefaultImageCompressor) recode(
	inputPath, outputPath string,
	quality int,
	baseScale, scaleRange float64,
	minKeepSide int,
	decode func(io.Reader) (image.Image, error),
	encode func(io.Writer, image.Image) error,
) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл %s: %w", inputPath, err)
	}
	defer inputFile.Close()

	inputInfo, err := inputFile.Stat()
	if err != nil {
		return fmt.Errorf("не удалось получить информацию о файле %s: %w", inputPath, err)
	}
	originalSize := inputInfo.Size()

	img, err := decode(inputFile)
	if err != nil {
		return fmt.Errorf("не удалось декодировать файл %s: %w", inputPath, err)
	}

	// Масштаб по качеству: quality 10 -> baseScale, 50 -> baseScale+scaleRange
	scaleFactor := baseScale + float64(quality-10)/40.0*scaleRange
	if scaleFactor > 1.0 {
		scaleFactor = 1.0
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	newWidth := uint(float64(width) * scaleFactor)
	newHeight := uint(float64(height) * scaleFactor)

	if minKeepSide > 0 && width < minKeepSide && height < minKeepSide {
		newWidth, newHeight = uint(width), uint(height)
	}

	finalImg := img
	if newWidth < uint(width) && newHeight < uint(height) {
		finalImg = resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
	}

	tmpPath := outputPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("не удалось создать временный файл: %w", err)
	}

	err = encode(tmpFile, finalImg)
	tmpFile.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось закодировать изображение: %w", err)
	}

	tmpInfo, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось получить информацию о временном файле: %w", err)
	}

	// При выигрыше меньше 5% оставляем оригинал
	if tmpInfo.Size() >= originalSize*95/100 {
		os.Remove(tmpPath)
		if sameFile(inputPath, outputPath) {
			// При замене на месте оригинал уже там, где нужен
			return nil
		}
		return copyOriginal(inputFile, outputPath)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось переименовать временный файл: %w", err)
	}

	return nil
}

// sameFile сообщает, указывают ли пути на один и тот же файл
func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyOriginal переписывает исходный файл в выходной путь без изменений
func copyOriginal(inputFile *os.File, outputPath string) error {
	if _, err := inputFile.Seek(0, 0); err != nil {
		return fmt.Errorf("не удалось перечитать исходный файл: %w", err)
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("не удалось создать выходной файл: %w", err)
	}
	defer outputFile.Close()

	if _, err := io.Copy(outputFile, inputFile); err != nil {
		return fmt.Errorf("не удалось скопировать файл: %w", err)
	}
	return nil
}

// IsImageFile проверяет, является ли файл изображением поддерживаемого формата
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

// GetImageFormat возвращает формат изображения по расширению файла
func GetImageFormat(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	default:
		return ""
	}
}
