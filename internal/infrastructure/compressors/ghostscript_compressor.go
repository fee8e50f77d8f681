package compressors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"pdfsqueeze/internal/domain/entities"
)

// commandRunner абстракция запуска внешних процессов.
// В тестах подменяется фальшивкой, чтобы не требовать установленный ghostscript.
type commandRunner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osRunner запускает реальные процессы
type osRunner struct{}

func (osRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (osRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	return output.Bytes(), err
}

// GhostscriptCompressor реализация компрессора через внешний ghostscript
type GhostscriptCompressor struct {
	binary  string
	timeout time.Duration
	runner  commandRunner
}

// NewGhostscriptCompressor создает компрессор на основе внешнего ghostscript.
// binary задает имя или путь исполняемого файла (обычно "gs"),
// timeout ограничивает время одного вызова, 0 отключает ограничение.
func NewGhostscriptCompressor(binary string, timeout time.Duration) *GhostscriptCompressor {
	if binary == "" {
		binary = "gs"
	}
	return &GhostscriptCompressor{
		binary:  binary,
		timeout: timeout,
		runner:  osRunner{},
	}
}

// CheckAvailable проверяет, что ghostscript установлен и доступен в PATH
func (g *GhostscriptCompressor) CheckAvailable() error {
	if _, err := g.runner.LookPath(g.binary); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrGhostscriptNotFound, g.binary)
	}
	return nil
}

// buildArgs собирает аргументы вызова ghostscript
func (g *GhostscriptCompressor) buildArgs(inputPath, outputPath string, config *entities.CompressionConfig) []string {
	preset := config.GhostscriptPreset
	if preset == "" {
		preset = entities.PresetScreen
	}
	compatibility := config.CompatibilityLevel
	if compatibility == "" {
		compatibility = entities.DefaultCompatibilityLevel
	}

	return []string{
		"-sDEVICE=pdfwrite",
		fmt.Sprintf("-dCompatibilityLevel=%s", compatibility),
		fmt.Sprintf("-dPDFSETTINGS=/%s", preset),
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		fmt.Sprintf("-sOutputFile=%s", outputPath),
		inputPath,
	}
}

// Compress сжимает PDF файл вызовом внешнего ghostscript.
// Любой ненулевой код выхода, сигнал или таймаут считается неудачей;
// файл с результатом появляется только при успешном завершении процесса.
func (g *GhostscriptCompressor) Compress(inputPath, outputPath string, config *entities.CompressionConfig) (*entities.CompressionResult, error) {
	originalInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации об исходном файле: %w", err)
	}

	ctx := context.Background()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	output, runErr := g.runner.Run(ctx, g.binary, g.buildArgs(inputPath, outputPath, config)...)
	if runErr != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			runErr = fmt.Errorf("%w (предел %s)", entities.ErrCompressionTimeout, g.timeout)
		case len(bytes.TrimSpace(output)) > 0:
			runErr = fmt.Errorf("ghostscript: %w: %s", runErr, bytes.TrimSpace(output))
		default:
			runErr = fmt.Errorf("ghostscript: %w", runErr)
		}
		return &entities.CompressionResult{
			CurrentFile:  inputPath,
			OriginalSize: originalInfo.Size(),
			Success:      false,
			Error:        runErr,
		}, runErr
	}

	compressedInfo, err := os.Stat(outputPath)
	if err != nil {
		// Нулевой код выхода без выходного файла тоже считается неудачей
		err = fmt.Errorf("ghostscript завершился успешно, но результат отсутствует: %w", err)
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
