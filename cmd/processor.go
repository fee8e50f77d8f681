package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/domain/repositories"
	"pdfsqueeze/internal/infrastructure/archive"
	"pdfsqueeze/internal/infrastructure/compressors"
	"pdfsqueeze/internal/infrastructure/history"
	infraRepos "pdfsqueeze/internal/infrastructure/repositories"
	usecases "pdfsqueeze/internal/usecase"
)

// ApplicationProcessor связывает сценарии приложения с текущей конфигурацией
type ApplicationProcessor struct {
	processUseCase  *usecases.ProcessPDFsUseCase
	allFilesUseCase *usecases.ProcessAllFilesUseCase
	historyStore    repositories.HistoryRepository
	config          *entities.Config
	logger          repositories.Logger

	// Graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// buildCompressor выбирает компрессор по алгоритму из конфигурации.
// Для ghostscript сразу проверяется доступность бинаря: без него
// пакетная обработка не начинается.
func buildCompressor(config *entities.Config) (repositories.PDFCompressor, error) {
	switch config.Compression.Algorithm {
	case entities.AlgorithmGhostscript:
		timeout := time.Duration(config.Processing.TimeoutSeconds) * time.Second
		gs := compressors.NewGhostscriptCompressor(config.Compression.GhostscriptPath, timeout)
		if err := gs.CheckAvailable(); err != nil {
			return nil, err
		}
		return gs, nil
	case entities.AlgorithmUniPDF:
		return compressors.NewUniPDFCompressor(), nil
	case entities.AlgorithmPDFCPU:
		return compressors.NewPDFCPUCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownAlgorithm, config.Compression.Algorithm)
	}
}

// newApplicationProcessor собирает процессор: компрессор, репозитории,
// сценарии обработки и журнал запусков
func newApplicationProcessor(config *entities.Config, logger repositories.Logger) (*ApplicationProcessor, error) {
	compressor, err := buildCompressor(config)
	if err != nil {
		return nil, err
	}

	fileRepo := infraRepos.NewFileSystemRepository()
	compressionConfigRepo := infraRepos.NewConfigRepository()
	imageCompressor := compressors.NewImageCompressor()

	processUseCase := usecases.NewProcessPDFsUseCase(compressor, fileRepo, compressionConfigRepo, logger)
	imageUseCase := usecases.NewCompressImageUseCase(logger, imageCompressor)
	archiveUseCase := usecases.NewArchiveDirectoryUseCase(archive.NewZipArchiver(), fileRepo, logger)
	allFilesUseCase := usecases.NewProcessAllFilesUseCase(processUseCase, imageUseCase, archiveUseCase, logger)

	var historyStore repositories.HistoryRepository
	if config.History.Enabled {
		store, err := history.NewSQLiteStore(config.History.Path)
		if err != nil {
			// Недоступный журнал не мешает сжатию
			if logger != nil {
				logger.Warning("Журнал запусков недоступен: %v", err)
			}
		} else {
			historyStore = store
			processUseCase.SetHistory(store)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ApplicationProcessor{
		processUseCase:  processUseCase,
		allFilesUseCase: allFilesUseCase,
		historyStore:    historyStore,
		config:          config,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
	}, nil
}

// Run выполняет обработку синхронно и возвращает ошибку для кода выхода
func (p *ApplicationProcessor) Run() error {
	p.wg.Add(1)
	defer p.wg.Done()

	return p.allFilesUseCase.Execute(p.config)
}

// StartProcessing запускает обработку всех поддерживаемых файлов из TUI
func (p *ApplicationProcessor) StartProcessing() {
	p.wg.Add(1)
	defer p.wg.Done()

	if p.logger != nil {
		supportedTypes := p.allFilesUseCase.GetSupportedFileTypes(p.config)
		p.logger.Info("Запуск обработки файлов. Поддерживаемые типы: %v", supportedTypes)
	}

	// Запускаем обработку всех поддерживаемых файлов
	if err := p.allFilesUseCase.Execute(p.config); err != nil {
		if p.logger != nil {
			p.logger.Error("Ошибка обработки: %v", err)
		}
		return
	}

	if p.logger != nil {
		p.logger.Success("Обработка файлов завершена успешно")
	}
}

// Shutdown корректно завершает работу процессора
func (p *ApplicationProcessor) Shutdown() {
	p.cancel()
	p.wg.Wait()

	if p.historyStore != nil {
		p.historyStore.Close()
	}
}
