package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pdfsqueeze/internal/domain/entities"
	"pdfsqueeze/internal/infrastructure/config"
)

// UI Configuration constants
const (
	MaxLogBufferSize   = 1000
	LogFlushInterval   = 50 * time.Millisecond
	ProgressBarWidth   = 40
	MaxFileNameLength  = 60
	MaxFileNameDisplay = 57
	ProgressViewHeight = 9
	HistoryViewLimit   = 10

	FormItemGhostscriptIndex = 5
	FormItemLicenseIndex     = 6
)

// Manager управляет TUI интерфейсом
type Manager struct {
	app           *tview.Application
	pages         *tview.Pages
	currentScreen entities.UIScreen

	// UI компоненты
	mainMenu     *tview.List
	configForm   *tview.Form
	progressView *tview.TextView
	logView      *tview.TextView
	historyView  *tview.TextView

	// Callbacks
	onStartProcessing func()
	historyProvider   func(limit int) ([]entities.RunRecord, error)

	// Состояние
	configPath   string
	configRepo   *config.Repository
	config       *entities.Config
	logBuffer    []string
	statusMutex  sync.RWMutex
	isProcessing bool

	// Оптимизированный батчинг логов через канал
	logChan  chan string
	logDone  chan struct{}
	logMutex sync.Mutex
}

// NewManager создает новый менеджер TUI.
// configPath может быть пустым: тогда используется pdfsqueeze.yaml
// в текущей директории.
func NewManager(configPath string) *Manager {
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}
	m := &Manager{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		configPath: configPath,
		configRepo: config.NewRepository(),
		logBuffer:  make([]string, 0, MaxLogBufferSize),
		logChan:    make(chan string, 100), // Buffered channel для батчинга
		logDone:    make(chan struct{}),
	}
	// Запускаем горутину обработки логов
	go m.logProcessor()
	return m
}

// Initialize инициализирует TUI
func (m *Manager) Initialize() {
	m.loadConfig()
	m.createUI()
	m.setupKeyBindings()
}

// Run запускает TUI
func (m *Manager) Run() error {
	return m.app.SetRoot(m.pages, true).EnableMouse(true).Run()
}

// SetOnStartProcessing устанавливает callback для начала обработки
func (m *Manager) SetOnStartProcessing(callback func()) {
	m.onStartProcessing = callback
}

// SetHistoryProvider устанавливает источник журнала запусков
func (m *Manager) SetHistoryProvider(provider func(limit int) ([]entities.RunRecord, error)) {
	m.historyProvider = provider
}

// SendStatusUpdate отправляет обновление статуса
func (m *Manager) SendStatusUpdate(status entities.ProcessingStatus) {
	m.updateProgress(status)
}

// loadConfig загружает конфигурацию
func (m *Manager) loadConfig() {
	loaded, err := m.configRepo.Load(m.configPath)
	if err != nil {
		loaded = config.DefaultConfig()
	}
	m.config = loaded
}

// saveConfig сохраняет конфигурацию
func (m *Manager) saveConfig() {
	m.configRepo.Save(m.configPath, m.config)
}

// createUI создает пользовательский интерфейс
func (m *Manager) createUI() {
	m.createMainMenu()
	m.createConfigScreen()
	m.createProcessingScreen()
	m.createHistoryScreen()

	m.pages.AddPage("menu", m.mainMenu, true, true)
	m.pages.AddPage("config", m.configForm, true, false)
	m.pages.AddPage("processing", m.createProcessingLayout(), true, false)
	m.pages.AddPage("history", m.historyView, true, false)

	m.currentScreen = entities.UIScreenMenu
}

// createMainMenu создает главное меню
func (m *Manager) createMainMenu() {
	m.mainMenu = tview.NewList().
		AddItem("🚀 Запуск сжатия", "Начать пакетное сжатие PDF файлов", '1', func() {
			m.startProcessing()
		}).
		AddItem("⚙️ Конфигурация", "Настроить параметры сжатия и обработки", '2', func() {
			m.switchToScreen(entities.UIScreenConfig)
		}).
		AddItem("📜 История запусков", "Показать последние запуски сжатия", '3', func() {
			m.showHistory()
		}).
		AddItem("❌ Выход", "Закрыть приложение", 'q', func() {
			m.Cleanup()
			m.app.Stop()
		})

	m.mainMenu.SetBorder(true).
		SetTitle("🔥 PDF Squeeze - Главное меню").
		SetTitleAlign(tview.AlignCenter)

	// Настраиваем стиль
	m.mainMenu.SetSelectedBackgroundColor(tcell.ColorDarkBlue).
		SetSelectedTextColor(tcell.ColorWhite).
		SetMainTextColor(tcell.ColorWhite).
		SetSecondaryTextColor(tcell.ColorGray)
}

// algorithmIndex возвращает позицию алгоритма в выпадающем списке
func algorithmIndex(algorithm string) int {
	switch algorithm {
	case entities.AlgorithmPDFCPU:
		return 1
	case entities.AlgorithmUniPDF:
		return 2
	default:
		return 0
	}
}

// createConfigScreen создает экран конфигурации
func (m *Manager) createConfigScreen() {
	m.configForm = tview.NewForm().
		AddInputField("Исходная директория", m.config.Scanner.SourceDirectory, 60, nil, func(text string) {
			m.config.Scanner.SourceDirectory = text
		}).
		AddInputField("Целевая директория", m.config.Scanner.TargetDirectory, 60, nil, func(text string) {
			m.config.Scanner.TargetDirectory = text
		}).
		AddCheckbox("Заменить оригинал", m.config.Scanner.ReplaceOriginal, func(checked bool) {
			m.config.Scanner.ReplaceOriginal = checked
		}).
		AddInputField("Уровень сжатия (10-90)", strconv.Itoa(m.config.Compression.Level), 10, nil, func(text string) {
			if level, err := strconv.Atoi(text); err == nil && level >= 10 && level <= 90 {
				m.config.Compression.Level = level
			}
		}).
		AddDropDown("Алгоритм", []string{entities.AlgorithmGhostscript, entities.AlgorithmPDFCPU, entities.AlgorithmUniPDF},
			algorithmIndex(m.config.Compression.Algorithm), func(option string, optionIndex int) {
				m.config.Compression.Algorithm = option
				m.updateAlgorithmFields()
			}).
		AddInputField("Путь к Ghostscript", m.config.Compression.GhostscriptPath, 60, nil, func(text string) {
			m.config.Compression.GhostscriptPath = text
		}).
		AddInputField("Лицензия UniPDF (UNIDOC_LICENSE_API_KEY)", m.config.Compression.UniPDFLicenseKey, 60, nil, func(text string) {
			m.config.Compression.UniPDFLicenseKey = text
		}).
		AddCheckbox("Автостарт", m.config.Compression.AutoStart, func(checked bool) {
			m.config.Compression.AutoStart = checked
		}).
		AddCheckbox("Сжимать JPEG", m.config.Compression.EnableJPEG, func(checked bool) {
			m.config.Compression.EnableJPEG = checked
		}).
		AddDropDown("Качество JPEG (%)", []string{"10", "15", "20", "25", "30", "35", "40", "45", "50"},
			(m.config.Compression.JPEGQuality-10)/5, func(option string, optionIndex int) {
				if quality, err := strconv.Atoi(option); err == nil {
					m.config.Compression.JPEGQuality = quality
				}
			}).
		AddCheckbox("Сжимать PNG", m.config.Compression.EnablePNG, func(checked bool) {
			m.config.Compression.EnablePNG = checked
		}).
		AddDropDown("Качество PNG (%)", []string{"10", "15", "20", "25", "30", "35", "40", "45", "50"},
			(m.config.Compression.PNGQuality-10)/5, func(option string, optionIndex int) {
				if quality, err := strconv.Atoi(option); err == nil {
					m.config.Compression.PNGQuality = quality
				}
			}).
		AddCheckbox("Вести журнал запусков", m.config.History.Enabled, func(checked bool) {
			m.config.History.Enabled = checked
		}).
		AddCheckbox("Архивировать подкаталоги", m.config.Archive.Enabled, func(checked bool) {
			m.config.Archive.Enabled = checked
		}).
		AddButton("Сохранить", func() {
			m.saveConfig()
			m.switchToScreen(entities.UIScreenMenu)
			// Позиционируемся на пункте "Конфигурация" (индекс 1)
			m.mainMenu.SetCurrentItem(1)
		})

	m.updateAlgorithmFields()

	m.configForm.SetBorder(true).
		SetTitle("🔥 PDF Squeeze - Конфигурация (ESC - выйти без сохранения)").
		SetTitleAlign(tview.AlignCenter)

	// Обработка ESC для выхода без сохранения
	m.configForm.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			// Перезагружаем конфигурацию из файла (отменяем изменения)
			m.loadConfig()
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		}
		return event
	})
}

// createProcessingScreen создает экран обработки
func (m *Manager) createProcessingScreen() {
	m.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetScrollable(true)

	m.progressView.SetBorder(true).
		SetTitle("📊 Прогресс обработки").
		SetTitleAlign(tview.AlignCenter)

	m.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(MaxLogBufferSize)

	m.logView.SetBorder(true).
		SetTitle("📋 Журнал событий").
		SetTitleAlign(tview.AlignCenter)
}

// createHistoryScreen создает экран истории запусков
func (m *Manager) createHistoryScreen() {
	m.historyView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)

	m.historyView.SetBorder(true).
		SetTitle("📜 История запусков (ESC - назад)").
		SetTitleAlign(tview.AlignCenter)
}

// createProcessingLayout создает layout для экрана обработки
func (m *Manager) createProcessingLayout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.logView, 0, 1, false).
		AddItem(m.progressView, ProgressViewHeight, 0, false)
}

// setupKeyBindings настраивает горячие клавиши
func (m *Manager) setupKeyBindings() {
	m.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		case tcell.KeyF2:
			m.switchToScreen(entities.UIScreenConfig)
			return nil
		case tcell.KeyF3:
			if m.isProcessing {
				m.switchToScreen(entities.UIScreenProcessing)
			}
			return nil
		case tcell.KeyEscape:
			// ESC работает по-разному в зависимости от экрана
			if m.currentScreen == entities.UIScreenConfig {
				// В конфигурации ESC обрабатывается локально формой
				return event
			} else if m.currentScreen != entities.UIScreenMenu {
				m.switchToScreen(entities.UIScreenMenu)
				return nil
			}
		}

		// Обработка числовых клавиш для меню
		if m.currentScreen == entities.UIScreenMenu {
			switch event.Rune() {
			case '1':
				m.startProcessing()
				return nil
			case '2':
				m.switchToScreen(entities.UIScreenConfig)
				return nil
			case '3':
				m.showHistory()
				return nil
			case 'q', 'Q':
				m.Cleanup()
				m.app.Stop()
				return nil
			}
		}

		return event
	})
}

// switchToScreen переключает на указанный экран
func (m *Manager) switchToScreen(screen entities.UIScreen) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()

	m.currentScreen = screen

	switch screen {
	case entities.UIScreenMenu:
		m.pages.SwitchToPage("menu")
	case entities.UIScreenConfig:
		// При входе в конфигурацию обновляем данные из файла и синхронизируем форму
		m.loadConfig()
		m.refreshConfigForm()
		m.pages.SwitchToPage("config")
	case entities.UIScreenProcessing:
		m.pages.SwitchToPage("processing")
	case entities.UIScreenHistory:
		m.pages.SwitchToPage("history")
	}
}

// startProcessing начинает обработку
func (m *Manager) startProcessing() {
	m.saveConfig()
	m.isProcessing = true
	m.switchToScreen(entities.UIScreenProcessing)

	if m.onStartProcessing != nil {
		go m.onStartProcessing()
	}
}

// showHistory отображает последние запуски из журнала
func (m *Manager) showHistory() {
	if m.historyView == nil {
		return
	}

	var text strings.Builder
	if m.historyProvider == nil {
		text.WriteString("[yellow]Журнал запусков отключен в конфигурации[white]\n")
	} else {
		runs, err := m.historyProvider(HistoryViewLimit)
		switch {
		case err != nil:
			fmt.Fprintf(&text, "[red]Ошибка чтения журнала: %v[white]\n", err)
		case len(runs) == 0:
			text.WriteString("Журнал пуст: запусков еще не было\n")
		default:
			for _, run := range runs {
				fmt.Fprintf(&text,
					"[yellow]#%d[white] %s  [cyan]%s[white]\n"+
						"  Директория: %s\n"+
						"  Файлов: %d, успешно: [green]%d[white], ошибок: [red]%d[white], сэкономлено: %.2f MB\n\n",
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.Algorithm,
					run.RootDirectory,
					run.TotalFiles,
					run.SuccessfulFiles,
					run.FailedFiles,
					float64(run.SavedBytes())/1024/1024,
				)
			}
		}
	}

	m.historyView.SetText(text.String())
	m.switchToScreen(entities.UIScreenHistory)
}

// updateProgress обновляет прогресс
func (m *Manager) updateProgress(status entities.ProcessingStatus) {
	if m.progressView == nil {
		return
	}

	// Обновляем прогресс-бар
	progressBar := m.createProgressBar(status.Progress, ProgressBarWidth)

	// Корректное усечение имени файла с учетом UTF-8
	displayFile := m.truncateFileName(status.CurrentFile, MaxFileNameLength, MaxFileNameDisplay)

	// Формируем текст статуса
	var progressText string

	// Фаза обработки
	phaseText := status.Phase.String()
	if status.Message != "" {
		phaseText = status.Message
	}

	progressText = fmt.Sprintf(
		"[yellow]⚙️  Фаза:[white] %s\n\n"+
			"[yellow]📁 Текущий файл:[white] %s\n",
		phaseText,
		filepath.Base(displayFile),
	)

	// Размер текущего файла
	if status.CurrentFileSize > 0 {
		progressText += fmt.Sprintf("[dim]   Размер: %.2f MB[white]\n", float64(status.CurrentFileSize)/1024/1024)
	}

	// Прогресс-бар
	progressText += fmt.Sprintf(
		"\n[cyan]📊 Прогресс:[white] %s [cyan]%.1f%%[white]\n\n",
		progressBar,
		status.Progress,
	)

	// Статистика файлов
	progressText += fmt.Sprintf(
		"[green]📈 Статистика файлов:[white]\n"+
			"  • Всего: [cyan]%d[white]\n"+
			"  • Обработано: [cyan]%d[white]\n"+
			"  • Успешно: [green]%d[white]",
		status.TotalFiles,
		status.ProcessedFiles,
		status.SuccessfulFiles,
	)

	if status.FailedFiles > 0 {
		progressText += fmt.Sprintf("\n  • Ошибок: [red]%d[white]", status.FailedFiles)
	}

	if status.SkippedFiles > 0 {
		progressText += fmt.Sprintf("\n  • Пропущено: [yellow]%d[white]", status.SkippedFiles)
	}

	// Статистика сжатия
	if status.TotalOriginalSize > 0 {
		progressText += fmt.Sprintf(
			"\n\n[green]💾 Статистика сжатия:[white]\n"+
				"  • Исходный размер: [cyan]%.2f MB[white]\n"+
				"  • Сжатый размер: [cyan]%.2f MB[white]\n"+
				"  • Среднее сжатие: [green]%.1f%%[white]\n"+
				"  • Сэкономлено: [green]%.2f MB[white]",
			float64(status.TotalOriginalSize)/1024/1024,
			float64(status.TotalCompressedSize)/1024/1024,
			status.AverageCompression,
			float64(status.TotalSavedSpace)/1024/1024,
		)
	}

	// Время выполнения
	progressText += fmt.Sprintf(
		"\n\n[yellow]⏱️  Время:[white]\n"+
			"  • Прошло: [cyan]%s[white]",
		status.FormatElapsedTime(),
	)

	if !status.IsComplete && status.EstimatedTime > 0 {
		progressText += fmt.Sprintf("\n  • Осталось: [cyan]~%s[white]", status.FormatEstimatedTime())
	}

	progressText += "\n\n"

	if status.IsComplete {
		if status.Error != nil {
			progressText += "[red]❌ Обработка завершена с ошибкой![white]\n"
			progressText += fmt.Sprintf("[red]Ошибка: %v[white]\n", status.Error)
		} else {
			progressText += "[green]✅ Обработка успешно завершена![white]\n"
		}
		progressText += "\n[yellow]F1[white] - Главное меню\n"
		progressText += "[yellow]ESC[white] - Главное меню\n"
		m.isProcessing = false
	} else {
		progressText += "[yellow]F1[white] - Главное меню\n"
		progressText += "[yellow]ESC[white] - Главное меню\n"
	}

	if status.Error != nil {
		progressText += fmt.Sprintf("\n[red]❌ Ошибка: %v[white]\n", status.Error)
	}

	// Обновляем UI потокобезопасно через QueueUpdateDraw
	m.app.QueueUpdateDraw(func() {
		m.progressView.SetText(progressText)
	})
}

// truncateFileName корректно усекает имя файла с учетом UTF-8
func (m *Manager) truncateFileName(fileName string, maxLength, truncateAt int) string {
	runes := []rune(fileName)
	if len(runes) <= maxLength {
		return fileName
	}
	return string(runes[:truncateAt]) + "..."
}

// createProgressBar создает красивый цветной прогресс-бар
func (m *Manager) createProgressBar(progress float64, width int) string {
	// Нормализуем значения
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	filled := int(math.Round(progress * float64(width) / 100))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	// Разные символы для заполненной и пустой части
	const filledChar = "█"
	const emptyChar = "░"

	// Цвет зависит от прогресса
	var color string
	switch {
	case progress < 25:
		color = "red"
	case progress < 50:
		color = "yellow"
	case progress < 75:
		color = "blue"
	default:
		color = "green"
	}

	filledPart := strings.Repeat(filledChar, filled)
	emptyPart := strings.Repeat(emptyChar, width-filled)

	return fmt.Sprintf("[%s]%s[gray]%s", color, filledPart, emptyPart)
}

// AddLog добавляет запись в лог через канал (неблокирующе)
func (m *Manager) AddLog(level, message string) {
	var color string
	switch strings.ToLower(level) {
	case "error":
		color = "red"
	case "warning":
		color = "yellow"
	case "success":
		color = "green"
	case "debug":
		color = "gray"
	default:
		color = "white"
	}

	logLine := fmt.Sprintf("[%s]%s:[white] %s", color, strings.ToUpper(level), message)

	// Неблокирующая отправка в канал
	select {
	case m.logChan <- logLine:
	default:
		// Если канал переполнен, пропускаем лог (лучше чем блокировка)
	}
}

// logProcessor обрабатывает логи в отдельной горутине с батчингом
func (m *Manager) logProcessor() {
	ticker := time.NewTicker(LogFlushInterval)
	defer ticker.Stop()

	batch := make([]string, 0, 50)

	for {
		select {
		case logLine := <-m.logChan:
			batch = append(batch, logLine)

			// Если накопился достаточный батч, сбрасываем
			if len(batch) >= 20 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-ticker.C:
			// Периодический сброс
			if len(batch) > 0 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-m.logDone:
			// Финальный сброс при завершении
			if len(batch) > 0 {
				m.flushLogBatch(batch)
			}
			return
		}
	}
}

// flushLogBatch сбрасывает батч логов в UI
func (m *Manager) flushLogBatch(batch []string) {
	m.statusMutex.Lock()
	m.logBuffer = append(m.logBuffer, batch...)

	// Ограничиваем размер буфера
	if len(m.logBuffer) > MaxLogBufferSize {
		m.logBuffer = m.logBuffer[len(m.logBuffer)-MaxLogBufferSize:]
	}

	// Создаем копию буфера для UI
	logText := strings.Join(m.logBuffer, "\n")
	m.statusMutex.Unlock()

	// Обновляем UI потокобезопасно
	if m.logView != nil {
		m.app.QueueUpdateDraw(func() {
			if m.logView != nil { // Двойная проверка
				m.logView.SetText(logText)
				m.logView.ScrollToEnd()
			}
		})
	}
}

// Cleanup освобождает ресурсы менеджера (идемпотентный)
func (m *Manager) Cleanup() {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()

	// Проверяем, что канал еще открыт
	select {
	case <-m.logDone:
		// Канал уже закрыт
		return
	default:
		// Закрываем канал
		close(m.logDone)
	}
}

// updateAlgorithmFields подсвечивает поля, относящиеся к выбранному алгоритму
func (m *Manager) updateAlgorithmFields() {
	if m.configForm == nil {
		return
	}

	formItemCount := m.configForm.GetFormItemCount()

	if formItemCount > FormItemGhostscriptIndex {
		gsField := m.configForm.GetFormItem(FormItemGhostscriptIndex).(*tview.InputField)
		if m.config.Compression.Algorithm == entities.AlgorithmGhostscript {
			gsField.SetTitle("Путь к Ghostscript (бинарь gs)")
			gsField.SetFieldBackgroundColor(tcell.ColorDarkBlue)
		} else {
			gsField.SetTitle("Путь к Ghostscript (не требуется)")
			gsField.SetFieldBackgroundColor(tcell.ColorDarkGray)
		}
	}

	if formItemCount > FormItemLicenseIndex {
		licenseField := m.configForm.GetFormItem(FormItemLicenseIndex).(*tview.InputField)
		if m.config.Compression.Algorithm == entities.AlgorithmUniPDF {
			licenseField.SetTitle("🔑 Лицензия UniPDF (UNIDOC_LICENSE_API_KEY) - ОБЯЗАТЕЛЬНО")
			licenseField.SetFieldBackgroundColor(tcell.ColorDarkBlue)
		} else {
			licenseField.SetTitle("Лицензия UniPDF (не требуется)")
			licenseField.SetFieldBackgroundColor(tcell.ColorDarkGray)
		}
	}
}

// refreshConfigForm синхронизирует значения формы с текущими данными конфигурации
func (m *Manager) refreshConfigForm() {
	if m.configForm == nil {
		return
	}

	// 0: Исходная директория (Input)
	if item := m.configForm.GetFormItem(0); item != nil {
		item.(*tview.InputField).SetText(m.config.Scanner.SourceDirectory)
	}
	// 1: Целевая директория (Input)
	if item := m.configForm.GetFormItem(1); item != nil {
		item.(*tview.InputField).SetText(m.config.Scanner.TargetDirectory)
	}
	// 2: Заменить оригинал (Checkbox)
	if item := m.configForm.GetFormItem(2); item != nil {
		item.(*tview.Checkbox).SetChecked(m.config.Scanner.ReplaceOriginal)
	}
	// 3: Уровень сжатия (Input)
	if item := m.configForm.GetFormItem(3); item != nil {
		item.(*tview.InputField).SetText(strconv.Itoa(m.config.Compression.Level))
	}
	// 4: Алгоритм (DropDown)
	if item := m.configForm.GetFormItem(4); item != nil {
		item.(*tview.DropDown).SetCurrentOption(algorithmIndex(m.config.Compression.Algorithm))
	}
	// 5: Путь к Ghostscript (Input)
	if item := m.configForm.GetFormItem(FormItemGhostscriptIndex); item != nil {
		item.(*tview.InputField).SetText(m.config.Compression.GhostscriptPath)
	}
	// 6: Лицензия UniPDF (Input)
	if item := m.configForm.GetFormItem(FormItemLicenseIndex); item != nil {
		item.(*tview.InputField).SetText(m.config.Compression.UniPDFLicenseKey)
	}
	// 7: Автостарт (Checkbox)
	if item := m.configForm.GetFormItem(7); item != nil {
		item.(*tview.Checkbox).SetChecked(m.config.Compression.AutoStart)
	}
	// 12: Вести журнал запусков (Checkbox)
	if item := m.configForm.GetFormItem(12); item != nil {
		item.(*tview.Checkbox).SetChecked(m.config.History.Enabled)
	}
	// 13: Архивировать подкаталоги (Checkbox)
	if item := m.configForm.GetFormItem(13); item != nil {
		item.(*tview.Checkbox).SetChecked(m.config.Archive.Enabled)
	}

	m.updateAlgorithmFields()
}

// GetConfig возвращает текущую конфигурацию
func (m *Manager) GetConfig() *entities.Config {
	return m.config
}
