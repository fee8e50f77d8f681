package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pdfsqueeze/internal/infrastructure/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Показать журнал запусков сжатия",
	Long: `history выводит последние запуски пакетного сжатия из локального журнала.
С аргументом id показывает результаты по каждому файлу указанного запуска.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runHistory,
	SilenceUsage: true,
}

func runHistory(cmd *cobra.Command, args []string) error {
	appConfig, err := loadAppConfig()
	if err != nil {
		return err
	}

	store, err := history.NewSQLiteStore(appConfig.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("некорректный идентификатор запуска: %s", args[0])
		}
		return showRunFiles(store, runID)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	return showRecentRuns(store, limit)
}

func showRecentRuns(store *history.SQLiteStore, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("Журнал пуст: запусков еще не было")
		return nil
	}

	fmt.Println("📜 Последние запуски:")
	fmt.Println()

	for _, run := range runs {
		fmt.Printf("#%d  %s  %s  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Algorithm,
			run.RootDirectory,
		)
		fmt.Printf("    файлов: %d, успешно: %d, ошибок: %d, сэкономлено: %.2f MB\n",
			run.TotalFiles,
			run.SuccessfulFiles,
			run.FailedFiles,
			float64(run.SavedBytes())/1024/1024,
		)
	}

	return nil
}

func showRunFiles(store *history.SQLiteStore, runID int64) error {
	files, err := store.RunFiles(runID)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Printf("Запуск #%d не найден или не содержит файлов\n", runID)
		return nil
	}

	fmt.Printf("📄 Файлы запуска #%d:\n\n", runID)

	for _, file := range files {
		if file.Success {
			fmt.Printf("✅ %s (%.2f MB → %.2f MB)\n",
				file.Path,
				float64(file.OriginalSize)/1024/1024,
				float64(file.CompressedSize)/1024/1024,
			)
		} else {
			fmt.Printf("⚠️ %s: %s\n", file.Path, file.Error)
		}
	}

	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 10, "число запусков в списке")
	rootCmd.AddCommand(historyCmd)
}
