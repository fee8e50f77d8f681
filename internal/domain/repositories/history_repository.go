package repositories

import "pdfsqueeze/internal/domain/entities"

// HistoryRepository интерфейс журнала запусков
type HistoryRepository interface {
	SaveRun(run *entities.RunRecord, files []entities.FileRecord) error
	RecentRuns(limit int) ([]entities.RunRecord, error)
	RunFiles(runID int64) ([]entities.FileRecord, error)
	Close() error
}
