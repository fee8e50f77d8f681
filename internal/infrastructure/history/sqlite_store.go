package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pdfsqueeze/internal/domain/entities"
)

const dbFile = "history.db"

// SQLiteStore хранит журнал запусков сжатия в базе SQLite
type SQLiteStore struct {
	db *sql.DB
}

// DefaultPath возвращает путь базы журнала в каталоге кэша пользователя
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("каталог кэша недоступен: %w", err)
	}
	return filepath.Join(cacheDir, "pdfsqueeze", dbFile), nil
}

// NewSQLiteStore открывает или создает базу журнала по указанному пути.
// Пустой путь означает базу в каталоге кэша пользователя.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога журнала: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы журнала: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка создания схемы журнала: %w", err)
	}

	return s, nil
}

// Close закрывает соединение с базой
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			root_directory TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			total_files INTEGER NOT NULL,
			successful_files INTEGER NOT NULL,
			failed_files INTEGER NOT NULL,
			original_bytes INTEGER NOT NULL,
			compressed_bytes INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			path TEXT NOT NULL,
			original_size INTEGER NOT NULL,
			compressed_size INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// SaveRun сохраняет запуск вместе с записями по файлам в одной транзакции
func (s *SQLiteStore) SaveRun(run *entities.RunRecord, files []entities.FileRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (started_at, finished_at, root_directory, algorithm,
			total_files, successful_files, failed_files, original_bytes, compressed_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.RootDirectory,
		run.Algorithm,
		run.TotalFiles,
		run.SuccessfulFiles,
		run.FailedFiles,
		run.OriginalBytes,
		run.CompressedBytes,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи запуска: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("ошибка получения идентификатора запуска: %w", err)
	}
	run.ID = runID

	stmt, err := tx.Prepare(
		`INSERT INTO run_files (run_id, path, original_size, compressed_size, success, error)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for _, file := range files {
		if _, err := stmt.Exec(runID, file.Path, file.OriginalSize, file.CompressedSize, file.Success, file.Error); err != nil {
			return fmt.Errorf("ошибка записи файла %s: %w", file.Path, err)
		}
	}

	return tx.Commit()
}

// RecentRuns возвращает последние запуски, новые первыми
func (s *SQLiteStore) RecentRuns(limit int) ([]entities.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, root_directory, algorithm,
			total_files, successful_files, failed_files, original_bytes, compressed_bytes
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	var runs []entities.RunRecord
	for rows.Next() {
		var run entities.RunRecord
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.RootDirectory, &run.Algorithm,
			&run.TotalFiles, &run.SuccessfulFiles, &run.FailedFiles,
			&run.OriginalBytes, &run.CompressedBytes); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи запуска: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// RunFiles возвращает записи по файлам указанного запуска
func (s *SQLiteStore) RunFiles(runID int64) ([]entities.FileRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, path, original_size, compressed_size, success, error
		 FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файлов запуска: %w", err)
	}
	defer rows.Close()

	var files []entities.FileRecord
	for rows.Next() {
		var file entities.FileRecord
		if err := rows.Scan(&file.RunID, &file.Path, &file.OriginalSize, &file.CompressedSize,
			&file.Success, &file.Error); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи файла: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}
