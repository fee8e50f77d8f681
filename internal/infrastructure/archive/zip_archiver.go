package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirectoryArchiver интерфейс для упаковки директорий в архивы
type DirectoryArchiver interface {
	ArchiveDirectory(sourceDir, destDir, baseName string, maxPartSize int64) ([]string, error)
}

// ZipArchiver пишет zip архивы с разбиением на части по размеру
type ZipArchiver struct{}

// NewZipArchiver создает новый zip архиватор
func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

// zipPart открытая часть архива
type zipPart struct {
	path   string
	file   *os.File
	writer *zip.Writer
	size   int64 // суммарный исходный объем добавленных файлов
}

func (p *zipPart) close() error {
	if err := p.writer.Close(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}

// ArchiveDirectory упаковывает содержимое sourceDir в zip части в destDir.
// Разбиение идет по исходному объему файлов: часть закрывается, когда
// следующий файл не помещается в maxPartSize. Один файл крупнее лимита
// образует собственную часть. Части называются <baseName>_partN.zip;
// единственная часть переименовывается в <baseName>.zip.
// Пустая директория не дает ни одной части.
func (z *ZipArchiver) ArchiveDirectory(sourceDir, destDir, baseName string, maxPartSize int64) ([]string, error) {
	var files []string
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == sourceDir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка обхода директории %s: %w", sourceDir, err)
	}

	if len(files) == 0 {
		return nil, nil
	}
	sort.Strings(files)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории архивов: %w", err)
	}

	var parts []string
	var current *zipPart
	partNumber := 0

	openPart := func() error {
		partNumber++
		path := filepath.Join(destDir, fmt.Sprintf("%s_part%d.zip", baseName, partNumber))
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("ошибка создания части архива %s: %w", path, err)
		}
		current = &zipPart{path: path, file: file, writer: zip.NewWriter(file)}
		parts = append(parts, path)
		return nil
	}

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			// Исчезнувшие или недоступные файлы пропускаются
			continue
		}

		if current != nil && current.size > 0 && current.size+info.Size() > maxPartSize {
			if err := current.close(); err != nil {
				return parts, fmt.Errorf("ошибка закрытия части архива %s: %w", current.path, err)
			}
			current = nil
		}

		if current == nil {
			if err := openPart(); err != nil {
				return parts, err
			}
		}

		if err := addToZip(current.writer, sourceDir, file, info); err != nil {
			current.close()
			return parts, fmt.Errorf("ошибка добавления файла %s: %w", file, err)
		}
		current.size += info.Size()
	}

	if current != nil {
		if err := current.close(); err != nil {
			return parts, fmt.Errorf("ошибка закрытия части архива %s: %w", current.path, err)
		}
	}

	// Единственная часть теряет суффикс _part1
	if len(parts) == 1 {
		single := filepath.Join(destDir, baseName+".zip")
		if err := os.Rename(parts[0], single); err != nil {
			return parts, fmt.Errorf("ошибка переименования архива: %w", err)
		}
		parts[0] = single
	}

	return parts, nil
}

// addToZip кладет файл в архив под путем относительно sourceDir
func addToZip(zw *zip.Writer, sourceDir, file string, info os.FileInfo) error {
	rel, err := filepath.Rel(sourceDir, file)
	if err != nil {
		rel = filepath.Base(file)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	src, err := os.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}
