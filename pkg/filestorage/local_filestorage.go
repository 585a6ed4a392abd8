package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalFileStorage кладет загруженные файлы импорта во временный каталог.
// Имена вида import_<uuid>.json, чтобы сервис очистки находил их по префиксу.
type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string) (string, error) {
	ext := filepath.Ext(originalFileName)
	if ext == "" {
		ext = ".json"
	}
	uniqueFileName := fmt.Sprintf("import_%s%s", uuid.New().String(), ext)

	fullPath := filepath.Join(s.basePath, uniqueFileName)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return fullPath, nil
}

func (s *LocalFileStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}
	return os.Remove(filePath)
}
