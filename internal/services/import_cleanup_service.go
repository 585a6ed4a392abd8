package services

import (
	"os"
	"path/filepath"
	"time"

	"restaurant-system/pkg/filestorage"

	"go.uber.org/zap"
)

// ImportCleanupService подчищает временные файлы импорта. Все сбои удаления
// только логируются: очистка никогда не валит импорт.
type ImportCleanupService struct {
	storage filestorage.FileStorageInterface
	tempDir string
	logger  *zap.Logger
}

func NewImportCleanupService(storage filestorage.FileStorageInterface, tempDir string, logger *zap.Logger) *ImportCleanupService {
	return &ImportCleanupService{storage: storage, tempDir: tempDir, logger: logger}
}

// CleanupFile удаляет один временный файл. Best effort.
func (s *ImportCleanupService) CleanupFile(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if err := s.storage.Delete(path); err != nil {
		s.logger.Error("не удалось удалить временный файл импорта",
			zap.String("path", path), zap.Error(err))
		return false
	}
	s.logger.Info("временный файл импорта удален", zap.String("path", path))
	return true
}

// CleanupOldFiles удаляет файлы import_* старше hoursOld часов.
// Возвращает количество удаленных.
func (s *ImportCleanupService) CleanupOldFiles(hoursOld int) int {
	if _, err := os.Stat(s.tempDir); err != nil {
		return 0
	}

	cutoff := time.Now().Add(-time.Duration(hoursOld) * time.Hour)
	removed := 0

	matches, err := filepath.Glob(filepath.Join(s.tempDir, "import_*"))
	if err != nil {
		s.logger.Error("ошибка обхода каталога временных файлов", zap.Error(err))
		return 0
	}

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := s.storage.Delete(path); err != nil {
			s.logger.Error("не удалось удалить устаревший файл импорта",
				zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
		s.logger.Info("удален устаревший файл импорта", zap.String("path", path))
	}

	s.logger.Info("очистка временных файлов завершена", zap.Int("removed", removed))
	return removed
}
