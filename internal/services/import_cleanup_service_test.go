package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"restaurant-system/pkg/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCleanupService(t *testing.T, dir string) *ImportCleanupService {
	t.Helper()
	storage, err := filestorage.NewLocalFileStorage(dir)
	require.NoError(t, err)
	return NewImportCleanupService(storage, dir, zap.NewNop())
}

func TestCleanupFile(t *testing.T) {
	dir := t.TempDir()
	svc := newCleanupService(t, dir)

	path := filepath.Join(dir, "import_cleanup.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	assert.True(t, svc.CleanupFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.False(t, svc.CleanupFile(path))
	assert.False(t, svc.CleanupFile(""))
}

func TestCleanupOldFiles(t *testing.T) {
	dir := t.TempDir()
	svc := newCleanupService(t, dir)

	oldFile := filepath.Join(dir, "import_old.json")
	newFile := filepath.Join(dir, "import_new.json")
	otherFile := filepath.Join(dir, "report.txt")
	for _, path := range []string{oldFile, newFile, otherFile} {
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	}

	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, stale, stale))
	require.NoError(t, os.Chtimes(otherFile, stale, stale))

	removed := svc.CleanupOldFiles(1)

	assert.Equal(t, 1, removed)
	_, err := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(err))
	// Свежие файлы и файлы с другим префиксом не трогаем.
	_, err = os.Stat(newFile)
	assert.NoError(t, err)
	_, err = os.Stat(otherFile)
	assert.NoError(t, err)
}

func TestCleanupOldFiles_MissingDir(t *testing.T) {
	storage, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewImportCleanupService(storage, filepath.Join(t.TempDir(), "нет-такого"), zap.NewNop())
	assert.Equal(t, 0, svc.CleanupOldFiles(1))
}
