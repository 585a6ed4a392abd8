package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/filestorage"
	"restaurant-system/pkg/jobqueue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCache - кеш в памяти, чтобы не тянуть Redis в тесты задач.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		c.data[key] = fmt.Sprintf("%v", v)
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

type jobTestEnv struct {
	queue  *jobqueue.Queue
	status *ImportStatusService
}

func newJobTestEnv(t *testing.T) *jobTestEnv {
	t.Helper()
	nopLogger := zap.NewNop()
	cache := newFakeCache()

	tempDir := t.TempDir()
	fileStorage, err := filestorage.NewLocalFileStorage(tempDir)
	require.NoError(t, err)

	resolver := NewImportInputResolver(5*1024*1024, nopLogger)
	cleanup := NewImportCleanupService(fileStorage, tempDir, nopLogger)
	jobService := NewImportJobService(
		newImportService(DefaultBatchSize), resolver, cleanup, cache, nopLogger, time.Hour,
	)

	queue := jobqueue.New(nopLogger, 4)
	queue.RegisterHandler(ImportJobType, jobService.Handle)
	queue.Start(1)
	t.Cleanup(queue.Shutdown)

	return &jobTestEnv{
		queue:  queue,
		status: NewImportStatusService(queue, cache, nopLogger),
	}
}

func (env *jobTestEnv) waitFinished(t *testing.T, jobID string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		state, err := env.queue.Status(jobID)
		require.NoError(t, err)
		if state == jobqueue.StateFinished || state == jobqueue.StateFailed {
			require.Equal(t, jobqueue.StateFinished, state)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("задача %s не завершилась вовремя", jobID)
}

func TestImportJob_InlineDataEndToEnd(t *testing.T) {
	cleanupTables(t)
	env := newJobTestEnv(t)

	jobID, err := env.queue.Enqueue(ImportJobType, ImportJobPayload{Data: []byte(`{
		"restaurants": [
			{"name": "Кафе", "menus": [
				{"name": "Обед", "menu_items": [{"name": "Плов", "price": 25.5}]}
			]}
		]
	}`)})
	require.NoError(t, err)

	env.waitFinished(t, jobID)

	status, err := env.status.Status(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobqueue.StateFinished), status.State)
	require.NotNil(t, status.Result)
	assert.True(t, status.Result.Success)
	assert.Equal(t, 1, status.Result.Data.RestaurantsProcessed)
	assert.Equal(t, 1, countRows(t, "menu_menu_items"))
}

func TestImportJob_FileInputRemovesTempFile(t *testing.T) {
	cleanupTables(t)
	env := newJobTestEnv(t)

	path := filepath.Join(t.TempDir(), "import_job.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"restaurants": [{"name": "Кафе из файла"}]}`), 0644))

	jobID, err := env.queue.Enqueue(ImportJobType, ImportJobPayload{FilePath: path})
	require.NoError(t, err)

	env.waitFinished(t, jobID)

	status, err := env.status.Status(context.Background(), jobID)
	require.NoError(t, err)
	require.NotNil(t, status.Result)
	assert.True(t, status.Result.Success)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "временный файл должен быть удален после задачи")
}

func TestImportJob_BadInputIsLogicalFailure(t *testing.T) {
	cleanupTables(t)
	env := newJobTestEnv(t)

	jobID, err := env.queue.Enqueue(ImportJobType, ImportJobPayload{Data: []byte(`{"restaurants": [`)})
	require.NoError(t, err)

	// Плохой вход - это finished с success=false, а не failed.
	env.waitFinished(t, jobID)

	status, err := env.status.Status(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobqueue.StateFinished), status.State)
	require.NotNil(t, status.Result)
	assert.False(t, status.Result.Success)
	require.Len(t, status.Result.Errors, 1)
	assert.Contains(t, status.Result.Errors[0], "Critical error:")
}

func TestImportJob_UnknownJobID(t *testing.T) {
	env := newJobTestEnv(t)

	_, err := env.status.Status(context.Background(), "нет-такой-задачи")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestImportJob_ResultEvicted(t *testing.T) {
	cleanupTables(t)
	nopLogger := zap.NewNop()
	cache := newFakeCache()

	tempDir := t.TempDir()
	fileStorage, err := filestorage.NewLocalFileStorage(tempDir)
	require.NoError(t, err)

	resolver := NewImportInputResolver(5*1024*1024, nopLogger)
	cleanup := NewImportCleanupService(fileStorage, tempDir, nopLogger)
	jobService := NewImportJobService(
		newImportService(DefaultBatchSize), resolver, cleanup, cache, nopLogger, time.Hour,
	)

	queue := jobqueue.New(nopLogger, 4)
	queue.RegisterHandler(ImportJobType, jobService.Handle)
	queue.Start(1)
	t.Cleanup(queue.Shutdown)

	statusService := NewImportStatusService(queue, cache, nopLogger)
	env := &jobTestEnv{queue: queue, status: statusService}

	jobID, err := queue.Enqueue(ImportJobType, ImportJobPayload{Data: []byte(`{"restaurants": [{"name": "Кафе"}]}`)})
	require.NoError(t, err)
	env.waitFinished(t, jobID)

	// Имитируем вытеснение результата по TTL.
	require.NoError(t, cache.Del(context.Background(), fmt.Sprintf("import_results:job:%s", jobID)))

	status, err := statusService.Status(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobqueue.StateFinished), status.State)
	assert.Nil(t, status.Result)
	assert.Equal(t, "Import finished, results are no longer available", status.Message)
}
