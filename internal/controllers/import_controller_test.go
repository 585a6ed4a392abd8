package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-system/internal/repositories"
	"restaurant-system/internal/services"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/filestorage"
	"restaurant-system/pkg/jobqueue"
	"restaurant-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testMaxPayload = 256

// emptyCache отдает "не найдено" на любой ключ: для маршрутных тестов
// содержимое кеша результатов не нужно.
type emptyCache struct{}

func (emptyCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (emptyCache) Get(ctx context.Context, key string) (string, error) {
	return "", apperrors.ErrNotFound
}
func (emptyCache) Del(ctx context.Context, keys ...string) error { return nil }

var _ repositories.CacheRepositoryInterface = emptyCache{}

func newImportTestServer(t *testing.T) (*echo.Echo, *jobqueue.Queue) {
	t.Helper()
	nopLogger := zap.NewNop()

	e := echo.New()
	e.Validator = utils.NewValidator(validator.New())

	queue := jobqueue.New(nopLogger, 4)
	queue.RegisterHandler(services.ImportJobType, func(ctx context.Context, jobID string, payload interface{}) error {
		return nil
	})
	t.Cleanup(queue.Shutdown)

	fileStorage, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	resolver := services.NewImportInputResolver(testMaxPayload, nopLogger)
	statusService := services.NewImportStatusService(queue, emptyCache{}, nopLogger)
	ctrl := NewImportController(queue, resolver, statusService, fileStorage, nopLogger, testMaxPayload)

	e.POST("/api/import", ctrl.CreateImport)
	e.POST("/api/import/upload", ctrl.UploadImport)
	e.GET("/api/import/status/:job_id", ctrl.ImportStatus)
	return e, queue
}

func TestCreateImport_Accepted(t *testing.T) {
	e, queue := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import",
		strings.NewReader(`{"restaurants": [{"name": "Кафе"}]}`))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var response struct {
		Body struct {
			JobID string `json:"job_id"`
			State string `json:"state"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Body.JobID)
	assert.Equal(t, string(jobqueue.StateQueued), response.Body.State)

	state, err := queue.Status(response.Body.JobID)
	require.NoError(t, err)
	assert.Contains(t, []jobqueue.State{jobqueue.StateQueued, jobqueue.StateProcessing, jobqueue.StateFinished}, state)
}

func TestCreateImport_RejectsOversizedBody(t *testing.T) {
	e, _ := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import",
		strings.NewReader(`{"restaurants": ["`+strings.Repeat("x", testMaxPayload)+`"]}`))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateImport_RejectsMalformedJSON(t *testing.T) {
	e, _ := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"restaurants": [`))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateImport_RejectsNonObjectTopLevel(t *testing.T) {
	e, _ := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`[1, 2, 3]`))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportStatus_RejectsNonUUID(t *testing.T) {
	e, _ := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/import/status/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Идентификатор не проходит валидацию, до очереди запрос не доходит.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportStatus_UnknownJob(t *testing.T) {
	e, _ := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/import/status/7df97a74-3bb1-4a2f-9f39-0e9f1bcd27a1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadImport_MissingFile(t *testing.T) {
	e, _ := newImportTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import/upload", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
