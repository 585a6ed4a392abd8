package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/repositories"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/jobqueue"

	"go.uber.org/zap"
)

// ImportJobType - тип задачи импорта в очереди.
const ImportJobType = "restaurant_import"

func importResultCacheKey(jobID string) string {
	return fmt.Sprintf("import_results:job:%s", jobID)
}

// ImportJobPayload - сообщение задачи: либо путь к временному файлу, либо
// inline-данные документа.
type ImportJobPayload struct {
	FilePath string
	Data     []byte
}

// ImportJobService выполняет импорт асинхронно: разрешает вход, запускает
// конвейер, кладет конверт результата в кеш на время ResultTTL и подчищает
// временный файл. Логическая неудача импорта - это finished с success=false,
// состояние failed оставлено за необработанными паниками.
type ImportJobService struct {
	importService *RestaurantImportService
	resolver      *ImportInputResolver
	cleanup       *ImportCleanupService
	cache         repositories.CacheRepositoryInterface
	logger        *zap.Logger
	resultTTL     time.Duration
}

func NewImportJobService(
	importService *RestaurantImportService,
	resolver *ImportInputResolver,
	cleanup *ImportCleanupService,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	resultTTL time.Duration,
) *ImportJobService {
	return &ImportJobService{
		importService: importService,
		resolver:      resolver,
		cleanup:       cleanup,
		cache:         cache,
		logger:        logger,
		resultTTL:     resultTTL,
	}
}

// Handle - обработчик задачи для очереди.
func (s *ImportJobService) Handle(ctx context.Context, jobID string, payload interface{}) error {
	input, ok := payload.(ImportJobPayload)
	if !ok {
		return fmt.Errorf("неожиданный тип полезной нагрузки задачи: %T", payload)
	}

	s.logger.Info("запуск задачи импорта", zap.String("job_id", jobID))

	// Временный файл удаляется на любом исходе, включая панику.
	defer func() {
		if input.FilePath != "" {
			s.cleanup.CleanupFile(input.FilePath)
		}
	}()

	doc, err := s.resolver.Resolve(ImportInput{FilePath: input.FilePath, Data: input.Data})
	if err != nil {
		// Ошибка входных данных - логическая неудача, а не крах задачи.
		s.storeResult(ctx, jobID, &dto.ImportResultDTO{
			Success:  false,
			Errors:   []string{fmt.Sprintf("Critical error: %s", err.Error())},
			Logs:     []dto.LogEntryDTO{},
			ItemLogs: []dto.ItemLogEntryDTO{},
		})
		return nil
	}

	result := s.importService.Import(ctx, doc)
	s.storeResult(ctx, jobID, result)

	if result.Success {
		s.logger.Info("задача импорта завершена",
			zap.String("job_id", jobID),
			zap.Int("restaurants", result.Data.RestaurantsProcessed),
			zap.Int("menus", result.Data.MenusProcessed),
			zap.Int("items", result.Data.ItemsProcessed),
			zap.Int("batches", result.Data.BatchesProcessed),
		)
	} else {
		s.logger.Error("импорт завершился с ошибками",
			zap.String("job_id", jobID),
			zap.Strings("errors", result.Errors),
		)
	}
	return nil
}

// storeResult кладет конверт в кеш. Сбой записи только логируется: сами
// данные уже в БД, импорт из-за потери отчета не считается проваленным.
func (s *ImportJobService) storeResult(ctx context.Context, jobID string, result *dto.ImportResultDTO) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("не удалось сериализовать результат импорта",
			zap.String("job_id", jobID), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, importResultCacheKey(jobID), raw, s.resultTTL); err != nil {
		s.logger.Error("не удалось сохранить результат импорта в кеш",
			zap.String("job_id", jobID), zap.Error(err))
	}
}

// ImportStatusService отвечает на опрос статуса задачи по идентификатору.
type ImportStatusService struct {
	queue  *jobqueue.Queue
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewImportStatusService(queue *jobqueue.Queue, cache repositories.CacheRepositoryInterface, logger *zap.Logger) *ImportStatusService {
	return &ImportStatusService{queue: queue, cache: cache, logger: logger}
}

func (s *ImportStatusService) Status(ctx context.Context, jobID string) (*dto.ImportStatusDTO, error) {
	state, err := s.queue.Status(jobID)
	if err != nil {
		return nil, err
	}

	status := &dto.ImportStatusDTO{JobID: jobID, State: string(state)}
	if state != jobqueue.StateFinished {
		return status, nil
	}

	raw, err := s.cache.Get(ctx, importResultCacheKey(jobID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Запись вытеснена или TTL истек: завершение без деталей - не ошибка.
			status.Message = "Import finished, results are no longer available"
			return status, nil
		}
		return nil, err
	}

	var result dto.ImportResultDTO
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Error("поврежденный результат импорта в кеше",
			zap.String("job_id", jobID), zap.Error(err))
		status.Message = "Import finished, results are no longer available"
		return status, nil
	}
	status.Result = &result
	return status, nil
}
