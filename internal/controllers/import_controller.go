package controllers

import (
	"io"
	"net/http"

	"restaurant-system/internal/dto"
	"restaurant-system/internal/services"
	apperrors "restaurant-system/pkg/errors"
	"restaurant-system/pkg/filestorage"
	"restaurant-system/pkg/jobqueue"
	"restaurant-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ImportController struct {
	queue          *jobqueue.Queue
	resolver       *services.ImportInputResolver
	statusService  *services.ImportStatusService
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
	maxPayloadSize int64
}

func NewImportController(
	queue *jobqueue.Queue,
	resolver *services.ImportInputResolver,
	statusService *services.ImportStatusService,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	maxPayloadSize int64,
) *ImportController {
	return &ImportController{
		queue:          queue,
		resolver:       resolver,
		statusService:  statusService,
		fileStorage:    fileStorage,
		logger:         logger,
		maxPayloadSize: maxPayloadSize,
	}
}

// CreateImport принимает inline JSON. На этапе приема проверяются только
// размер, синтаксис и объект на верхнем уровне; остальная валидация - в задаче.
func (c *ImportController) CreateImport(ctx echo.Context) error {
	// +1, чтобы отличить "ровно лимит" от "больше лимита" без чтения хвоста.
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, c.maxPayloadSize+1))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не удалось прочитать тело запроса", err, nil),
			c.logger,
		)
	}

	if err := c.resolver.ValidateSubmission(body); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	jobID, err := c.queue.Enqueue(services.ImportJobType, services.ImportJobPayload{Data: body})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("импорт поставлен в очередь", zap.String("job_id", jobID), zap.Int("bytes", len(body)))
	return utils.SuccessResponse(ctx,
		dto.ImportSubmissionDTO{JobID: jobID, State: string(jobqueue.StateQueued)},
		"Импорт принят в обработку",
		http.StatusAccepted,
	)
}

// UploadImport принимает файл через multipart form-data; файл сохраняется во
// временный каталог, задаче передается путь.
func (c *ImportController) UploadImport(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не предоставлен", err, nil),
			c.logger,
		)
	}

	if fileHeader.Size > c.maxPayloadSize {
		return utils.ErrorResponse(ctx, apperrors.ErrFileTooLarge, c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось открыть загруженный файл", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	path, err := c.fileStorage.Save(src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось сохранить загруженный файл", err, nil),
			c.logger,
		)
	}

	jobID, err := c.queue.Enqueue(services.ImportJobType, services.ImportJobPayload{FilePath: path})
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("импорт из файла поставлен в очередь",
		zap.String("job_id", jobID),
		zap.String("path", path),
		zap.Int64("bytes", fileHeader.Size),
	)
	return utils.SuccessResponse(ctx,
		dto.ImportSubmissionDTO{JobID: jobID, State: string(jobqueue.StateQueued)},
		"Импорт принят в обработку",
		http.StatusAccepted,
	)
}

// ImportStatus - опрос статуса задачи по идентификатору.
func (c *ImportController) ImportStatus(ctx echo.Context) error {
	var req dto.ImportStatusRequestDTO
	if err := ctx.Bind(&req); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный идентификатор задачи", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&req); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	status, err := c.statusService.Status(ctx.Request().Context(), req.JobID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, status, "Статус задачи получен", http.StatusOK)
}
