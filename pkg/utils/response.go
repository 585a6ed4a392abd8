package utils

import (
	"errors"
	"net/http"

	apperrors "restaurant-system/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		response.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	message := err.Error()
	code := apperrors.StatusCode(err)

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		code = httpErr.Code
		logger.Error("ошибка обработки запроса",
			zap.String("uri", ctx.Request().RequestURI),
			zap.Int("code", code),
			zap.Any("context", httpErr.Context),
			zap.Error(httpErr.Err),
		)
	} else {
		logger.Error("ошибка обработки запроса",
			zap.String("uri", ctx.Request().RequestURI),
			zap.Int("code", code),
			zap.Error(err),
		)
		if code == http.StatusInternalServerError {
			message = "Внутренняя ошибка сервера"
		}
	}

	response := &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	}
	return ctx.JSON(code, response)
}
