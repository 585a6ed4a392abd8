package services

import (
	"encoding/json"
	"fmt"
	"os"

	"restaurant-system/internal/dto"
	apperrors "restaurant-system/pkg/errors"

	"go.uber.org/zap"
)

// ImportInput - вход импорта: либо путь к временному файлу, либо inline-данные.
type ImportInput struct {
	FilePath string
	Data     []byte
}

// ImportInputResolver проверяет размер, парсит JSON и валидирует верхний уровень
// документа. Чистая проверка: временный файл не удаляется, это забота вызывающего.
type ImportInputResolver struct {
	maxSize int64
	logger  *zap.Logger
}

func NewImportInputResolver(maxSize int64, logger *zap.Logger) *ImportInputResolver {
	return &ImportInputResolver{maxSize: maxSize, logger: logger}
}

func (r *ImportInputResolver) Resolve(input ImportInput) (*dto.ImportDocument, error) {
	data := input.Data

	if input.FilePath != "" {
		info, err := os.Stat(input.FilePath)
		if err != nil {
			if len(input.Data) > 0 {
				// Путь не разрешился, но есть данные в памяти - используем их.
				r.logger.Warn("файл импорта не найден, используются inline-данные",
					zap.String("path", input.FilePath))
			} else {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrInputNotFound, input.FilePath)
			}
		} else {
			if info.Size() > r.maxSize {
				return nil, fmt.Errorf("%w: %s (%s > %s)",
					apperrors.ErrFileTooLarge, input.FilePath,
					FormatFileSize(info.Size()), FormatFileSize(r.maxSize))
			}
			data, err = os.ReadFile(input.FilePath)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrInputNotFound, input.FilePath)
			}
		}
	}

	if len(data) == 0 {
		return nil, apperrors.ErrInputNotFound
	}
	if int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%w: %s > %s",
			apperrors.ErrPayloadTooLarge, FormatFileSize(int64(len(data))), FormatFileSize(r.maxSize))
	}

	if !json.Valid(data) {
		return nil, apperrors.ErrParse
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, apperrors.ErrInvalidStructure
	}
	rawRestaurants, ok := top["restaurants"]
	if !ok {
		return nil, apperrors.ErrInvalidStructure
	}

	var restaurants []dto.RestaurantPayload
	if err := json.Unmarshal(rawRestaurants, &restaurants); err != nil {
		return nil, apperrors.ErrInvalidStructure
	}
	if len(restaurants) == 0 {
		return nil, apperrors.ErrEmptyRestaurants
	}

	return &dto.ImportDocument{Restaurants: restaurants}, nil
}

// ValidateSubmission - быстрая проверка на этапе приема запроса: размер,
// синтаксис JSON и объект на верхнем уровне. Бизнес-валидация (пустой массив
// restaurants и т.п.) намеренно отложена в асинхронную задачу.
func (r *ImportInputResolver) ValidateSubmission(data []byte) error {
	if int64(len(data)) > r.maxSize {
		return fmt.Errorf("%w: %s > %s",
			apperrors.ErrPayloadTooLarge, FormatFileSize(int64(len(data))), FormatFileSize(r.maxSize))
	}
	if !json.Valid(data) {
		return apperrors.ErrParse
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return apperrors.ErrInvalidStructure
	}
	return nil
}

// FormatFileSize форматирует байты в человекочитаемый вид для сообщений об ошибках.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.2fMB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
