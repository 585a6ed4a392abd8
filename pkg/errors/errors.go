package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrConflict   = fmt.Errorf("запись с такими данными уже существует")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Этап приема импорта
	ErrParse            = fmt.Errorf("некорректный JSON")
	ErrInvalidStructure = fmt.Errorf("неверная структура документа: ожидается объект с массивом restaurants")
	ErrEmptyRestaurants = fmt.Errorf("массив restaurants не может быть пустым")
	ErrPayloadTooLarge  = fmt.Errorf("размер данных превышает допустимый лимит")
	ErrFileTooLarge     = fmt.Errorf("размер файла превышает допустимый лимит")
	ErrInputNotFound    = fmt.Errorf("входные данные импорта не найдены")

	// Статус задач
	ErrJobNotFound = fmt.Errorf("задача с таким идентификатором не найдена")
)

// HttpError несет HTTP-код, сообщение для пользователя и внутреннюю ошибку для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// ValidationError - ошибка валидации сущности на этапе сохранения.
// Для импорта она фатальна: батч откатывается, оставшиеся батчи не выполняются.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode сопоставляет известные ошибки HTTP-кодам ответа.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrJobNotFound), errors.Is(err, ErrInputNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrPayloadTooLarge), errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrParse), errors.Is(err, ErrInvalidStructure), errors.Is(err, ErrEmptyRestaurants), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
