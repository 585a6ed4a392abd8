package utils

import (
	"net/http"

	apperrors "restaurant-system/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации данных", err, nil)
	}
	return nil
}
