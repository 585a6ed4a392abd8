package utils

import (
	"net/http"
	"testing"

	apperrors "restaurant-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator(t *testing.T) {
	cv := NewValidator(validator.New())

	type request struct {
		JobID string `validate:"required,uuid4"`
	}

	assert.NoError(t, cv.Validate(request{JobID: "7df97a74-3bb1-4a2f-9f39-0e9f1bcd27a1"}))

	err := cv.Validate(request{JobID: "не-uuid"})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
