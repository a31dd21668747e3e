package utils_test

import (
	"errors"
	"testing"

	"github.com/blutspende/labdesk/utils"
	"github.com/go-playground/validator/v10"

	"github.com/stretchr/testify/assert"
)

type loginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=4"`
}

func TestFormatValidationError(t *testing.T) {
	err := validator.New().Struct(loginRequest{Password: "abc"})
	assert.Equal(t, "Username must satisfy required, Password must satisfy min=4", utils.FormatValidationError(err))
}

func TestFormatValidationErrorPlainError(t *testing.T) {
	assert.Equal(t, "unexpected EOF", utils.FormatValidationError(errors.New("unexpected EOF")))
}
