package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewNotFoundError("session", nil),
			want: "[NOT_FOUND] session not found",
		},
		{
			name: "with cause",
			err:  NewAppValidationError("Invalid date format. Use DD-MM-YYYY.", stderrors.New("parse failed")),
			want: "[VALIDATION] Invalid date format. Use DD-MM-YYYY.: parse failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	sentinel := stderrors.New("missing column")
	wrapped := fmt.Errorf("section logistics: %w", sentinel)

	err := NewUnprocessableError("The uploaded file has no Logistics column", wrapped)

	assert.True(t, stderrors.Is(err, sentinel))

	var appErr *AppError
	require.True(t, stderrors.As(fmt.Errorf("analyze: %w", err), &appErr))
	assert.Equal(t, ErrTypeUnprocessable, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeValidation, Message: "bad"}

	err.WithContext("event_date", "2025/01/01").WithContext("attempt", 1)

	assert.Equal(t, "2025/01/01", err.Context["event_date"])
	assert.Equal(t, 1, err.Context["attempt"])
}

func TestConstructors(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"validation", NewAppValidationError("m", cause), ErrTypeValidation},
		{"unprocessable", NewUnprocessableError("m", cause), ErrTypeUnprocessable},
		{"unsupported", NewUnsupportedError("m", cause), ErrTypeUnsupported},
		{"parsing", NewParsingError("m", cause), ErrTypeParsing},
		{"rendering", NewRenderingError("m", cause), ErrTypeRendering},
		{"storage", NewStorageError("m", cause), ErrTypeStorage},
		{"config", NewConfigError("m", cause), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, "m", tt.err.Message)
			assert.Same(t, cause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
		})
	}
}
