package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnavabiswas0/Feedback/internal/shared/testutil"
)

func TestNewErrorHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	handler := NewErrorHandler(logger, true)

	assert.NotNil(t, handler)
	assert.True(t, handler.includeStack)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:       "context deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error",
			err:        ErrSessionNotFound,
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
			wantDetail: "Session not found or expired",
		},
		{
			name: "invalid event date",
			err: fmt.Errorf("generate: %w",
				NewAppValidationError("Invalid date format. Please enter the date in DD-MM-YYYY format.", nil).
					WithContext("event_date", "2025/01/01")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeInvalidEventDate,
			wantDetail: "Invalid date format. Please enter the date in DD-MM-YYYY format.",
		},
		{
			name:       "missing column",
			err:        NewUnprocessableError("The uploaded file has no Logistics column", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnprocessable,
			wantDetail: "The uploaded file has no Logistics column",
		},
		{
			name:       "unsupported format",
			err:        NewUnsupportedError("Only .csv and .xlsx files are supported", nil),
			wantStatus: http.StatusUnsupportedMediaType,
			wantType:   TypeUnsupportedFormat,
		},
		{
			name:       "storage error hides message",
			err:        NewStorageError("disk path /secret failed", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantDetail: "An unexpected error occurred while processing your request",
		},
		{
			name:       "max bytes",
			err:        fmt.Errorf("read upload: %w", &http.MaxBytesError{Limit: 1024}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
		},
		{
			name:       "generic error",
			err:        stderrors.New("something went wrong"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logHandler := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/sessions/abc/generate", nil)

			handler.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var problem map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.Equal(t, float64(tt.wantStatus), problem["status"])
			assert.Equal(t, "/api/sessions/abc/generate", problem["instance"])
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, problem["detail"])
			}
			assert.Contains(t, problem, "trace_id")

			_, logged := logHandler.Find("request failed")
			assert.True(t, logged)
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	logger, logHandler := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	handler.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Empty(t, w.Body.String())
	assert.Empty(t, logHandler.Records())
}

func TestErrorHandler_LogLevel(t *testing.T) {
	logger, logHandler := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	handler.HandleError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), ErrSessionNotFound)
	handler.HandleError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), stderrors.New("boom"))

	records := logHandler.Records()
	require.Len(t, records, 2)
	assert.Equal(t, slog.LevelWarn, records[0].Level)
	assert.Equal(t, slog.LevelError, records[1].Level)
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true)

	w := httptest.NewRecorder()
	handler.HandlePanic(w, httptest.NewRequest(http.MethodGet, "/boom", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var problem map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&problem))
	assert.Equal(t, "kaboom", problem["panic"])
	assert.Contains(t, problem, "stack")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	handler.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.MethodNotAllowed(w, httptest.NewRequest(http.MethodPatch, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "PATCH")
}
