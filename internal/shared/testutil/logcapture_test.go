package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.With("component", "loader").Info("table loaded", slog.Int("rows", 4))
	logger.Error("run failed")

	records := handler.Records()
	require.Len(t, records, 2)

	rec, ok := handler.Find("table loaded")
	require.True(t, ok)
	assert.Equal(t, "loader", rec.Attrs["component"])
	assert.Equal(t, int64(4), rec.Attrs["rows"])

	AssertLogContains(t, handler, slog.LevelError, "run failed")
}
