package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)
	require.NotNil(t, paths)

	assert.True(t, filepath.IsAbs(paths.ExecutableDir), "ExecutableDir should be absolute")
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(paths.DataDir, "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths := NewPaths(t.TempDir())

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}

	// idempotent
	assert.NoError(t, paths.EnsureDirectories())
}

func TestPaths_FileHelpers(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(base)

	assert.Equal(t, filepath.Join(base, "data", "reports", "TechFest_feedback.xlsx"),
		paths.GetReportPath("TechFest_feedback.xlsx"))
	assert.Equal(t, filepath.Join(base, "logs", "app.log"), paths.GetLogPath("app.log"))

	assert.False(t, FileExists(filepath.Join(base, "missing")))
	require.NoError(t, os.WriteFile(filepath.Join(base, "present"), nil, 0644))
	assert.True(t, FileExists(filepath.Join(base, "present")))
}

func TestPaths_LogPathResolution(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	NewPaths("/srv/feedback").LogPathResolution(logger)

	assert.Contains(t, buf.String(), "Path resolution summary")
	assert.Contains(t, buf.String(), "reports")
}
