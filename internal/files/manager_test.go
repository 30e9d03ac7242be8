package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnavabiswas0/Feedback/internal/config"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/internal/shared/testutil"
)

func newTestManager(t *testing.T) (*Manager, *config.Paths) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	paths := config.NewPaths(t.TempDir())
	return NewManager(paths, logger), paths
}

func TestManager_WriteFile(t *testing.T) {
	manager, paths := newTestManager(t)

	t.Run("relative path lands in reports", func(t *testing.T) {
		path, err := manager.WriteFile("summary.docx", []byte("first"))
		require.NoError(t, err)
		assert.Equal(t, paths.GetReportPath("summary.docx"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("overwrite leaves no temporary files", func(t *testing.T) {
		path, err := manager.WriteFile("summary.docx", []byte("second"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))

		entries, err := os.ReadDir(paths.ReportsDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("absolute path is kept", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "nested", "out.pdf")
		path, err := manager.WriteFile(target, []byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, target, path)
		assert.FileExists(t, target)
	})
}

func TestManager_WriteArtifacts(t *testing.T) {
	manager, paths := newTestManager(t)
	artifacts := []session.Artifact{
		{Kind: session.KindSpreadsheet, FileName: "Expo_feedback.xlsx", Data: []byte("PK")},
		{Kind: session.KindReport, FileName: "Expo_feedback.pdf", Data: []byte("%PDF")},
	}

	written, err := manager.WriteArtifacts("", artifacts)
	require.NoError(t, err)
	assert.Equal(t, []string{
		paths.GetReportPath("Expo_feedback.xlsx"),
		paths.GetReportPath("Expo_feedback.pdf"),
	}, written)

	out := t.TempDir()
	written, err = manager.WriteArtifacts(out, artifacts[1:])
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "Expo_feedback.pdf")}, written)
}

func TestManager_WriteArtifacts_StopsOnError(t *testing.T) {
	manager, _ := newTestManager(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	written, err := manager.WriteArtifacts(blocker, []session.Artifact{{FileName: "a.pdf"}})
	assert.Error(t, err)
	assert.Empty(t, written)
}

func TestManager_EnsureDirectory(t *testing.T) {
	manager, paths := newTestManager(t)

	require.NoError(t, manager.EnsureDirectory("charts"))
	info, err := os.Stat(filepath.Join(paths.ReportsDir, "charts"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
