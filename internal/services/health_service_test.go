package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/internal/shared/testutil"
)

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	store := session.NewStore(time.Hour)
	store.Create()
	store.Create()

	hs := NewHealthService("1.2.0", store, "", logger)
	resp := hs.HealthCheck(context.Background())

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.0", resp.Version)
	assert.Equal(t, 2, resp.Sessions)
	assert.Positive(t, resp.Goroutines)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	t.Run("ready with writable reports dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports")
		hs := NewHealthService("1.2.0", session.NewStore(time.Hour), dir, logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "ready", status.Status)
		assert.DirExists(t, dir)
	})

	t.Run("not ready without store", func(t *testing.T) {
		hs := NewHealthService("1.2.0", nil, "", logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Status)
		assert.Equal(t, "not_ready", status.Services["sessions"].Status)
	})

	t.Run("not ready when reports path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "reports")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		hs := NewHealthService("1.2.0", session.NewStore(time.Hour), file, logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Services["reports"].Status)
	})
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthServiceWithBuildInfo("1.2.0", "2025-01-01", "abc123", nil, "", nil)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	info := hs.Version()
	assert.Equal(t, "1.2.0", info["version"])
	assert.Equal(t, "abc123", info["build_id"])
	assert.Equal(t, "2025-01-01", info["build_time"])
}
