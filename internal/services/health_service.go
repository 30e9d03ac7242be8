package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
	apiv1 "github.com/swarnavabiswas0/Feedback/pkg/contracts/api/v1"
)

// SessionCounter reports how many sessions are live
type SessionCounter interface {
	Len() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	sessions  SessionCounter
	// reportsDir is checked for writability when set
	reportsDir string
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus represents the readiness and liveness responses
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual component health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. reportsDir may be empty for the web
// service, which keeps every output in memory.
func NewHealthService(version string, sessions SessionCounter, reportsDir string, logger *slog.Logger) *HealthService {
	return NewHealthServiceWithBuildInfo(version, "", "", sessions, reportsDir, logger)
}

// NewHealthServiceWithBuildInfo creates a health service with build information
func NewHealthServiceWithBuildInfo(version, buildTime, buildID string, sessions SessionCounter, reportsDir string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("build_id", buildID))

	return &HealthService{
		version:    version,
		buildTime:  buildTime,
		buildID:    buildID,
		sessions:   sessions,
		reportsDir: reportsDir,
		startTime:  time.Now(),
		logger:     logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns the status served by the health endpoint
func (hs *HealthService) HealthCheck(ctx context.Context) apiv1.HealthResponse {
	stats := infrastructure.CollectRuntimeStats(hs.startTime)

	resp := apiv1.HealthResponse{
		Status:         "ok",
		Version:        hs.version,
		UptimeSeconds:  stats.UptimeSeconds,
		Goroutines:     stats.Goroutines,
		HeapAllocBytes: stats.HeapAllocBytes,
	}
	if hs.sessions != nil {
		resp.Sessions = hs.sessions.Len()
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", resp.Status),
		slog.Int("sessions", resp.Sessions))

	return resp
}

// ReadinessCheck reports whether the components a run depends on are usable
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"sessions": hs.checkSessionHealth(),
			"reports":  hs.checkReportsHealth(),
		},
	}

	for _, sh := range status.Services {
		if sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready", slog.Any("services", status.Services))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	stats := infrastructure.CollectRuntimeStats(hs.startTime)
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":           stats.UptimeSeconds,
			"go_version":       runtime.Version(),
			"goroutines":       stats.Goroutines,
			"heap_alloc_bytes": stats.HeapAllocBytes,
			"num_gc":           stats.NumGC,
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.buildID != "" {
		result["build_id"] = hs.buildID
	}

	return result
}

func (hs *HealthService) checkSessionHealth() ServiceHealth {
	if hs.sessions == nil {
		return ServiceHealth{Status: "not_ready", Message: "session store not initialized"}
	}
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d sessions registered", hs.sessions.Len()),
	}
}

func (hs *HealthService) checkReportsHealth() ServiceHealth {
	if hs.reportsDir == "" {
		return ServiceHealth{Status: "ready", Message: "outputs kept in memory"}
	}

	if err := os.MkdirAll(hs.reportsDir, 0755); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Cannot write to reports directory: %v", err),
		}
	}
	return ServiceHealth{Status: "ready", Message: "reports directory is writable"}
}
