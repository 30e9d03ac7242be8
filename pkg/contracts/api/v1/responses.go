package api

import (
	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// SessionResponse describes a session
type SessionResponse struct {
	ID        string         `json:"id"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Downloads []DownloadInfo `json:"downloads"`
}

// DownloadInfo describes one buffer held by a session
type DownloadInfo struct {
	Kind        string `json:"kind"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	URL         string `json:"url"`
}

// ChartPreview is an inline rendering of a chart for immediate display
type ChartPreview struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Kind  string `json:"kind"`
	PNG   string `json:"png_base64"`
}

// AnalyzeResponse is returned after an uploaded file has been analyzed
type AnalyzeResponse struct {
	SessionID     string                `json:"session_id"`
	Rows          int                   `json:"rows"`
	Headers       []string              `json:"headers"`
	Preview       [][]string            `json:"preview"`
	CoercedZeros  int                   `json:"coerced_zeros"`
	Distributions []domain.Distribution `json:"distributions"`
	Charts        []ChartPreview        `json:"charts"`
	Downloads     []DownloadInfo        `json:"downloads"`
}

// GenerateResponse is returned after a mock dataset has been generated
type GenerateResponse struct {
	SessionID string                 `json:"session_id"`
	Event     domain.EventInfo       `json:"event"`
	Questions []string               `json:"questions"`
	Preview   []domain.StudentRecord `json:"preview"`
	Charts    []ChartPreview         `json:"charts"`
	Downloads []DownloadInfo         `json:"downloads"`
}

// HealthResponse reports service status
type HealthResponse struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	Sessions       int     `json:"sessions"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Goroutines     int     `json:"goroutines"`
	HeapAllocBytes uint64  `json:"heap_alloc_bytes"`
}
