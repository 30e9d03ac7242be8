package http

import (
	"context"

	"github.com/swarnavabiswas0/Feedback/internal/services"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	apiv1 "github.com/swarnavabiswas0/Feedback/pkg/contracts/api/v1"
)

// SessionStore holds the sessions served by the API
type SessionStore interface {
	Create() (*session.Session, int)
	Get(id string) (*session.Session, error)
	Delete(id string) error
	Len() int
}

// AnalyzerService runs the survey analysis pipeline
type AnalyzerService interface {
	Analyze(ctx context.Context, sess *session.Session, in services.AnalyzeInput) (*services.AnalyzeResult, error)
}

// GeneratorService runs the mock feedback pipeline
type GeneratorService interface {
	Generate(ctx context.Context, sess *session.Session, in services.GenerateInput) (*services.GenerateResult, error)
}

// HealthServiceInterface defines the health checks served by HealthHandler
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) apiv1.HealthResponse
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
