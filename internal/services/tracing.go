package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
)

// TracerName is the instrumentation scope of pipeline spans
const TracerName = "github.com/swarnavabiswas0/Feedback/pipeline"

// PipelineTracer wraps runs and their stages in spans and records run metrics
type PipelineTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewPipelineTracer creates a tracer. A nil tracer uses the global provider.
func NewPipelineTracer(tracer trace.Tracer, metrics *infrastructure.PipelineMetrics) *PipelineTracer {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	if metrics == nil {
		metrics = infrastructure.NoopPipelineMetrics()
	}
	return &PipelineTracer{tracer: tracer, metrics: metrics}
}

// Run is one traced pipeline run
type Run struct {
	pt       *PipelineTracer
	pipeline string
	start    time.Time
	span     trace.Span
}

// StartRun opens the span covering a whole pipeline run
func (pt *PipelineTracer) StartRun(ctx context.Context, pipeline, sessionID string) (context.Context, *Run) {
	ctx, span := pt.tracer.Start(ctx, "pipeline."+pipeline,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.name", pipeline),
			attribute.String("session.id", sessionID),
		),
	)
	return ctx, &Run{pt: pt, pipeline: pipeline, start: time.Now(), span: span}
}

// Stage runs fn inside a child span named after the stage
func (r *Run) Stage(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	ctx, span := r.pt.tracer.Start(ctx, "pipeline."+r.pipeline+"."+stage,
		trace.WithAttributes(attribute.String("pipeline.stage", stage)))
	defer span.End()

	if err := fn(ctx); err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Chart counts one rendered chart
func (r *Run) Chart(ctx context.Context, kind string) {
	r.pt.metrics.RecordChart(ctx, kind)
}

// End closes the run span and records the run outcome
func (r *Run) End(ctx context.Context, rows int, err error) {
	duration := time.Since(r.start)
	r.span.SetAttributes(
		attribute.Int("pipeline.rows", rows),
		attribute.Float64("pipeline.duration_seconds", duration.Seconds()),
	)
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	} else {
		r.span.SetStatus(codes.Ok, "pipeline completed")
	}
	r.span.End()

	r.pt.metrics.RecordRun(ctx, r.pipeline, duration, rows, err)
}
