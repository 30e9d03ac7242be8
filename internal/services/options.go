package services

import (
	"log/slog"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	"github.com/swarnavabiswas0/Feedback/internal/report"
)

// Options are the collaborators shared by both pipeline services. Nil fields
// get working defaults.
type Options struct {
	Renderer      *charts.Renderer
	Assembler     *report.Assembler
	Tracer        *PipelineTracer
	Logger        *slog.Logger
	DefaultFormat report.Format
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Renderer == nil {
		o.Renderer = charts.NewRenderer(6, 4)
	}
	if o.Assembler == nil {
		o.Assembler = report.NewAssembler(o.Logger)
	}
	if o.Tracer == nil {
		o.Tracer = NewPipelineTracer(nil, nil)
	}
	if o.DefaultFormat == "" {
		o.DefaultFormat = report.FormatDOCX
	}
	return o
}

// resolveFormat parses a requested format, falling back to the default when empty
func (o Options) resolveFormat(requested string) (report.Format, error) {
	if requested == "" {
		return o.DefaultFormat, nil
	}
	return report.ParseFormat(requested)
}

func displayOrDiscard(d charts.Display) charts.Display {
	if d == nil {
		return charts.Discard
	}
	return d
}
