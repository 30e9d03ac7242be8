package services

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	"github.com/swarnavabiswas0/Feedback/internal/config"
	apperrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/feedback"
	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
	"github.com/swarnavabiswas0/Feedback/internal/report"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// PreviewRows is the number of normalized rows returned for display
const PreviewRows = 5

// AnalyzeInput is one uploaded survey export
type AnalyzeInput struct {
	FileName string
	Reader   io.Reader
	// Format is docx or pdf; empty selects the service default
	Format  string
	Display charts.Display
}

// AnalyzeResult summarizes a completed analysis run
type AnalyzeResult struct {
	Rows          int
	Headers       []string
	Preview       [][]string
	CoercedZeros  int
	Distributions []domain.Distribution
	Artifacts     []session.Artifact
}

// AnalyzerService runs the survey analysis pipeline
type AnalyzerService struct {
	opts   Options
	logger *slog.Logger
}

// NewAnalyzerService creates the analysis service
func NewAnalyzerService(opts Options) *AnalyzerService {
	opts = opts.withDefaults()
	return &AnalyzerService{
		opts:   opts,
		logger: opts.Logger.With(slog.String("component", "analyzer_service")),
	}
}

// Analyze loads in.Reader, builds the analysis report and stores it in sess.
// sess is left untouched unless the whole run succeeds.
func (s *AnalyzerService) Analyze(ctx context.Context, sess *session.Session, in AnalyzeInput) (result *AnalyzeResult, err error) {
	if sess == nil {
		return nil, ErrNilSession
	}

	ctx, run := s.opts.Tracer.StartRun(ctx, infrastructure.PipelineAnalyze, sess.ID)
	defer func() { run.End(ctx, result.rows(), err) }()

	logger := s.logger.With(
		slog.String("session_id", sess.ID),
		slog.String("file_name", in.FileName))

	format, ferr := s.opts.resolveFormat(in.Format)
	if ferr != nil {
		return nil, classifyFormatError(in.Format, ferr)
	}

	var table *domain.FeedbackTable
	err = run.Stage(ctx, "load", func(ctx context.Context) error {
		raw, lerr := feedback.LoadTable(in.FileName, in.Reader)
		if lerr != nil {
			return classifyLoadError(in.FileName, lerr)
		}
		table = feedback.Normalize(raw)
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "feedback file rejected", slog.String("error", err.Error()))
		return nil, err
	}

	result = &AnalyzeResult{
		Rows:    table.Len(),
		Headers: table.Headers,
		Preview: feedback.Preview(table, PreviewRows),
	}

	err = run.Stage(ctx, "distribute", func(ctx context.Context) error {
		overall, cerr := feedback.Column(table, domain.FieldOverallRating)
		if cerr != nil {
			return classifyColumnError(cerr)
		}
		result.CoercedZeros = feedback.CountUnparsed(overall)

		dists, derr := feedback.Distributions(table)
		if derr != nil {
			return classifyColumnError(derr)
		}
		result.Distributions = dists
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "feedback columns incomplete", slog.String("error", err.Error()))
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	var sections []report.Section
	err = run.Stage(ctx, "chart", func(ctx context.Context) error {
		var cerr error
		sections, cerr = s.renderSections(ctx, run, result.Distributions, displayOrDiscard(in.Display))
		return cerr
	})
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		CloseSections(sections)
		return nil, err
	}

	var artifact session.Artifact
	err = run.Stage(ctx, "assemble", func(ctx context.Context) error {
		data, aerr := s.opts.Assembler.Assemble(report.NewAnalysisDocument(sections), format)
		if aerr != nil {
			return renderingError("analysis report", aerr)
		}
		artifact = reportArtifact(s.opts.Assembler, config.AnalysisReportBaseName, format, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.Overwrite(artifact)
	result.Artifacts = sess.Artifacts()

	logger.InfoContext(ctx, "analysis report generated",
		slog.Int("rows", result.Rows),
		slog.Int("coerced_zeros", result.CoercedZeros),
		slog.String("format", string(format)),
		slog.Int("report_bytes", artifact.Size()))

	return result, nil
}

// renderSections draws one chart per distribution and shows it before it is
// handed to the report. On failure every chart drawn so far is released.
func (s *AnalyzerService) renderSections(ctx context.Context, run *Run, dists []domain.Distribution, display charts.Display) ([]report.Section, error) {
	sections := make([]report.Section, 0, len(dists))
	release := func() { CloseSections(sections) }

	for i, d := range dists {
		chart, err := s.opts.Renderer.Distribution(d)
		if err != nil {
			release()
			return nil, renderingError("chart for "+d.Title, err)
		}
		sections = append(sections, report.Section{
			Title: d.Title,
			Text:  feedback.Sections[i].Text,
			Chart: chart,
		})
		run.Chart(ctx, string(chart.Kind))

		if err := display.Show(ctx, chart); err != nil {
			release()
			if isContextError(err) {
				return nil, err
			}
			return nil, apperrors.NewRenderingError("Could not display chart "+d.Title, err)
		}
	}
	return sections, nil
}

// CloseSections releases the chart of every section
func CloseSections(sections []report.Section) {
	for _, sec := range sections {
		if sec.Chart != nil {
			_ = sec.Chart.Close()
		}
	}
}

func reportArtifact(a *report.Assembler, base string, format report.Format, data []byte) session.Artifact {
	contentType := config.MIMETypeDOCX
	if r, err := a.Renderer(format); err == nil {
		contentType = r.ContentType()
	}
	return session.Artifact{
		Kind:        session.KindReport,
		FileName:    report.FileName(base, format),
		ContentType: contentType,
		Data:        data,
	}
}

func (r *AnalyzeResult) rows() int {
	if r == nil {
		return 0
	}
	return r.Rows
}

// isContextError reports whether err comes from a cancelled or expired context
func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
