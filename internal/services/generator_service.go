package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	"github.com/swarnavabiswas0/Feedback/internal/config"
	apperrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/exporter"
	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
	"github.com/swarnavabiswas0/Feedback/internal/mockdata"
	"github.com/swarnavabiswas0/Feedback/internal/report"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// PreviewRecords is the number of generated records returned for display
const PreviewRecords = 5

// GenerateInput holds the user-entered parameters of a mock run
type GenerateInput struct {
	Count     int
	EventName string
	// EventDate is DD-MM-YYYY as typed by the user
	EventDate string
	Format    string
	Display   charts.Display
}

// GenerateResult summarizes a completed mock run
type GenerateResult struct {
	Event     domain.EventInfo
	Questions []string
	// Records holds every generated response; Preview is its head
	Records   []domain.StudentRecord
	Preview   []domain.StudentRecord
	Artifacts []session.Artifact
}

// GeneratorService runs the mock feedback pipeline
type GeneratorService struct {
	opts        Options
	generator   *mockdata.Generator
	spreadsheet *exporter.SpreadsheetWriter
	logger      *slog.Logger
}

// NewGeneratorService creates the mock feedback service. A nil generator
// uses a randomly seeded one.
func NewGeneratorService(opts Options, generator *mockdata.Generator) *GeneratorService {
	opts = opts.withDefaults()
	if generator == nil {
		generator = mockdata.NewGenerator(mockdata.WithLogger(opts.Logger))
	}
	return &GeneratorService{
		opts:        opts,
		generator:   generator,
		spreadsheet: exporter.NewSpreadsheetWriter(opts.Logger),
		logger:      opts.Logger.With(slog.String("component", "generator_service")),
	}
}

// Generate produces in.Count synthetic responses, their workbook and the
// summary report, and stores both files in sess. sess is left untouched
// unless the whole run succeeds.
func (s *GeneratorService) Generate(ctx context.Context, sess *session.Session, in GenerateInput) (result *GenerateResult, err error) {
	if sess == nil {
		return nil, ErrNilSession
	}

	ctx, run := s.opts.Tracer.StartRun(ctx, infrastructure.PipelineGenerate, sess.ID)
	defer func() { run.End(ctx, result.rows(), err) }()

	eventName := strings.TrimSpace(in.EventName)
	if eventName == "" {
		return nil, apperrors.NewAppValidationError("Event name is required", nil).
			WithContext("event_name", "")
	}

	format, ferr := s.opts.resolveFormat(in.Format)
	if ferr != nil {
		return nil, classifyFormatError(in.Format, ferr)
	}

	eventDate, derr := mockdata.ParseEventDate(in.EventDate)
	if derr != nil {
		return nil, classifyGenerateError(derr)
	}

	logger := s.logger.With(
		slog.String("session_id", sess.ID),
		slog.String("event_name", eventName))

	questions := mockdata.Questions
	var records []domain.StudentRecord
	err = run.Stage(ctx, "generate", func(ctx context.Context) error {
		var gerr error
		records, gerr = s.generator.Generate(ctx, mockdata.Params{
			Count:     in.Count,
			EventDate: eventDate,
			Questions: questions,
		})
		if gerr != nil {
			if isContextError(gerr) {
				return gerr
			}
			return classifyGenerateError(gerr)
		}
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "mock generation rejected", slog.String("error", err.Error()))
		return nil, err
	}

	base := FileBase(eventName) + config.MockFeedbackSuffix

	var workbook session.Artifact
	err = run.Stage(ctx, "spreadsheet", func(ctx context.Context) error {
		data, werr := s.spreadsheet.BuildFeedbackWorkbook(records, questions)
		if werr != nil {
			return apperrors.NewStorageError("Could not build the feedback spreadsheet", werr)
		}
		workbook = session.Artifact{
			Kind:        session.KindSpreadsheet,
			FileName:    base + ".xlsx",
			ContentType: config.MIMETypeXLSX,
			Data:        data,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var sections []report.Section
	err = run.Stage(ctx, "chart", func(ctx context.Context) error {
		var cerr error
		sections, cerr = s.renderHistograms(ctx, run, records, questions, displayOrDiscard(in.Display))
		return cerr
	})
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		CloseSections(sections)
		return nil, err
	}

	event := domain.EventInfo{
		Name:         eventName,
		Date:         eventDate,
		DateInput:    strings.TrimSpace(in.EventDate),
		Participants: len(records),
	}

	var summary session.Artifact
	err = run.Stage(ctx, "assemble", func(ctx context.Context) error {
		doc := report.NewSummaryDocument(report.Metadata{
			EventName:    event.Name,
			DateInput:    event.DateInput,
			Participants: event.Participants,
		}, sections)

		data, aerr := s.opts.Assembler.Assemble(doc, format)
		if aerr != nil {
			return renderingError("event summary", aerr)
		}
		summary = reportArtifact(s.opts.Assembler, base, format, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.Overwrite(workbook, summary)

	preview := records
	if len(preview) > PreviewRecords {
		preview = preview[:PreviewRecords]
	}
	result = &GenerateResult{
		Event:     event,
		Questions: questions,
		Records:   records,
		Preview:   preview,
		Artifacts: sess.Artifacts(),
	}

	logger.InfoContext(ctx, "mock feedback generated",
		slog.Int("participants", event.Participants),
		slog.String("format", string(format)),
		slog.Int("spreadsheet_bytes", workbook.Size()),
		slog.Int("report_bytes", summary.Size()))

	return result, nil
}

// renderHistograms draws one histogram per question, cycling colors by question index
func (s *GeneratorService) renderHistograms(ctx context.Context, run *Run, records []domain.StudentRecord, questions []string, display charts.Display) ([]report.Section, error) {
	sections := make([]report.Section, 0, len(questions))

	for q, question := range questions {
		ratings := make([]int, len(records))
		for i, r := range records {
			ratings[i] = r.Ratings[q]
		}

		chart, err := s.opts.Renderer.Histogram(question, question, ratings, q)
		if err != nil {
			CloseSections(sections)
			return nil, renderingError("histogram for "+question, err)
		}
		sections = append(sections, report.Section{Title: question, Chart: chart})
		run.Chart(ctx, string(chart.Kind))

		if err := display.Show(ctx, chart); err != nil {
			CloseSections(sections)
			if isContextError(err) {
				return nil, err
			}
			return nil, apperrors.NewRenderingError("Could not display chart "+question, err)
		}
	}
	return sections, nil
}

func (r *GenerateResult) rows() int {
	if r == nil {
		return 0
	}
	return r.Event.Participants
}

// FileBase turns an event name into a safe download file name stem.
// Path separators, reserved and control characters become underscores.
func FileBase(eventName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(eventName))

	name = strings.Trim(name, ". ")
	if name == "" {
		return "event"
	}
	return name
}
