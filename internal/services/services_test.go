package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	apperrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/mockdata"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	"github.com/swarnavabiswas0/Feedback/internal/shared/testutil"
	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sess, _ := session.NewStore(time.Hour).Create()
	return sess
}

func newTestOptions(t *testing.T) (Options, *tracetest.SpanRecorder) {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return Options{
		Logger: logger,
		Tracer: NewPipelineTracer(provider.Tracer(TracerName), nil),
	}, recorder
}

func requireAppError(t *testing.T, err error, want apperrors.ErrorType) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, want, appErr.Type)
	return appErr
}

func spanNames(recorder *tracetest.SpanRecorder) []string {
	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	return names
}

func TestAnalyzerService_Analyze(t *testing.T) {
	opts, recorder := newTestOptions(t)
	svc := NewAnalyzerService(opts)
	sess := newTestSession(t)
	collector := &charts.Collector{}

	data := testutil.CSVBytes(t, testutil.SurveyHeaders, testutil.SurveyRows)
	result, err := svc.Analyze(context.Background(), sess, AnalyzeInput{
		FileName: "responses.csv",
		Reader:   bytes.NewReader(data),
		Display:  collector,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Rows)
	assert.Equal(t, domain.FieldOverallRating, result.Headers[1])
	assert.Len(t, result.Preview, 4)
	assert.Equal(t, 1, result.CoercedZeros)
	require.Len(t, result.Distributions, 5)
	assert.Equal(t, domain.ChartKindPie, result.Distributions[1].Kind)

	previews := collector.Previews()
	require.Len(t, previews, 5)
	for _, p := range previews {
		assert.NotEmpty(t, p.PNG, p.Key)
	}

	report, err := sess.Artifact(session.KindReport)
	require.NoError(t, err)
	assert.Equal(t, "Feedback_Analysis_Report.docx", report.FileName)
	assert.True(t, bytes.HasPrefix(report.Data, []byte("PK")))
	require.Len(t, result.Artifacts, 1)

	assert.Contains(t, spanNames(recorder), "pipeline.analyze")
	assert.Contains(t, spanNames(recorder), "pipeline.analyze.chart")
}

func TestAnalyzerService_AnalyzeXLSXAsPDF(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewAnalyzerService(opts)
	sess := newTestSession(t)

	data := testutil.XLSXBytes(t, testutil.SurveyHeaders, testutil.SurveyRows)
	_, err := svc.Analyze(context.Background(), sess, AnalyzeInput{
		FileName: "Responses.XLSX",
		Reader:   bytes.NewReader(data),
		Format:   "pdf",
	})
	require.NoError(t, err)

	report, err := sess.Artifact(session.KindReport)
	require.NoError(t, err)
	assert.Equal(t, "Feedback_Analysis_Report.pdf", report.FileName)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, bytes.HasPrefix(report.Data, []byte("%PDF")))
}

func TestAnalyzerService_FailuresLeaveSessionUntouched(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewAnalyzerService(opts)

	missing := []string{"Timestamp", "Overall rating", "Objectives met?"}
	tests := []struct {
		name     string
		fileName string
		data     []byte
		format   string
		wantType apperrors.ErrorType
	}{
		{
			name:     "unsupported extension",
			fileName: "responses.json",
			data:     []byte(`{}`),
			wantType: apperrors.ErrTypeUnsupported,
		},
		{
			name:     "header only",
			fileName: "responses.csv",
			data:     testutil.CSVBytes(t, testutil.SurveyHeaders, nil),
			wantType: apperrors.ErrTypeUnprocessable,
		},
		{
			name:     "missing column",
			fileName: "responses.csv",
			data:     testutil.CSVBytes(t, missing, [][]string{{"t", "4", "Yes"}}),
			wantType: apperrors.ErrTypeUnprocessable,
		},
		{
			name:     "unknown format",
			fileName: "responses.csv",
			data:     testutil.CSVBytes(t, testutil.SurveyHeaders, testutil.SurveyRows),
			format:   "odt",
			wantType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession(t)
			previous := session.Artifact{Kind: session.KindReport, FileName: "old.docx", Data: []byte("old")}
			sess.Overwrite(previous)

			_, err := svc.Analyze(context.Background(), sess, AnalyzeInput{
				FileName: tt.fileName,
				Reader:   bytes.NewReader(tt.data),
				Format:   tt.format,
			})
			requireAppError(t, err, tt.wantType)

			kept, err := sess.Artifact(session.KindReport)
			require.NoError(t, err)
			assert.Equal(t, previous, kept)
		})
	}
}

func TestAnalyzerService_DisplayFailureReleasesCharts(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewAnalyzerService(opts)
	sess := newTestSession(t)

	var shown []*charts.Chart
	display := charts.DisplayFunc(func(_ context.Context, c *charts.Chart) error {
		shown = append(shown, c)
		if len(shown) == 2 {
			return stderrors.New("window closed")
		}
		return nil
	})

	data := testutil.CSVBytes(t, testutil.SurveyHeaders, testutil.SurveyRows)
	_, err := svc.Analyze(context.Background(), sess, AnalyzeInput{
		FileName: "responses.csv",
		Reader:   bytes.NewReader(data),
		Display:  display,
	})
	requireAppError(t, err, apperrors.ErrTypeRendering)

	require.Len(t, shown, 2)
	for _, c := range shown {
		assert.True(t, c.Closed())
	}
	assert.False(t, sess.HasOutputs())
}

func TestAnalyzerService_Cancelled(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewAnalyzerService(opts)
	sess := newTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	display := charts.DisplayFunc(func(context.Context, *charts.Chart) error {
		cancel()
		return nil
	})

	data := testutil.CSVBytes(t, testutil.SurveyHeaders, testutil.SurveyRows)
	_, err := svc.Analyze(ctx, sess, AnalyzeInput{
		FileName: "responses.csv",
		Reader:   bytes.NewReader(data),
		Display:  display,
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, sess.HasOutputs())
}

func TestAnalyzerService_NilSession(t *testing.T) {
	svc := NewAnalyzerService(Options{})
	_, err := svc.Analyze(context.Background(), nil, AnalyzeInput{})
	assert.ErrorIs(t, err, ErrNilSession)
}

func newSeededGenerator() *mockdata.Generator {
	return mockdata.NewGenerator(mockdata.WithRand(rand.New(rand.NewPCG(7, 11))))
}

func TestGeneratorService_Generate(t *testing.T) {
	opts, recorder := newTestOptions(t)
	svc := NewGeneratorService(opts, newSeededGenerator())
	sess := newTestSession(t)
	collector := &charts.Collector{}

	result, err := svc.Generate(context.Background(), sess, GenerateInput{
		Count:     3,
		EventName: "TechFest",
		EventDate: "15-08-2024",
		Display:   collector,
	})
	require.NoError(t, err)

	assert.Equal(t, "TechFest", result.Event.Name)
	assert.Equal(t, "15-08-2024", result.Event.DateInput)
	assert.Equal(t, 3, result.Event.Participants)
	assert.Equal(t, time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC), result.Event.Date)
	assert.Len(t, result.Preview, 3)
	assert.Equal(t, mockdata.Questions, result.Questions)

	previews := collector.Previews()
	require.Len(t, previews, len(mockdata.Questions))
	assert.Equal(t, domain.ChartKindHistogram, previews[0].Kind)

	workbook, err := sess.Artifact(session.KindSpreadsheet)
	require.NoError(t, err)
	assert.Equal(t, "TechFest_feedback.xlsx", workbook.FileName)
	assert.True(t, bytes.HasPrefix(workbook.Data, []byte("PK")))

	summary, err := sess.Artifact(session.KindReport)
	require.NoError(t, err)
	assert.Equal(t, "TechFest_feedback.docx", summary.FileName)

	assert.Len(t, result.Artifacts, 2)
	assert.Contains(t, spanNames(recorder), "pipeline.generate.spreadsheet")
}

func TestGeneratorService_PreviewIsCapped(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewGeneratorService(opts, newSeededGenerator())

	result, err := svc.Generate(context.Background(), newTestSession(t), GenerateInput{
		Count:     12,
		EventName: "Expo",
		EventDate: "1-2-2025",
		Format:    "pdf",
	})
	require.NoError(t, err)
	assert.Len(t, result.Preview, PreviewRecords)
	assert.Len(t, result.Records, 12)
	assert.Equal(t, result.Records[:PreviewRecords], result.Preview)
	assert.Equal(t, 12, result.Event.Participants)
}

func TestGeneratorService_Errors(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewGeneratorService(opts, newSeededGenerator())

	tests := []struct {
		name       string
		input      GenerateInput
		wantType   apperrors.ErrorType
		contextKey string
	}{
		{
			name:       "malformed date",
			input:      GenerateInput{Count: 3, EventName: "TechFest", EventDate: "2024-08-15"},
			wantType:   apperrors.ErrTypeValidation,
			contextKey: "event_date",
		},
		{
			name:       "zero count",
			input:      GenerateInput{Count: 0, EventName: "TechFest", EventDate: "15-08-2024"},
			wantType:   apperrors.ErrTypeValidation,
			contextKey: "count",
		},
		{
			name:       "count beyond timestamp window",
			input:      GenerateInput{Count: mockdata.TimestampSpace + 1, EventName: "TechFest", EventDate: "15-08-2024"},
			wantType:   apperrors.ErrTypeValidation,
			contextKey: "count",
		},
		{
			name:       "blank event name",
			input:      GenerateInput{Count: 3, EventName: "  ", EventDate: "15-08-2024"},
			wantType:   apperrors.ErrTypeValidation,
			contextKey: "event_name",
		},
		{
			name:       "unknown format",
			input:      GenerateInput{Count: 3, EventName: "TechFest", EventDate: "15-08-2024", Format: "rtf"},
			wantType:   apperrors.ErrTypeValidation,
			contextKey: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession(t)
			_, err := svc.Generate(context.Background(), sess, tt.input)

			appErr := requireAppError(t, err, tt.wantType)
			assert.Contains(t, appErr.Context, tt.contextKey)
			assert.False(t, sess.HasOutputs())
		})
	}
}

func TestGeneratorService_SecondRunReplacesOutputs(t *testing.T) {
	opts, _ := newTestOptions(t)
	svc := NewGeneratorService(opts, newSeededGenerator())
	sess := newTestSession(t)

	_, err := svc.Generate(context.Background(), sess, GenerateInput{Count: 2, EventName: "First", EventDate: "01-01-2025"})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), sess, GenerateInput{Count: 2, EventName: "Second", EventDate: "01-01-2025", Format: "pdf"})
	require.NoError(t, err)

	workbook, err := sess.Artifact(session.KindSpreadsheet)
	require.NoError(t, err)
	assert.Equal(t, "Second_feedback.xlsx", workbook.FileName)

	summary, err := sess.Artifact(session.KindReport)
	require.NoError(t, err)
	assert.Equal(t, "Second_feedback.pdf", summary.FileName)
}

func TestAnalyzeAfterGenerateReplacesSpreadsheet(t *testing.T) {
	opts, _ := newTestOptions(t)
	sess := newTestSession(t)

	_, err := NewGeneratorService(opts, newSeededGenerator()).Generate(context.Background(), sess,
		GenerateInput{Count: 2, EventName: "Tech Fest", EventDate: "01-01-2025"})
	require.NoError(t, err)
	require.Len(t, sess.Artifacts(), 2)

	data := testutil.CSVBytes(t, testutil.SurveyHeaders, testutil.SurveyRows)
	_, err = NewAnalyzerService(opts).Analyze(context.Background(), sess, AnalyzeInput{
		FileName: "responses.csv",
		Reader:   bytes.NewReader(data),
	})
	require.NoError(t, err)

	// a session holds the outputs of its latest run only
	_, err = sess.Artifact(session.KindSpreadsheet)
	assert.ErrorIs(t, err, session.ErrNoOutputs)
	report, err := sess.Artifact(session.KindReport)
	require.NoError(t, err)
	assert.Equal(t, "Feedback_Analysis_Report.docx", report.FileName)
}

func TestFileBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TechFest", "TechFest"},
		{"  Annual Meet 2025 ", "Annual Meet 2025"},
		{"../etc/passwd", "_etc_passwd"},
		{`a\b:c`, "a_b_c"},
		{"...", "event"},
		{"", "event"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileBase(tt.in), tt.in)
	}
}
