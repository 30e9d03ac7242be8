package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnavabiswas0/Feedback/internal/config"
	apperrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/files"
	"github.com/swarnavabiswas0/Feedback/internal/shared/testutil"
)

func writeSurvey(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "responses.csv")
	data := testutil.CSVBytes(t, testutil.SurveyHeaders, testutil.SurveyRows)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o, err := parseFlags([]string{"-in", "a.csv"}, "/reports")
		require.NoError(t, err)
		assert.Equal(t, "a.csv", o.in)
		assert.Equal(t, "/reports", o.out)
		assert.Empty(t, o.format)
		assert.False(t, o.charts)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := parseFlags([]string{"-format", "pdf"}, "/reports")
		assert.EqualError(t, err, "-in is required")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseFlags([]string{"-in", "a.csv", "-verbose"}, "/reports")
		assert.Error(t, err)
	})
}

func TestRun_WritesReportAndCharts(t *testing.T) {
	dir := t.TempDir()
	in := writeSurvey(t, dir)
	out := filepath.Join(dir, "out")
	logger, logs := testutil.NewTestLogger(t)

	var stdout bytes.Buffer
	err := run(context.Background(), config.Default(), logger,
		[]string{"-in", in, "-out", out, "-format", "pdf", "-charts"}, config.NewPaths(dir), &stdout)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "Feedback_Analysis_Report.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	pngs, err := filepath.Glob(filepath.Join(out, "charts", "*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 5)

	assert.Contains(t, stdout.String(), "Analyzed 4 responses (1 overall ratings counted as 0)")
	assert.Contains(t, stdout.String(), "Feedback_Analysis_Report.pdf")
	testutil.AssertNoErrors(t, logs)
}

func TestRun_DefaultFormatFromConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeSurvey(t, dir)
	paths := config.NewPaths(dir)
	logger, _ := testutil.NewTestLogger(t)

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), config.Default(), logger,
		[]string{"-in", in}, paths, &stdout))

	assert.FileExists(t, paths.GetReportPath("Feedback_Analysis_Report.docx"))
	assert.NoDirExists(t, filepath.Join(paths.ReportsDir, "charts"))
}

func TestRun_DirectoryInputUsesNewestExport(t *testing.T) {
	dir := t.TempDir()
	exports := filepath.Join(dir, "exports")
	require.NoError(t, os.Mkdir(exports, 0755))

	old := filepath.Join(exports, "old.csv")
	require.NoError(t, os.WriteFile(old, []byte("not,a,survey\n"), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	writeSurvey(t, exports)

	logger, logs := testutil.NewTestLogger(t)
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), config.Default(), logger,
		[]string{"-in", exports, "-out", filepath.Join(dir, "out")}, config.NewPaths(dir), &stdout))

	assert.FileExists(t, filepath.Join(dir, "out", "Feedback_Analysis_Report.docx"))
	record, ok := logs.Find("Starting feedback analysis")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(exports, "responses.csv"), record.Attrs["input_file"])
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	logger, _ := testutil.NewTestLogger(t)

	t.Run("missing input file", func(t *testing.T) {
		err := run(context.Background(), config.Default(), logger,
			[]string{"-in", filepath.Join(dir, "absent.csv")}, config.NewPaths(dir), &bytes.Buffer{})
		assert.ErrorContains(t, err, "cannot open input")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "responses.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		err := run(context.Background(), config.Default(), logger,
			[]string{"-in", path}, config.NewPaths(dir), &bytes.Buffer{})
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeUnsupported, appErr.Type)
	})

	t.Run("directory without exports", func(t *testing.T) {
		empty := filepath.Join(dir, "empty")
		require.NoError(t, os.Mkdir(empty, 0755))

		err := run(context.Background(), config.Default(), logger,
			[]string{"-in", empty}, config.NewPaths(dir), &bytes.Buffer{})
		assert.ErrorIs(t, err, files.ErrNoSurveyFiles)
	})

	t.Run("unsupported report format", func(t *testing.T) {
		err := run(context.Background(), config.Default(), logger,
			[]string{"-in", writeSurvey(t, dir), "-format", "odt"}, config.NewPaths(dir), &bytes.Buffer{})
		assert.Error(t, err)
		assert.NoFileExists(t, filepath.Join(dir, "Feedback_Analysis_Report.odt"))
	})
}
