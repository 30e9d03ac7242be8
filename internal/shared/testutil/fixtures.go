package testutil

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// SurveyHeaders are raw headers as exported by a typical online form
var SurveyHeaders = []string{
	"Timestamp",
	"Overall rating (1-5)",
	"Were the event objectives met?",
	"How well was the event organized?",
	"Interaction and engagement",
	"How would you rate the Logistics?",
	"Any other comments",
}

// SurveyRows are responses matching SurveyHeaders
var SurveyRows = [][]string{
	{"2025-01-02 10:00:00", "3", "Yes", "4", "5", "4", "Great"},
	{"2025-01-02 10:05:00", "x", "No", "3", "4", "5", ""},
	{"2025-01-02 10:09:00", "5", "Yes", "5", "5", "3", "More sessions"},
	{"2025-01-02 10:12:00", "4.7", "Partially", "4", "3", "4", ""},
}

// CSVBytes encodes headers and rows as CSV
func CSVBytes(t *testing.T, headers []string, rows [][]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(headers))
	require.NoError(t, w.WriteAll(rows))
	return buf.Bytes()
}

// XLSXBytes builds a single-sheet workbook holding headers and rows
func XLSXBytes(t *testing.T, headers []string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{headers}, rows...)
	for r, row := range all {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
