package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// SheetName is the worksheet holding the responses
const SheetName = "Sheet1"

// SpreadsheetWriter builds feedback workbooks in memory
type SpreadsheetWriter struct {
	logger *slog.Logger
}

// NewSpreadsheetWriter creates a spreadsheet writer
func NewSpreadsheetWriter(logger *slog.Logger) *SpreadsheetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpreadsheetWriter{logger: logger}
}

// BuildFeedbackWorkbook writes one header row and one row per record to a
// single-sheet workbook and returns the encoded .xlsx bytes.
func (w *SpreadsheetWriter) BuildFeedbackWorkbook(records []domain.StudentRecord, questions []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet writer: %w", err)
	}

	if err := sw.SetColWidth(1, 1, 20); err != nil {
		return nil, err
	}
	if err := sw.SetColWidth(2, 2, 26); err != nil {
		return nil, err
	}

	headers := FeedbackHeaders(questions)
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		if len(r.Ratings) != len(questions) {
			return nil, fmt.Errorf("record %d has %d ratings for %d questions", i+1, len(r.Ratings), len(questions))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, recordValues(r)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	w.logger.Debug("feedback workbook built",
		slog.Int("rows", len(records)),
		slog.Int("columns", len(headers)),
		slog.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}
