package feedback

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

var (
	// ErrUnsupportedFormat is returned for uploads that are neither .csv nor .xlsx
	ErrUnsupportedFormat = errors.New("unsupported feedback file format")
	// ErrEmptyTable is returned when a file has no header row or no responses
	ErrEmptyTable = errors.New("feedback file contains no responses")
	// ErrMissingColumn is returned when a required canonical column is absent
	ErrMissingColumn = errors.New("missing feedback column")
)

// SupportedExtensions lists the file types LoadTable accepts
var SupportedExtensions = []string{".csv", ".xlsx"}

const utf8BOM = "\ufeff"

// LoadTable reads a survey export. The format is chosen by the extension of
// name; the first row is the header row. Trailing blank rows are dropped and
// every row is padded or cut to the header width.
func LoadTable(name string, r io.Reader) (*domain.FeedbackTable, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
	if err != nil {
		return nil, err
	}

	return buildTable(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func buildTable(rows [][]string) (*domain.FeedbackTable, error) {
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) < 2 {
		return nil, ErrEmptyTable
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		copy(cells, row)
		data = append(data, cells)
	}

	return &domain.FeedbackTable{Headers: headers, Rows: data}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Column returns the cells of the first column labelled name
func Column(table *domain.FeedbackTable, name string) ([]string, error) {
	values, ok := table.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return values, nil
}

// Preview returns up to n leading rows of table
func Preview(table *domain.FeedbackTable, n int) [][]string {
	if n > table.Len() {
		n = table.Len()
	}
	if n <= 0 {
		return [][]string{}
	}
	out := make([][]string, n)
	copy(out, table.Rows[:n])
	return out
}
