package exporter

import (
	"strconv"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// Fixed leading columns of a feedback export
const (
	ColumnTimestamp = "Timestamp"
	ColumnEmail     = "Email"
	ColumnName      = "Name"
	ColumnCode      = "BWU Student Code"
)

// FeedbackHeaders returns the export header row for questions
func FeedbackHeaders(questions []string) []string {
	headers := make([]string, 0, 4+len(questions))
	headers = append(headers, ColumnTimestamp, ColumnEmail, ColumnName, ColumnCode)
	return append(headers, questions...)
}

// formatInt formats a rating for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// recordStrings renders a record as CSV cells
func recordStrings(r domain.StudentRecord) []string {
	row := make([]string, 0, 4+len(r.Ratings))
	row = append(row, r.FormattedTimestamp(), r.Email, r.Name, r.Code)
	for _, v := range r.Ratings {
		row = append(row, formatInt(v))
	}
	return row
}

// recordValues renders a record as typed spreadsheet cells; ratings stay numeric
func recordValues(r domain.StudentRecord) []interface{} {
	row := make([]interface{}, 0, 4+len(r.Ratings))
	row = append(row, r.FormattedTimestamp(), r.Email, r.Name, r.Code)
	for _, v := range r.Ratings {
		row = append(row, v)
	}
	return row
}
