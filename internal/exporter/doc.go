// Package exporter writes synthetic feedback records as spreadsheets.
//
// SpreadsheetWriter builds the in-memory .xlsx workbook offered for download.
// CSVWriter writes the same rows to a CSV file with a UTF-8 BOM so Excel
// recognizes the encoding.
//
// Both share one column layout:
//
//	Timestamp | Email | Name | BWU Student Code | <question 1> ... <question n>
package exporter
