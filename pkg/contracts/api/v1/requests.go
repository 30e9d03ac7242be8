// Package api contains the HTTP API contract of the feedback reporter.
// Version v1 represents the current stable API version.
package api

// Report formats accepted by the analyze and generate endpoints
const (
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
)

// MaxGenerateCount is the number of distinct response timestamps available
// to one mock generation run.
const MaxGenerateCount = 288000

// GenerateRequest asks for a synthetic feedback dataset and its summary report
type GenerateRequest struct {
	Count     int    `json:"count" validate:"required,min=1,max=288000"`
	EventName string `json:"event_name" validate:"required,max=200"`
	EventDate string `json:"event_date" validate:"required"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=docx pdf"`
}

// AnalyzeOptions are the optional form fields sent next to an uploaded feedback file
type AnalyzeOptions struct {
	Format string `json:"format,omitempty" validate:"omitempty,oneof=docx pdf"`
}
