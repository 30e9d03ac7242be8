package config

// Application constants
const (
	AppName = "Event Feedback Reporter"

	// Download MIME types
	MIMETypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypePDF  = "application/pdf"

	// Fixed download names
	AnalysisReportBaseName = "Feedback_Analysis_Report"
	MockFeedbackSuffix     = "_feedback"

	// Event dates are entered day-month-year
	EventDateLayout = "2-1-2006"
	EventDateHint   = "DD-MM-YYYY"
)
