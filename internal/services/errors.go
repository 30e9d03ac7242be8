package services

import (
	"errors"
	"fmt"

	apperrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/feedback"
	"github.com/swarnavabiswas0/Feedback/internal/mockdata"
	"github.com/swarnavabiswas0/Feedback/internal/report"
)

// ErrNilSession is returned when a run is started without a session
var ErrNilSession = errors.New("session is required")

// classifyLoadError maps loader failures to user-facing application errors
func classifyLoadError(fileName string, err error) *apperrors.AppError {
	switch {
	case errors.Is(err, feedback.ErrUnsupportedFormat):
		return apperrors.NewUnsupportedError("Please upload an .xlsx or .csv file", err).
			WithContext("file_name", fileName)
	case errors.Is(err, feedback.ErrEmptyTable):
		return apperrors.NewUnprocessableError("The uploaded file contains no responses", err).
			WithContext("file_name", fileName)
	default:
		return apperrors.NewParsingError(fmt.Sprintf("Could not read %s", fileName), err).
			WithContext("file_name", fileName)
	}
}

// classifyColumnError maps a missing canonical column to an unprocessable error
func classifyColumnError(err error) *apperrors.AppError {
	if errors.Is(err, feedback.ErrMissingColumn) {
		return apperrors.NewUnprocessableError(
			"The uploaded file has no column matching a required question", err)
	}
	return apperrors.NewParsingError("Could not summarize the uploaded responses", err)
}

// classifyFormatError maps an unknown report format to a validation error
func classifyFormatError(format string, err error) *apperrors.AppError {
	return apperrors.NewAppValidationError(
		fmt.Sprintf("Unsupported report format %q, use docx or pdf", format), err).
		WithContext("format", format)
}

// classifyGenerateError maps generator failures to application errors
func classifyGenerateError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, mockdata.ErrInvalidEventDate):
		return apperrors.NewAppValidationError("Invalid date format, use DD-MM-YYYY", err).
			WithContext("event_date", mockdata.EventDateLayout)
	case errors.Is(err, mockdata.ErrInvalidCount):
		return apperrors.NewAppValidationError("Number of students must be at least 1", err).
			WithContext("count", 0)
	case errors.Is(err, mockdata.ErrTimestampSpaceExhausted):
		return apperrors.NewAppValidationError(
			fmt.Sprintf("Number of students must not exceed %d", mockdata.TimestampSpace), err).
			WithContext("count", mockdata.TimestampSpace)
	default:
		return apperrors.NewAppError(apperrors.ErrTypeStorage, "Could not generate responses", err)
	}
}

func renderingError(what string, err error) *apperrors.AppError {
	if errors.Is(err, report.ErrUnsupportedFormat) {
		return classifyFormatError("", err)
	}
	return apperrors.NewRenderingError("Could not render the "+what, err)
}
