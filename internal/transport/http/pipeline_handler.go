package http

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
	apierrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/middleware"
	"github.com/swarnavabiswas0/Feedback/internal/services"
	apiv1 "github.com/swarnavabiswas0/Feedback/pkg/contracts/api/v1"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk
const multipartMemory = 8 << 20

// PipelineHandler runs the analysis and mock pipelines for a session
type PipelineHandler struct {
	analyzer       AnalyzerService
	generator      GeneratorService
	validator      *middleware.RequestValidator
	maxUploadBytes int64
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewPipelineHandler creates a pipeline handler. Uploads larger than
// maxUploadBytes are rejected with 413.
func NewPipelineHandler(analyzer AnalyzerService, generator GeneratorService, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PipelineHandler {
	return &PipelineHandler{
		analyzer:       analyzer,
		generator:      generator,
		validator:      middleware.NewRequestValidator(),
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "pipeline_handler")),
		errorHandler:   errorHandler,
	}
}

// Analyze handles POST /api/sessions/{sessionID}/analyze with a multipart
// "file" field and an optional "format" field.
func (h *PipelineHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts := apiv1.AnalyzeOptions{Format: r.FormValue("format")}
	if err := h.validator.ValidateStruct(&opts); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{{
			Field:   "file",
			Message: "A feedback file (.xlsx or .csv) is required",
		}}))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "analyzing upload",
		slog.String("session_id", sess.ID),
		slog.String("file_name", header.Filename),
		slog.Int64("size", header.Size))

	collector := &charts.Collector{}
	result, err := h.analyzer.Analyze(r.Context(), sess, services.AnalyzeInput{
		FileName: header.Filename,
		Reader:   file,
		Format:   opts.Format,
		Display:  collector,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.AnalyzeResponse{
		SessionID:     sess.ID,
		Rows:          result.Rows,
		Headers:       result.Headers,
		Preview:       result.Preview,
		CoercedZeros:  result.CoercedZeros,
		Distributions: result.Distributions,
		Charts:        chartPreviews(collector.Previews()),
		Downloads:     downloadInfos(sess.ID, result.Artifacts),
	})
}

// Generate handles POST /api/sessions/{sessionID}/generate
func (h *PipelineHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	var req apiv1.GenerateRequest
	if err := h.validator.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "generating mock feedback",
		slog.String("session_id", sess.ID),
		slog.String("event_name", req.EventName),
		slog.Int("count", req.Count))

	collector := &charts.Collector{}
	result, err := h.generator.Generate(r.Context(), sess, services.GenerateInput{
		Count:     req.Count,
		EventName: req.EventName,
		EventDate: req.EventDate,
		Format:    req.Format,
		Display:   collector,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, apiv1.GenerateResponse{
		SessionID: sess.ID,
		Event:     result.Event,
		Questions: result.Questions,
		Preview:   result.Preview,
		Charts:    chartPreviews(collector.Previews()),
		Downloads: downloadInfos(sess.ID, result.Artifacts),
	})
}

func chartPreviews(previews []charts.Preview) []apiv1.ChartPreview {
	out := make([]apiv1.ChartPreview, 0, len(previews))
	for _, p := range previews {
		out = append(out, apiv1.ChartPreview{
			Key:   p.Key,
			Title: p.Title,
			Kind:  string(p.Kind),
			PNG:   base64.StdEncoding.EncodeToString(p.PNG),
		})
	}
	return out
}
