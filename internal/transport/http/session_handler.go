package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/swarnavabiswas0/Feedback/internal/errors"
	"github.com/swarnavabiswas0/Feedback/internal/infrastructure"
	"github.com/swarnavabiswas0/Feedback/internal/middleware"
	"github.com/swarnavabiswas0/Feedback/internal/session"
	apiv1 "github.com/swarnavabiswas0/Feedback/pkg/contracts/api/v1"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the session loaded by SessionCtx
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	return sess, ok
}

// SessionHandler manages sessions and the downloads they hold
type SessionHandler struct {
	store        SessionStore
	pipelines    *PipelineHandler
	metrics      *infrastructure.PipelineMetrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSessionHandler creates a session handler. pipelines may be nil, in which
// case only session and download routes are mounted.
func NewSessionHandler(store SessionStore, pipelines *PipelineHandler, metrics *infrastructure.PipelineMetrics, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SessionHandler {
	return &SessionHandler{
		store:        store,
		pipelines:    pipelines,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "session_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the session routes, mounted under /api/sessions
func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	r.Route("/{sessionID}", func(r chi.Router) {
		r.Use(h.SessionCtx)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)

		if h.pipelines != nil {
			r.Post("/analyze", h.pipelines.Analyze)
			r.Post("/generate", h.pipelines.Generate)
		}

		r.Get("/downloads", h.ListDownloads)
		r.Get("/downloads/{kind}", h.Download)
	})

	return r
}

// SessionCtx loads the session named in the URL into the request context
func (h *SessionHandler) SessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		sess, err := h.store.Get(id)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				h.errorHandler.HandleError(w, r, apierrors.ErrSessionNotFound)
				return
			}
			h.errorHandler.HandleError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, swept := h.store.Create()
	h.metrics.RecordSessionChange(r.Context(), int64(1-swept))

	h.logger.InfoContext(r.Context(), "session created",
		slog.String("session_id", sess.ID),
		slog.String("request_id", middleware.GetRequestID(r.Context())))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sessionResponse(sess))
}

// Get handles GET /api/sessions/{sessionID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	render.JSON(w, r, sessionResponse(sess))
}

// Delete handles DELETE /api/sessions/{sessionID}. Buffers are released and the
// ID stops resolving.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := h.store.Delete(sess.ID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrSessionNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.metrics.RecordSessionChange(r.Context(), -1)

	h.logger.InfoContext(r.Context(), "session cleared", slog.String("session_id", sess.ID))
	w.WriteHeader(http.StatusNoContent)
}

// ListDownloads handles GET /api/sessions/{sessionID}/downloads
func (h *SessionHandler) ListDownloads(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"session_id": sess.ID,
		"downloads":  downloadInfos(sess.ID, sess.Artifacts()),
	})
}

// Download handles GET /api/sessions/{sessionID}/downloads/{kind}
func (h *SessionHandler) Download(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	kind := session.Kind(chi.URLParam(r, "kind"))
	if kind != session.KindReport && kind != session.KindSpreadsheet {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{{
			Field:   "kind",
			Message: fmt.Sprintf("kind must be %s or %s", session.KindReport, session.KindSpreadsheet),
		}}))
		return
	}

	artifact, err := sess.Artifact(kind)
	if err != nil {
		if errors.Is(err, session.ErrNoOutputs) {
			h.errorHandler.HandleError(w, r, apierrors.ErrNoDownload)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "serving download",
		slog.String("session_id", sess.ID),
		slog.String("file_name", artifact.FileName),
		slog.Int("size", artifact.Size()))

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName}))
	// Last-Modified has one second resolution and two runs can land in the same
	// second, so only the per-run ETag drives conditional requests.
	w.Header().Set("ETag", artifact.ETag(sess.ID))
	w.Header().Set("Last-Modified", artifact.ModTime.UTC().Format(http.TimeFormat))
	http.ServeContent(w, r, artifact.FileName, time.Time{}, bytes.NewReader(artifact.Data))
}

func sessionResponse(sess *session.Session) apiv1.SessionResponse {
	resp := apiv1.SessionResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt.UTC().Format(time.RFC3339),
		Downloads: downloadInfos(sess.ID, sess.Artifacts()),
	}
	if updated := sess.UpdatedAt(); !updated.IsZero() {
		resp.UpdatedAt = updated.UTC().Format(time.RFC3339)
	}
	return resp
}

// DownloadURL returns the API path that streams an artifact
func DownloadURL(sessionID string, kind session.Kind) string {
	return fmt.Sprintf("/api/sessions/%s/downloads/%s", sessionID, kind)
}

func downloadInfos(sessionID string, artifacts []session.Artifact) []apiv1.DownloadInfo {
	out := make([]apiv1.DownloadInfo, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, apiv1.DownloadInfo{
			Kind:        string(a.Kind),
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Size:        a.Size(),
			URL:         DownloadURL(sessionID, a.Kind),
		})
	}
	return out
}
