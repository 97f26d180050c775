package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"journal-service/internal/journal/models"
	"journal-service/internal/journal/service"
	jwttoken "journal-service/internal/jwt_token"
	"journal-service/internal/platform/metrics"
	"journal-service/internal/platform/middleware"
	id "journal-service/pkg/domain"
	dErrors "journal-service/pkg/domain-errors"
	"journal-service/pkg/platform/httputil"
)

// maxDocumentBytes bounds a posted Crossref work document.
const maxDocumentBytes = 4 << 20

// HeaderOutcome reports how a reconcile resolved.
const HeaderOutcome = "X-Journal-Outcome"

// Service defines the interface for journal operations.
type Service interface {
	ReconcileDocument(ctx context.Context, document []byte) (*service.Outcome, error)
	ReconcileDOI(ctx context.Context, doi string) (*service.Outcome, error)
	Get(ctx context.Context, journalID id.JournalID) (*models.Journal, error)
	FindOne(ctx context.Context, attr models.Attribute, value string) (*models.Journal, error)
}

// Handler handles journal endpoints.
type Handler struct {
	logger       *slog.Logger
	journals     Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	timeout      time.Duration
}

// New creates a journal Handler. A nil jwtValidator leaves write endpoints
// open.
func New(
	journals Service,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		journals:     journals,
		metrics:      metrics,
		jwtValidator: jwtValidator,
		timeout:      30 * time.Second,
	}
}

// Register mounts the journal routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/journals", func(jr chi.Router) {
		jr.Use(middleware.Recovery(h.logger))
		jr.Use(middleware.RequestID)
		jr.Use(middleware.Logger(h.logger))
		jr.Use(middleware.Timeout(h.timeout))
		jr.Use(middleware.ContentTypeJSON)
		jr.Use(middleware.LatencyMiddleware(h.metrics))

		jr.Get("/", h.handleFind)
		jr.Get("/{id}", h.handleGet)

		jr.Group(func(wr chi.Router) {
			wr.Use(middleware.RequireAuth(h.jwtValidator, h.logger, jwttoken.ScopeJournalsWrite))
			wr.Post("/", h.handleReconcile)
			wr.Post("/doi", h.handleReconcileDOI)
		})
	})
}

// handleReconcile reconciles a raw Crossref work document.
func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	document, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read crossref document",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body could not be read"))
		return
	}

	outcome, err := h.journals.ReconcileDocument(ctx, document)
	h.writeOutcome(ctx, w, outcome, err)
}

// handleReconcileDOI fetches a work from Crossref and reconciles it.
func (h *Handler) handleReconcileDOI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReconcileDOIRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid reconcile doi request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.journals.ReconcileDOI(ctx, req.DOI)
	h.writeOutcome(ctx, w, outcome, err)
}

func (h *Handler) writeOutcome(ctx context.Context, w http.ResponseWriter, outcome *service.Outcome, err error) {
	if err != nil {
		h.writeServiceError(ctx, w, "failed to reconcile journal", err)
		return
	}
	w.Header().Set(HeaderOutcome, string(outcome.Status))
	if !outcome.Resolved() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInsufficientData, service.InsufficientDataMessage))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome.Journal)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	journalID, err := id.ParseJournalID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	journal, err := h.journals.Get(ctx, journalID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load journal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, journal)
}

// handleFind looks a journal up by exactly one of ?issn= or ?name=.
func (h *Handler) handleFind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	issn := strings.TrimSpace(query.Get("issn"))
	name := query.Get("name")

	var (
		attr  models.Attribute
		value string
	)
	switch {
	case issn != "" && name != "":
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "specify either issn or name, not both"))
		return
	case issn != "":
		attr, value = models.AttributeISSNs, issn
	case name != "":
		attr, value = models.AttributeName, name
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "issn or name query parameter is required"))
		return
	}

	journal, err := h.journals.FindOne(ctx, attr, value)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to find journal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, journal)
}

// writeServiceError logs at a level matching the response class and writes
// the coded error.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		err = dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
	status := httputil.StatusFor(dErrors.CodeOf(err))
	args := []any{
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}
