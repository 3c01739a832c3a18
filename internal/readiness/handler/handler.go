// Package handler is the thin HTTP layer over the query service. It shapes
// requests and responses and delegates everything else.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sovindex/internal/platform/middleware"
	"sovindex/internal/readiness/models"
	"sovindex/internal/readiness/service"
	"sovindex/internal/scoring"
	"sovindex/pkg/apierror"
)

// Service defines the query operations the handler depends on.
type Service interface {
	ListCountries(ctx context.Context) ([]models.CountrySummary, error)
	GetCountry(ctx context.Context, isoCode string) (*service.CountryDetail, error)
	Compare(ctx context.Context, isoCodes []string) ([]models.CountrySummary, error)
	Methodology(ctx context.Context) scoring.MethodologyDoc
}

// Handler serves the readiness query API.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a readiness Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: svc}
}

// Register mounts the query routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Get("/countries", h.handleListCountries)
	r.Get("/country/{iso_code}", h.handleGetCountry)
	r.Get("/compare", h.handleCompare)
	r.Get("/methodology", h.handleMethodology)
}

// handleRoot keeps hitting / informative instead of a 404.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "SovAI Index API",
		"try": []string{
			"/health",
			"/countries",
			"/country/EU",
			"/compare?iso=EU&iso=IN",
			"/methodology",
			"/dashboard",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleListCountries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListCountries(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, summaries)
}

func (h *Handler) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	isoCode := chi.URLParam(r, "iso_code")
	detail, err := h.service.GetCountry(r.Context(), isoCode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, detail)
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	codes := r.URL.Query()["iso"]
	summaries, err := h.service.Compare(r.Context(), codes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, summaries)
}

func (h *Handler) handleMethodology(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.service.Methodology(r.Context()))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode response",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !apierror.Is(err, apierror.CodeNotFound) {
		h.logger.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	apierror.WriteJSON(w, err)
}
