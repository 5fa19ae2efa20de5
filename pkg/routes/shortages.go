// Package routes defines the HTTP routes of the fdawatch wrapper API.
package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/pkg/models"
	"github.com/fdawatch/fdawatch/pkg/service/serve"
)

const (
	defaultLimit = 5
	maxLimit     = 100
)

type Shortages struct {
	logger *zap.Logger
	svc    serve.Service
}

func New(r chi.Router, svc serve.Service, logger *zap.Logger) {
	s := &Shortages{
		logger: logger,
		svc:    svc,
	}

	r.Get("/health", s.Health)
	r.Route("/v1/shortages", func(r chi.Router) {
		r.Get("/current", s.Current)
		r.Get("/search", s.Search)
		r.Get("/changes", s.Changes)
	})
}

func (s *Shortages) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]bool{"ok": true})
}

func (s *Shortages) Current(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	records, err := s.svc.Current(r.Context(), limit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	renderResults(w, r, records)
}

func (s *Shortages) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "missing required query parameter 'q'"})
		return
	}
	limit := parseLimit(r)

	records, err := s.svc.Search(r.Context(), query, limit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	renderResults(w, r, records)
}

func (s *Shortages) Changes(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	changeset, err := s.svc.Changes(r.Context(), limit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, changeset)
}

func (s *Shortages) renderError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))

	status := http.StatusInternalServerError
	if errors.Is(err, models.ErrFetchFailed) {
		status = http.StatusBadGateway
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}

// renderResults lists records sorted by identifier so responses are
// reproducible for a given upstream payload.
func renderResults(w http.ResponseWriter, r *http.Request, records models.RecordCollection) {
	results := make([]models.Record, 0, len(records))
	for _, key := range records.Keys() {
		results = append(results, records[key])
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{"results": results})
}

func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
