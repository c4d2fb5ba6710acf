// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/ewhitmore/fundboard/internal/domain/model"
)

// SeriesDependencies defines the interface for series listing.
type SeriesDependencies interface {
	Series(ctx context.Context) ([]model.DerivedMetrics, error)
}

// SeriesHandler handles derived-series requests.
type SeriesHandler struct {
	deps SeriesDependencies
}

// NewSeriesHandler creates a new series handler.
func NewSeriesHandler(deps SeriesDependencies) *SeriesHandler {
	return &SeriesHandler{deps: deps}
}

// HandleGetSeries handles GET /series?from=YYYY&to=YYYY requests.
// Both filters are optional and inclusive.
func (h *SeriesHandler) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_series"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	from, ok := yearParam(r, "from", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	to, ok := yearParam(r, "to", 1<<31-1)
	if !ok || to < from {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	series, err := h.deps.Series(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	filtered := make([]model.DerivedMetrics, 0, len(series))
	for _, m := range series {
		if m.Year >= from && m.Year <= to {
			filtered = append(filtered, m)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// yearParam parses an optional integer query parameter.
func yearParam(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// YearDependencies defines the interface for single-year lookups.
type YearDependencies interface {
	Record(ctx context.Context, year int) (model.DerivedMetrics, error)
}

// YearHandler handles single-year requests.
type YearHandler struct {
	deps YearDependencies
}

// NewYearHandler creates a new single-year handler.
func NewYearHandler(deps YearDependencies) *YearHandler {
	return &YearHandler{deps: deps}
}

// HandleGetYear handles GET /series/{year} requests.
func (h *YearHandler) HandleGetYear(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_series_year"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/series/")
	year, err := strconv.Atoi(path)
	if err != nil || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rec, err := h.deps.Record(r.Context(), year)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
