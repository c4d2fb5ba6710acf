// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ewhitmore/fundboard/internal/adapters/export"
	"github.com/ewhitmore/fundboard/internal/adapters/repository"
	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the current analysis snapshot.
	Series(ctx context.Context) ([]model.DerivedMetrics, error)
	Record(ctx context.Context, year int) (model.DerivedMetrics, error)
	Funding(ctx context.Context) ([]model.FundingRecord, error)
	Summary(ctx context.Context) (map[types.Period]model.PeriodSummary, error)
	Narrative(ctx context.Context) (model.Narrative, error)

	// Refresh re-fetches the dataset and republishes the snapshot.
	Refresh(ctx context.Context) error

	// Export writes the current snapshot as a CSV bundle.
	Export(ctx context.Context) (export.Manifest, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	seriesHandler    *SeriesHandler
	yearHandler      *YearHandler
	summaryHandler   *SummaryHandler
	narrativeHandler *NarrativeHandler
	fundingHandler   *FundingHandler
	refreshHandler   *RefreshHandler
	exportHandler    *ExportHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		seriesHandler:    NewSeriesHandler(deps),
		yearHandler:      NewYearHandler(deps),
		summaryHandler:   NewSummaryHandler(deps),
		narrativeHandler: NewNarrativeHandler(deps),
		fundingHandler:   NewFundingHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		exportHandler:    NewExportHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/narrative", MetricsMiddleware(s.narrativeHandler.HandleGetNarrative, "narrative"))
	mux.HandleFunc("/funding", MetricsMiddleware(s.fundingHandler.HandleGetFunding, "funding"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
	mux.HandleFunc("/export", MetricsMiddleware(s.exportHandler.HandlePostExport, "export"))
	mux.HandleFunc("/series", MetricsMiddleware(s.seriesHandler.HandleGetSeries, "series"))
	mux.HandleFunc("/series/", MetricsMiddleware(s.yearHandler.HandleGetYear, "series_year"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates snapshot-store errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrYearNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, repository.ErrEmptyStore):
		writeError(w, http.StatusServiceUnavailable, "not_ready", WrapKind(op, ErrNotReady, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
