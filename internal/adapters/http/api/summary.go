// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/ewhitmore/fundboard/internal/domain/model"
	"github.com/ewhitmore/fundboard/internal/domain/types"
)

// SummaryDependencies defines the interface for period-summary reads.
type SummaryDependencies interface {
	Summary(ctx context.Context) (map[types.Period]model.PeriodSummary, error)
}

// SummaryHandler handles period-summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests. Eras are returned as an
// array in chronological order for a stable response shape.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	summary, err := h.deps.Summary(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}

	out := make([]model.PeriodSummary, 0, len(summary))
	for _, period := range types.Periods() {
		if s, ok := summary[period]; ok {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}
