// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/ewhitmore/fundboard/internal/domain/model"
)

// NarrativeDependencies defines the interface for narrative reads.
type NarrativeDependencies interface {
	Narrative(ctx context.Context) (model.Narrative, error)
}

// NarrativeHandler handles narrative requests.
type NarrativeHandler struct {
	deps NarrativeDependencies
}

// NewNarrativeHandler creates a new narrative handler.
func NewNarrativeHandler(deps NarrativeDependencies) *NarrativeHandler {
	return &NarrativeHandler{deps: deps}
}

// HandleGetNarrative handles GET /narrative requests.
func (h *NarrativeHandler) HandleGetNarrative(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_narrative"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	narrative, err := h.deps.Narrative(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, narrative)
}
