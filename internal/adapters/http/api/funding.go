// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/ewhitmore/fundboard/internal/domain/model"
)

// FundingDependencies defines the interface for raw funding reads.
type FundingDependencies interface {
	Funding(ctx context.Context) ([]model.FundingRecord, error)
}

// FundingHandler handles raw funding-record requests.
type FundingHandler struct {
	deps FundingDependencies
}

// NewFundingHandler creates a new funding handler.
func NewFundingHandler(deps FundingDependencies) *FundingHandler {
	return &FundingHandler{deps: deps}
}

// HandleGetFunding handles GET /funding requests.
func (h *FundingHandler) HandleGetFunding(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_funding"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	records, err := h.deps.Funding(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
