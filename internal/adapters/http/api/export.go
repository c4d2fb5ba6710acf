// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/ewhitmore/fundboard/internal/adapters/export"
)

// ExportDependencies defines the interface for snapshot export.
type ExportDependencies interface {
	Export(ctx context.Context) (export.Manifest, error)
}

// ExportHandler handles CSV bundle export requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandlePostExport handles POST /export requests. Writes the current
// snapshot as a CSV bundle and returns the manifest.
func (h *ExportHandler) HandlePostExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_export"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	manifest, err := h.deps.Export(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}
