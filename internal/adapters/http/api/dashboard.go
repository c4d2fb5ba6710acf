// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// dashboardHandler handles dashboard requests
type dashboardHandler struct{}

// newDashboardHandler creates a new dashboard handler
func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
// Returns an HTML page with JavaScript that fetches /series, /summary and
// /narrative and renders the funding analysis tables.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// http.ServeFileFS requires Go 1.22; serve the same file via http.FS on 1.21.
	f, err := http.FS(dashboardFS).Open("/dashboard.html")
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		http.Error(w, "500 internal server error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "dashboard.html", fi.ModTime(), f)
}
