package http

import (
	"log/slog"
	"net/http"
)

// handleDashboard serves the derived summary plus the upcoming-payments
// list, cached between mutations.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if view, ok := s.dashCache.Get(dashboardCacheKey); ok {
		writeJSON(w, http.StatusOK, view)
		return
	}

	summary, upcoming, err := s.service.Dashboard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive dashboard", "error", err)
		writeServiceError(w, err)
		return
	}

	view := newDashboardView(summary, upcoming)
	s.dashCache.Set(dashboardCacheKey, view)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	totals, err := s.service.CategoryBreakdown(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive category breakdown", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCategoryAmountViews(totals))
}

// handleReset clears all stored data.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ResetData(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to reset data", "error", err)
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
