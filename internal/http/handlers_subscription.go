package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := s.service.ListSubscriptions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list subscriptions", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSubscriptionViews(subscriptions))
}

// handleSubscriptionSummary serves the cross-frequency cost rollup.
func (s *Server) handleSubscriptionSummary(w http.ResponseWriter, r *http.Request) {
	overview, err := s.service.SubscriptionOverview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive subscription summary", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSubscriptionSummaryView(overview))
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	subscription, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.service.AddSubscription(r.Context(), subscription)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, newSubscriptionView(created))
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	subscription, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	subscription.ID = chi.URLParam(r, "id")

	updated, err := s.service.UpdateSubscription(r.Context(), subscription)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, newSubscriptionView(updated))
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSubscription(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
