package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.service.ListGoals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list goals", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGoalViews(goals))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.service.AddGoal(r.Context(), goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, newGoalView(created))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal.ID = chi.URLParam(r, "id")

	updated, err := s.service.UpdateGoal(r.Context(), goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, newGoalView(updated))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
