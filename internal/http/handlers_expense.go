package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list expenses", "error", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newExpenseViews(expenses))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expense, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.service.AddExpense(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusCreated, newExpenseView(created))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expense, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expense.ID = chi.URLParam(r, "id")

	updated, err := s.service.UpdateExpense(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	writeJSON(w, http.StatusOK, newExpenseView(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
