package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendsmart/internal/config"
	"spendsmart/internal/services"
	"spendsmart/internal/store/memory"
)

var testNow = time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)

func newTestServer() *Server {
	cfg := &config.Config{
		Port:              "8082",
		DashboardCacheTTL: time.Minute,
	}
	service := services.NewFinanceService(memory.New(), nil).
		WithClock(func() time.Time { return testNow })
	return NewServer(cfg, service)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestCreateAndListExpenses(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount:      "12.50",
		Category:    "Food",
		Date:        "2024-03-10",
		Description: "Groceries",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/expenses = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[expenseView](t, rec)
	if created.ID == "" {
		t.Error("created expense has no id")
	}
	if created.Amount != "12.50" {
		t.Errorf("created amount = %q, want 12.50", created.Amount)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/expenses", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/expenses = %d", rec.Code)
	}
	listed := decodeBody[[]expenseView](t, rec)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("listed = %v", listed)
	}
}

func TestCreateExpenseRejectsBadInput(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name string
		req  expenseRequest
	}{
		{"bad amount", expenseRequest{Amount: "abc", Category: "Food", Date: "2024-03-10", Description: "x"}},
		{"negative amount", expenseRequest{Amount: "-5.00", Category: "Food", Date: "2024-03-10", Description: "x"}},
		{"bad date", expenseRequest{Amount: "5.00", Category: "Food", Date: "10/03/2024", Description: "x"}},
		{"bad category", expenseRequest{Amount: "5.00", Category: "Gadgets", Date: "2024-03-10", Description: "x"}},
		{"empty description", expenseRequest{Amount: "5.00", Category: "Food", Date: "2024-03-10", Description: " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/expenses", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateExpenseNotFound(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPut, "/api/expenses/missing", expenseRequest{
		Amount:      "5.00",
		Category:    "Food",
		Date:        "2024-03-10",
		Description: "x",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("PUT missing expense = %d, want 404", rec.Code)
	}
}

func TestDeleteExpense(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount: "5.00", Category: "Food", Date: "2024-03-10", Description: "x",
	})
	created := decodeBody[expenseView](t, rec)

	rec = doRequest(t, srv, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE = %d, want 404", rec.Code)
	}
}

func TestDashboardReflectsMutations(t *testing.T) {
	srv := newTestServer()

	doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount: "10.00", Category: "Food", Date: "2024-03-10", Description: "a",
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/dashboard = %d", rec.Code)
	}
	view := decodeBody[dashboardView](t, rec)
	if view.Summary.TotalExpenses != "10.00" {
		t.Errorf("total = %q, want 10.00", view.Summary.TotalExpenses)
	}

	// A mutation must invalidate the cached view.
	doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount: "2.50", Category: "Transport", Date: "2024-03-11", Description: "b",
	})
	rec = doRequest(t, srv, http.MethodGet, "/api/dashboard", nil)
	view = decodeBody[dashboardView](t, rec)
	if view.Summary.TotalExpenses != "12.50" {
		t.Errorf("total after mutation = %q, want 12.50", view.Summary.TotalExpenses)
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/subscriptions", subscriptionRequest{
		Name:      "Netflix",
		Amount:    "15.99",
		Frequency: "Monthly",
		StartDate: "2024-01-15",
		Category:  "Entertainment",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/subscriptions = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[subscriptionView](t, rec)
	if created.NextPaymentDate != "2024-03-15" {
		t.Errorf("next_payment_date = %q, want 2024-03-15", created.NextPaymentDate)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/subscriptions/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/subscriptions/summary = %d", rec.Code)
	}
	summary := decodeBody[subscriptionSummaryView](t, rec)
	if summary.MonthlyCost != "15.99" {
		t.Errorf("monthly_cost = %q, want 15.99", summary.MonthlyCost)
	}
	if summary.DueIn30Days != 1 {
		t.Errorf("due_in_30_days = %d, want 1", summary.DueIn30Days)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/subscriptions/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}
}

func TestGoalColorAssignedOnCreate(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/goals", goalRequest{
		Title:        "Vacation",
		TargetAmount: "1500.00",
		Deadline:     "2024-12-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/goals = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[goalView](t, rec)
	if created.Color == "" {
		t.Error("created goal has no color")
	}
	if created.CurrentAmount != "0.00" {
		t.Errorf("current_amount = %q, want 0.00", created.CurrentAmount)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/expenses", map[string]string{
		"amount": "5.00", "category": "Food", "date": "2024-03-10",
		"description": "x", "surprise": "field",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d, want 400", rec.Code)
	}
}

func TestCategoryBreakdownEndpoint(t *testing.T) {
	srv := newTestServer()

	doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount: "10.00", Category: "Food", Date: "2024-03-10", Description: "a",
	})
	doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount: "5.00", Category: "Food", Date: "2024-03-11", Description: "b",
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/dashboard/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/dashboard/categories = %d", rec.Code)
	}
	totals := decodeBody[[]categoryAmountView](t, rec)
	if len(totals) != 1 || totals[0].Category != "Food" || totals[0].Amount != "15.00" {
		t.Errorf("totals = %v", totals)
	}
}

func TestResetEndpoint(t *testing.T) {
	srv := newTestServer()

	doRequest(t, srv, http.MethodPost, "/api/expenses", expenseRequest{
		Amount: "10.00", Category: "Food", Date: "2024-03-10", Description: "a",
	})

	rec := doRequest(t, srv, http.MethodPost, "/api/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/reset = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/expenses", nil)
	listed := decodeBody[[]expenseView](t, rec)
	if len(listed) != 0 {
		t.Errorf("expenses after reset = %v", listed)
	}
}
