package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"spendsmart/internal/core"
)

const seedYAML = `expenses:
  - amount: "12.50"
    category: Food
    date: "2024-03-01"
    description: Groceries
  - id: keep-me
    amount: "3,20"
    category: Transport
    date: "2024-03-02"
    description: Bus ticket
  - amount: "not a number"
    category: Food
    date: "2024-03-03"
    description: Broken record
goals:
  - title: Vacation
    target_amount: "1500.00"
    current_amount: "250.00"
    deadline: "2024-12-31"
    color: "#22c55e"
subscriptions:
  - name: Netflix
    amount: "15.99"
    frequency: Monthly
    start_date: "2024-01-15"
    category: Entertainment
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestNewFromSeed(t *testing.T) {
	now := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)
	st, err := NewFromSeed(writeSeed(t, seedYAML), now)
	if err != nil {
		t.Fatalf("NewFromSeed() error = %v", err)
	}
	ctx := context.Background()

	expenses, _ := st.ListExpenses(ctx)
	if len(expenses) != 2 {
		t.Fatalf("expenses = %d, want 2 (broken record skipped)", len(expenses))
	}
	if expenses[0].Amount.Cents != 1250 {
		t.Errorf("expenses[0].Amount = %d cents, want 1250", expenses[0].Amount.Cents)
	}
	if expenses[0].ID == "" {
		t.Error("expenses[0] did not get a generated id")
	}
	if expenses[1].ID != "keep-me" {
		t.Errorf("expenses[1].ID = %q, want keep-me", expenses[1].ID)
	}
	if expenses[1].Amount.Cents != 320 {
		t.Errorf("comma amount = %d cents, want 320", expenses[1].Amount.Cents)
	}

	goals, _ := st.ListGoals(ctx)
	if len(goals) != 1 || goals[0].TargetAmount.Cents != 150000 {
		t.Errorf("goals = %v", goals)
	}

	subscriptions, _ := st.ListSubscriptions(ctx)
	if len(subscriptions) != 1 {
		t.Fatalf("subscriptions = %d, want 1", len(subscriptions))
	}
	// Monthly from Jan 15, loaded on March 13: next charge March 15.
	want := core.NewDate(2024, 3, 15)
	if !subscriptions[0].NextPaymentDate.Equal(want.Time) {
		t.Errorf("NextPaymentDate = %v, want %v", subscriptions[0].NextPaymentDate, want)
	}
}

func TestNewFromSeedMissingFile(t *testing.T) {
	st, err := NewFromSeed(filepath.Join(t.TempDir(), "absent.yaml"), time.Now())
	if err != nil {
		t.Fatalf("NewFromSeed() error = %v, want nil for missing file", err)
	}
	expenses, _ := st.ListExpenses(context.Background())
	if len(expenses) != 0 {
		t.Errorf("missing seed produced %d expenses", len(expenses))
	}
}

func TestNewFromSeedRejectsBadYAML(t *testing.T) {
	if _, err := NewFromSeed(writeSeed(t, "expenses: [not: closed"), time.Now()); err == nil {
		t.Error("NewFromSeed() accepted malformed YAML")
	}
}
