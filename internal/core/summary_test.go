package core

import (
	"math"
	"reflect"
	"testing"
	"time"
)

// Wednesday mid-month, so the week and month windows are easy to reason about.
var summaryNow = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

func TestDeriveSummary_EmptyInputs(t *testing.T) {
	summary, upcoming := DeriveSummary(nil, nil, nil, summaryNow)

	if summary.TotalExpenses.Cents != 0 {
		t.Errorf("TotalExpenses = %d, want 0", summary.TotalExpenses.Cents)
	}
	if summary.WeeklyAverage != 0 {
		t.Errorf("WeeklyAverage = %v, want 0", summary.WeeklyAverage)
	}
	if summary.MonthlyTotal.Cents != 0 {
		t.Errorf("MonthlyTotal = %d, want 0", summary.MonthlyTotal.Cents)
	}
	if summary.SavingsProgress != 0 {
		t.Errorf("SavingsProgress = %v, want 0", summary.SavingsProgress)
	}
	if summary.UpcomingPayments != 0 {
		t.Errorf("UpcomingPayments = %d, want 0", summary.UpcomingPayments)
	}
	want := LargestExpense{Amount: Money{}, Category: CategoryOther}
	if summary.LargestExpense != want {
		t.Errorf("LargestExpense = %+v, want zero sentinel %+v", summary.LargestExpense, want)
	}
	if len(upcoming) != 0 {
		t.Errorf("upcoming = %v, want empty", upcoming)
	}
}

func TestDeriveSummary_Totals(t *testing.T) {
	expenses := []Expense{
		{ID: "1", Amount: Money{Cents: 2500}, Category: CategoryFood, Date: NewDate(2024, 3, 12)},     // this week, this month
		{ID: "2", Amount: Money{Cents: 1200}, Category: CategoryTransport, Date: NewDate(2024, 3, 4)}, // last week, this month
		{ID: "3", Amount: Money{Cents: 800}, Category: CategoryEntertainment, Date: NewDate(2024, 2, 20)},
	}

	summary, _ := DeriveSummary(expenses, nil, nil, summaryNow)

	if summary.TotalExpenses.Cents != 4500 {
		t.Errorf("TotalExpenses = %d, want 4500", summary.TotalExpenses.Cents)
	}
	if summary.MonthlyTotal.Cents != 3700 {
		t.Errorf("MonthlyTotal = %d, want 3700", summary.MonthlyTotal.Cents)
	}
	// Only the 2500 expense falls in the current Monday-start week, and the
	// divisor is a fixed 7 days no matter how far into the week now is.
	if want := 2500.0 / 7; summary.WeeklyAverage != want {
		t.Errorf("WeeklyAverage = %v, want %v", summary.WeeklyAverage, want)
	}
	if summary.LargestExpense.Category != CategoryFood || summary.LargestExpense.Amount.Cents != 2500 {
		t.Errorf("LargestExpense = %+v", summary.LargestExpense)
	}
}

func TestDeriveSummary_LocalZoneClock(t *testing.T) {
	// Expense dates are UTC midnights. A clock in a negative-offset zone
	// must not push the month window past a first-of-month expense.
	local := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, 8, 1, 10, 0, 0, 0, local)
	expenses := []Expense{
		{ID: "1", Amount: Money{Cents: 1000}, Category: CategoryFood, Date: NewDate(2024, 8, 1)},
	}

	summary, _ := DeriveSummary(expenses, nil, nil, now)

	if summary.MonthlyTotal.Cents != 1000 {
		t.Errorf("MonthlyTotal = %d, want 1000", summary.MonthlyTotal.Cents)
	}
}

func TestDeriveSummary_LargestExpenseTieKeepsFirst(t *testing.T) {
	expenses := []Expense{
		{ID: "1", Amount: Money{Cents: 900}, Category: CategoryTravel, Date: NewDate(2024, 3, 1)},
		{ID: "2", Amount: Money{Cents: 900}, Category: CategoryShopping, Date: NewDate(2024, 3, 2)},
	}

	summary, _ := DeriveSummary(expenses, nil, nil, summaryNow)

	if summary.LargestExpense.Category != CategoryTravel {
		t.Errorf("tie broken to %s, want first-seen Travel", summary.LargestExpense.Category)
	}
}

func TestDeriveSummary_SavingsProgress(t *testing.T) {
	goals := []SavingsGoal{
		{ID: "1", TargetAmount: Money{Cents: 100000}, CurrentAmount: Money{Cents: 35000}},
		{ID: "2", TargetAmount: Money{Cents: 75000}, CurrentAmount: Money{Cents: 25000}},
	}

	summary, _ := DeriveSummary(nil, goals, nil, summaryNow)

	want := 60000.0 / 175000.0 * 100
	if math.Abs(summary.SavingsProgress-want) > 1e-9 {
		t.Errorf("SavingsProgress = %v, want %v", summary.SavingsProgress, want)
	}
}

func TestDeriveSummary_UpcomingWindowBoundary(t *testing.T) {
	subs := []Subscription{
		{ID: "in", Name: "exactly seven days", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 7))},
		{ID: "out", Name: "eight days", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 8))},
	}

	summary, upcoming := DeriveSummary(nil, nil, subs, summaryNow)

	if summary.UpcomingPayments != 1 {
		t.Fatalf("UpcomingPayments = %d, want 1", summary.UpcomingPayments)
	}
	if upcoming[0].ID != "in" {
		t.Errorf("upcoming[0].ID = %s, want in", upcoming[0].ID)
	}
}

func TestDeriveSummary_UpcomingSortedAscending(t *testing.T) {
	subs := []Subscription{
		{ID: "c", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 5))},
		{ID: "a", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 1))},
		{ID: "b", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 3))},
		{ID: "d", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 3))}, // same day as b, stays after it
	}

	_, upcoming := DeriveSummary(nil, nil, subs, summaryNow)

	var order []string
	for _, s := range upcoming {
		order = append(order, s.ID)
	}
	want := []string{"a", "b", "d", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("upcoming order = %v, want %v", order, want)
	}
}

func TestDeriveSummary_Idempotent(t *testing.T) {
	expenses := []Expense{
		{ID: "1", Amount: Money{Cents: 2500}, Category: CategoryFood, Date: NewDate(2024, 3, 12)},
	}
	goals := []SavingsGoal{
		{ID: "1", TargetAmount: Money{Cents: 1000}, CurrentAmount: Money{Cents: 100}},
	}
	subs := []Subscription{
		{ID: "1", NextPaymentDate: DateOf(summaryNow.AddDate(0, 0, 2))},
	}

	s1, u1 := DeriveSummary(expenses, goals, subs, summaryNow)
	s2, u2 := DeriveSummary(expenses, goals, subs, summaryNow)

	if s1 != s2 {
		t.Errorf("summaries differ: %+v vs %+v", s1, s2)
	}
	if !reflect.DeepEqual(u1, u2) {
		t.Errorf("upcoming lists differ: %v vs %v", u1, u2)
	}
}

func TestCategoryTotals(t *testing.T) {
	expenses := []Expense{
		{Amount: Money{Cents: 100}, Category: CategoryFood},
		{Amount: Money{Cents: 200}, Category: CategoryTravel},
		{Amount: Money{Cents: 300}, Category: CategoryFood},
	}

	got := CategoryTotals(expenses)

	want := []CategoryAmount{
		{Category: CategoryFood, Amount: Money{Cents: 400}},
		{Category: CategoryTravel, Amount: Money{Cents: 200}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryTotals() = %v, want %v", got, want)
	}
}

func TestCategoryTotals_Empty(t *testing.T) {
	if got := CategoryTotals(nil); len(got) != 0 {
		t.Errorf("CategoryTotals(nil) = %v, want empty", got)
	}
}
