package core

import (
	"sort"
	"time"
)

// UpcomingWindowDays is the dashboard's upcoming-payments horizon.
const UpcomingWindowDays = 7

// DeriveSummary computes the dashboard summary and the upcoming-payments
// list from a snapshot of the three entity lists and a single reference
// time. Every field reflects the same snapshot and the same now, so the
// outputs are internally consistent; identical inputs yield identical
// outputs. Inputs are never mutated.
func DeriveSummary(expenses []Expense, goals []SavingsGoal, subscriptions []Subscription, now time.Time) (DashboardSummary, []Subscription) {
	// Dates are stored as UTC midnights, so the windows must be built in
	// UTC regardless of the caller's zone.
	now = now.UTC()
	week := CurrentWeekWindow(now)
	month := CurrentMonthWindow(now)

	var total, weeklyTotal, monthlyTotal Money
	largest := LargestExpense{Amount: Money{}, Category: CategoryOther}
	haveLargest := false
	for _, e := range expenses {
		total = total.Add(e.Amount)
		if week.Contains(e.Date.Time) {
			weeklyTotal = weeklyTotal.Add(e.Amount)
		}
		if month.Contains(e.Date.Time) {
			monthlyTotal = monthlyTotal.Add(e.Amount)
		}
		// Strict > keeps the first occurrence on ties.
		if !haveLargest || e.Amount.Cents > largest.Amount.Cents {
			largest = LargestExpense{Amount: e.Amount, Category: e.Category}
			haveLargest = true
		}
	}

	var targetSum, currentSum Money
	for _, g := range goals {
		targetSum = targetSum.Add(g.TargetAmount)
		currentSum = currentSum.Add(g.CurrentAmount)
	}
	progress := 0.0
	if targetSum.Cents > 0 {
		progress = float64(currentSum.Cents) / float64(targetSum.Cents) * 100
	}

	upcoming := UpcomingPayments(subscriptions, now, UpcomingWindowDays)

	summary := DashboardSummary{
		TotalExpenses: total,
		// Fixed 7-day divisor regardless of how much of the week has
		// elapsed.
		WeeklyAverage:    float64(weeklyTotal.Cents) / 7,
		MonthlyTotal:     monthlyTotal,
		LargestExpense:   largest,
		SavingsProgress:  progress,
		UpcomingPayments: len(upcoming),
	}
	return summary, upcoming
}

// UpcomingPayments returns the subscriptions whose next payment falls in
// [now, now + days], sorted ascending by payment date. The sort is stable,
// so same-day payments keep their input order. The input slice is not
// modified.
func UpcomingPayments(subscriptions []Subscription, now time.Time, days int) []Subscription {
	upcoming := make([]Subscription, 0, len(subscriptions))
	for _, s := range subscriptions {
		if WithinNextNDays(s.NextPaymentDate.Time, now, days) {
			upcoming = append(upcoming, s)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextPaymentDate.Before(upcoming[j].NextPaymentDate.Time)
	})
	return upcoming
}

// CategoryTotals groups expense amounts by category, summing within each
// group. Categories appear in first-seen input order, not enumeration
// order, and categories with no expenses are omitted.
func CategoryTotals(expenses []Expense) []CategoryAmount {
	index := make(map[Category]int, len(Categories))
	totals := make([]CategoryAmount, 0, len(Categories))
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryAmount{Category: e.Category})
		}
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
	}
	return totals
}
