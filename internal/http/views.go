package http

import (
	"fmt"

	"spendsmart/internal/core"
	"spendsmart/internal/services"
)

// JSON view models. Monetary amounts travel as decimal strings ("12.34")
// so clients never see cents, and dates as "2006-01-02".

const dateLayout = "2006-01-02"

type expenseView struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type goalView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
	Color         string `json:"color"`
}

type subscriptionView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	Frequency       string `json:"frequency"`
	StartDate       string `json:"start_date"`
	Category        string `json:"category"`
	NextPaymentDate string `json:"next_payment_date"`
}

type largestExpenseView struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

type summaryView struct {
	TotalExpenses    string             `json:"total_expenses"`
	WeeklyAverage    string             `json:"weekly_average"`
	MonthlyTotal     string             `json:"monthly_total"`
	LargestExpense   largestExpenseView `json:"largest_expense"`
	SavingsProgress  float64            `json:"savings_progress"`
	UpcomingPayments int                `json:"upcoming_payments"`
}

type dashboardView struct {
	Summary  summaryView        `json:"summary"`
	Upcoming []subscriptionView `json:"upcoming"`
}

type categoryAmountView struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type subscriptionSummaryView struct {
	MonthlyCost string `json:"monthly_cost"`
	AnnualCost  string `json:"annual_cost"`
	DueIn30Days int    `json:"due_in_30_days"`
}

// centsString formats a fractional cent amount as a decimal string,
// rounding at display time only.
func centsString(cents float64) string {
	return fmt.Sprintf("%.2f", cents/100)
}

func newExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		Category:    string(e.Category),
		Date:        e.Date.Format(dateLayout),
		Description: e.Description,
	}
}

func newExpenseViews(expenses []core.Expense) []expenseView {
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, newExpenseView(e))
	}
	return views
}

func newGoalView(g core.SavingsGoal) goalView {
	return goalView{
		ID:            g.ID,
		Title:         g.Title,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		Deadline:      g.Deadline.Format(dateLayout),
		Color:         g.Color,
	}
}

func newGoalViews(goals []core.SavingsGoal) []goalView {
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, newGoalView(g))
	}
	return views
}

func newSubscriptionView(s core.Subscription) subscriptionView {
	return subscriptionView{
		ID:              s.ID,
		Name:            s.Name,
		Amount:          s.Amount.String(),
		Frequency:       string(s.Frequency),
		StartDate:       s.StartDate.Format(dateLayout),
		Category:        string(s.Category),
		NextPaymentDate: s.NextPaymentDate.Format(dateLayout),
	}
}

func newSubscriptionViews(subscriptions []core.Subscription) []subscriptionView {
	views := make([]subscriptionView, 0, len(subscriptions))
	for _, s := range subscriptions {
		views = append(views, newSubscriptionView(s))
	}
	return views
}

func newDashboardView(summary core.DashboardSummary, upcoming []core.Subscription) dashboardView {
	return dashboardView{
		Summary: summaryView{
			TotalExpenses: summary.TotalExpenses.String(),
			WeeklyAverage: centsString(summary.WeeklyAverage),
			MonthlyTotal:  summary.MonthlyTotal.String(),
			LargestExpense: largestExpenseView{
				Amount:   summary.LargestExpense.Amount.String(),
				Category: string(summary.LargestExpense.Category),
			},
			SavingsProgress:  summary.SavingsProgress,
			UpcomingPayments: summary.UpcomingPayments,
		},
		Upcoming: newSubscriptionViews(upcoming),
	}
}

func newCategoryAmountViews(totals []core.CategoryAmount) []categoryAmountView {
	views := make([]categoryAmountView, 0, len(totals))
	for _, t := range totals {
		views = append(views, categoryAmountView{
			Category: string(t.Category),
			Amount:   t.Amount.String(),
		})
	}
	return views
}

func newSubscriptionSummaryView(overview services.CostOverview) subscriptionSummaryView {
	return subscriptionSummaryView{
		MonthlyCost: centsString(overview.MonthlyCents),
		AnnualCost:  centsString(overview.AnnualCents),
		DueIn30Days: overview.DueIn30Days,
	}
}
