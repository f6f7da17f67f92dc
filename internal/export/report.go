// Package export renders derived finance views as terminal tables and
// spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"spendsmart/internal/core"
	"spendsmart/internal/services"
)

const dateLayout = "2006-01-02"

// money formats a Money as a currency string for display.
func money(m core.Money) string {
	return "€" + m.String()
}

// moneyCents formats a fractional cent amount, rounding at display time.
func moneyCents(cents float64) string {
	return fmt.Sprintf("€%.2f", cents/100)
}

// WriteSummary renders the dashboard summary as a two-column table.
func WriteSummary(w io.Writer, summary core.DashboardSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Total expenses", money(summary.TotalExpenses)},
		{"Weekly average", moneyCents(summary.WeeklyAverage)},
		{"This month", money(summary.MonthlyTotal)},
		{"Largest expense", fmt.Sprintf("%s (%s)", money(summary.LargestExpense.Amount), summary.LargestExpense.Category)},
		{"Savings progress", fmt.Sprintf("%.1f%%", summary.SavingsProgress)},
		{"Upcoming payments", fmt.Sprintf("%d", summary.UpcomingPayments)},
	})

	t.Render()
}

// WriteCategoryBreakdown renders per-category totals with a grand total
// footer.
func WriteCategoryBreakdown(w io.Writer, totals []core.CategoryAmount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Category", "Amount"})
	var sum core.Money
	for _, ct := range totals {
		t.AppendRow(table.Row{string(ct.Category), money(ct.Amount)})
		sum = sum.Add(ct.Amount)
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{text.Bold.Sprint("Total"), text.Bold.Sprint(money(sum))})

	t.Render()
}

// WriteUpcoming renders the upcoming-payments list in payment-date order.
func WriteUpcoming(w io.Writer, upcoming []core.Subscription) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Name", "Amount", "Frequency", "Next Payment", "Category"})
	for _, sub := range upcoming {
		t.AppendRow(table.Row{
			sub.Name,
			money(sub.Amount),
			string(sub.Frequency),
			sub.NextPaymentDate.Format(dateLayout),
			string(sub.Category),
		})
	}

	t.Render()
}

// WriteCostOverview renders the subscription cost rollup.
func WriteCostOverview(w io.Writer, overview services.CostOverview) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Monthly cost", moneyCents(overview.MonthlyCents)},
		{"Annual cost", moneyCents(overview.AnnualCents)},
		{"Due in 30 days", fmt.Sprintf("%d", overview.DueIn30Days)},
	})

	t.Render()
}
