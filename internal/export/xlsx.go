package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"spendsmart/internal/core"
)

// Workbook is the full data set written to a spreadsheet: one sheet per
// entity kind plus a summary sheet.
type Workbook struct {
	Summary       core.DashboardSummary
	Expenses      []core.Expense
	Goals         []core.SavingsGoal
	Subscriptions []core.Subscription
}

// WriteXLSX writes the workbook to path. Amounts are written as numbers
// in currency units so spreadsheet formulas work on them.
func WriteXLSX(wb Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, wb.Summary); err != nil {
		return err
	}
	if err := writeExpensesSheet(f, wb.Expenses); err != nil {
		return err
	}
	if err := writeGoalsSheet(f, wb.Goals); err != nil {
		return err
	}
	if err := writeSubscriptionsSheet(f, wb.Subscriptions); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary core.DashboardSummary) error {
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, "Summary"); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	sheet = "Summary"

	rows := [][]any{
		{"Metric", "Value"},
		{"Total expenses", summary.TotalExpenses.Units()},
		{"Weekly average", summary.WeeklyAverage / 100},
		{"This month", summary.MonthlyTotal.Units()},
		{"Largest expense", summary.LargestExpense.Amount.Units()},
		{"Largest expense category", string(summary.LargestExpense.Category)},
		{"Savings progress (%)", summary.SavingsProgress},
		{"Upcoming payments", summary.UpcomingPayments},
	}
	return writeRows(f, sheet, rows)
}

func writeExpensesSheet(f *excelize.File, expenses []core.Expense) error {
	const sheet = "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Date", "Description", "Category", "Amount"}}
	for _, e := range expenses {
		rows = append(rows, []any{
			e.Date.Format(dateLayout),
			e.Description,
			string(e.Category),
			e.Amount.Units(),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeGoalsSheet(f *excelize.File, goals []core.SavingsGoal) error {
	const sheet = "Goals"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Title", "Target", "Current", "Deadline"}}
	for _, g := range goals {
		rows = append(rows, []any{
			g.Title,
			g.TargetAmount.Units(),
			g.CurrentAmount.Units(),
			g.Deadline.Format(dateLayout),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeSubscriptionsSheet(f *excelize.File, subscriptions []core.Subscription) error {
	const sheet = "Subscriptions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Name", "Amount", "Frequency", "Start Date", "Next Payment", "Category"}}
	for _, s := range subscriptions {
		rows = append(rows, []any{
			s.Name,
			s.Amount.Units(),
			string(s.Frequency),
			s.StartDate.Format(dateLayout),
			s.NextPaymentDate.Format(dateLayout),
			string(s.Category),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
