package file

import (
	"fmt"
	"time"

	"spendsmart/internal/core"
)

// dateLayout is the persisted calendar-date format.
const dateLayout = "2006-01-02"

// Persisted record shapes. Amounts are cents so the documents stay exact;
// dates are day-precision strings.
type (
	expenseRecord struct {
		ID          string `json:"id"`
		AmountCents int64  `json:"amount_cents"`
		Category    string `json:"category"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}

	goalRecord struct {
		ID                 string `json:"id"`
		Title              string `json:"title"`
		TargetAmountCents  int64  `json:"target_amount_cents"`
		CurrentAmountCents int64  `json:"current_amount_cents"`
		Deadline           string `json:"deadline"`
		Color              string `json:"color"`
	}

	subscriptionRecord struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		AmountCents     int64  `json:"amount_cents"`
		Frequency       string `json:"frequency"`
		StartDate       string `json:"start_date"`
		Category        string `json:"category"`
		NextPaymentDate string `json:"next_payment_date"`
	}
)

func expenseRecordFrom(e core.Expense) expenseRecord {
	return expenseRecord{
		ID:          e.ID,
		AmountCents: e.Amount.Cents,
		Category:    string(e.Category),
		Date:        e.Date.Format(dateLayout),
		Description: e.Description,
	}
}

func (r expenseRecord) toCore() (core.Expense, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		ID:          r.ID,
		Amount:      core.Money{Cents: r.AmountCents},
		Category:    core.Category(r.Category),
		Date:        date,
		Description: r.Description,
	}
	return e, e.Validate()
}

func goalRecordFrom(g core.SavingsGoal) goalRecord {
	return goalRecord{
		ID:                 g.ID,
		Title:              g.Title,
		TargetAmountCents:  g.TargetAmount.Cents,
		CurrentAmountCents: g.CurrentAmount.Cents,
		Deadline:           g.Deadline.Format(dateLayout),
		Color:              g.Color,
	}
}

func (r goalRecord) toCore() (core.SavingsGoal, error) {
	deadline, err := parseDate(r.Deadline)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	g := core.SavingsGoal{
		ID:            r.ID,
		Title:         r.Title,
		TargetAmount:  core.Money{Cents: r.TargetAmountCents},
		CurrentAmount: core.Money{Cents: r.CurrentAmountCents},
		Deadline:      deadline,
		Color:         r.Color,
	}
	return g, g.Validate()
}

func subscriptionRecordFrom(s core.Subscription) subscriptionRecord {
	return subscriptionRecord{
		ID:              s.ID,
		Name:            s.Name,
		AmountCents:     s.Amount.Cents,
		Frequency:       string(s.Frequency),
		StartDate:       s.StartDate.Format(dateLayout),
		Category:        string(s.Category),
		NextPaymentDate: s.NextPaymentDate.Format(dateLayout),
	}
}

func (r subscriptionRecord) toCore() (core.Subscription, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return core.Subscription{}, err
	}
	next, err := parseDate(r.NextPaymentDate)
	if err != nil {
		return core.Subscription{}, err
	}
	s := core.Subscription{
		ID:              r.ID,
		Name:            r.Name,
		Amount:          core.Money{Cents: r.AmountCents},
		Frequency:       core.Frequency(r.Frequency),
		StartDate:       start,
		Category:        core.Category(r.Category),
		NextPaymentDate: next,
	}
	return s, s.Validate()
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
	}
	return core.Date{Time: t}, nil
}
