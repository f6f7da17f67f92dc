package memory

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"spendsmart/internal/core"
)

// Seed record shapes. Dates are "2006-01-02" strings, amounts decimal
// strings; ids are optional and generated when missing.
type (
	seedFile struct {
		Expenses      []seedExpense      `yaml:"expenses"`
		Goals         []seedGoal         `yaml:"goals"`
		Subscriptions []seedSubscription `yaml:"subscriptions"`
	}

	seedExpense struct {
		ID          string `yaml:"id"`
		Amount      string `yaml:"amount"`
		Category    string `yaml:"category"`
		Date        string `yaml:"date"`
		Description string `yaml:"description"`
	}

	seedGoal struct {
		ID            string `yaml:"id"`
		Title         string `yaml:"title"`
		TargetAmount  string `yaml:"target_amount"`
		CurrentAmount string `yaml:"current_amount"`
		Deadline      string `yaml:"deadline"`
		Color         string `yaml:"color"`
	}

	seedSubscription struct {
		ID        string `yaml:"id"`
		Name      string `yaml:"name"`
		Amount    string `yaml:"amount"`
		Frequency string `yaml:"frequency"`
		StartDate string `yaml:"start_date"`
		Category  string `yaml:"category"`
	}
)

// NewFromSeed builds a memory store pre-filled from a YAML seed file.
// A missing file yields an empty store; individual records that fail to
// parse or validate are skipped with a warning, never fatal. Subscription
// next-payment dates are derived from now at load time.
func NewFromSeed(path string, now time.Time) (*Store, error) {
	s := New()
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	for _, se := range seed.Expenses {
		e, err := se.toCore()
		if err != nil {
			slog.Warn("Skipping seed expense", "description", se.Description, "error", err)
			continue
		}
		s.expenses = append(s.expenses, e)
	}
	for _, sg := range seed.Goals {
		g, err := sg.toCore()
		if err != nil {
			slog.Warn("Skipping seed goal", "title", sg.Title, "error", err)
			continue
		}
		s.goals = append(s.goals, g)
	}
	for _, ss := range seed.Subscriptions {
		sub, err := ss.toCore(now)
		if err != nil {
			slog.Warn("Skipping seed subscription", "name", ss.Name, "error", err)
			continue
		}
		s.subscriptions = append(s.subscriptions, sub)
	}

	slog.Info("Seeded memory store",
		"path", path,
		"expenses", len(s.expenses),
		"goals", len(s.goals),
		"subscriptions", len(s.subscriptions))
	return s, nil
}

func (se seedExpense) toCore() (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(se.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseDate(se.Date)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		ID:          orNewID(se.ID),
		Amount:      core.Money{Cents: cents},
		Category:    core.Category(se.Category),
		Date:        date,
		Description: se.Description,
	}
	return e, e.Validate()
}

func (sg seedGoal) toCore() (core.SavingsGoal, error) {
	target, err := core.ParseDecimalToCents(sg.TargetAmount)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	current, err := core.ParseDecimalToCents(sg.CurrentAmount)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	deadline, err := parseDate(sg.Deadline)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	g := core.SavingsGoal{
		ID:            orNewID(sg.ID),
		Title:         sg.Title,
		TargetAmount:  core.Money{Cents: target},
		CurrentAmount: core.Money{Cents: current},
		Deadline:      deadline,
		Color:         sg.Color,
	}
	return g, g.Validate()
}

func (ss seedSubscription) toCore(now time.Time) (core.Subscription, error) {
	cents, err := core.ParseDecimalToCents(ss.Amount)
	if err != nil {
		return core.Subscription{}, err
	}
	start, err := parseDate(ss.StartDate)
	if err != nil {
		return core.Subscription{}, err
	}
	sub := core.Subscription{
		ID:        orNewID(ss.ID),
		Name:      ss.Name,
		Amount:    core.Money{Cents: cents},
		Frequency: core.Frequency(ss.Frequency),
		StartDate: start,
		Category:  core.Category(ss.Category),
	}
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	sub.NextPaymentDate = core.NextOccurrence(sub.StartDate, sub.Frequency, now)
	return sub, nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
	}
	return core.Date{Time: t}, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
