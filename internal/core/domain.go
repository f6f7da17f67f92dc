package core

import (
	"errors"
	"strings"
	"time"
)

// Category is the closed set of expense categories. Every expense and
// subscription carries exactly one of these labels.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHousing       Category = "Housing"
	CategoryUtilities     Category = "Utilities"
	CategoryHealthcare    Category = "Healthcare"
	CategoryShopping      Category = "Shopping"
	CategoryEducation     Category = "Education"
	CategoryTravel        Category = "Travel"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHousing,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryShopping,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment, CategoryHousing,
		CategoryUtilities, CategoryHealthcare, CategoryShopping, CategoryEducation,
		CategoryTravel, CategoryOther:
		return true
	}
	return false
}

// Frequency is how often a subscription charges.
type Frequency string

const (
	Weekly    Frequency = "Weekly"
	Biweekly  Frequency = "Biweekly"
	Monthly   Frequency = "Monthly"
	Quarterly Frequency = "Quarterly"
	Yearly    Frequency = "Yearly"
)

// Frequencies lists every supported billing frequency.
var Frequencies = []Frequency{Weekly, Biweekly, Monthly, Quarterly, Yearly}

// IsValid reports whether f is one of the supported frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case Weekly, Biweekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

type (
	// Date is a calendar instant at day precision, always UTC.
	Date struct {
		time.Time
	}

	// Expense is a single recorded purchase.
	Expense struct {
		ID          string
		Amount      Money
		Category    Category
		Date        Date
		Description string
	}

	// SavingsGoal tracks progress toward a target amount by a deadline.
	// CurrentAmount may transiently exceed TargetAmount; contributions are
	// clamped by the caller, never here.
	SavingsGoal struct {
		ID            string
		Title         string
		TargetAmount  Money
		CurrentAmount Money
		Deadline      Date
		Color         string
	}

	// Subscription is a recurring obligation. NextPaymentDate is derived:
	// the earliest occurrence >= "now" at the time it was last computed.
	Subscription struct {
		ID              string
		Name            string
		Amount          Money
		Frequency       Frequency
		StartDate       Date
		Category        Category
		NextPaymentDate Date
	}

	// LargestExpense is the dashboard's biggest-single-purchase cell.
	LargestExpense struct {
		Amount   Money
		Category Category
	}

	// DashboardSummary is fully derived from the three entity lists plus a
	// reference time. It is never mutated in place.
	DashboardSummary struct {
		TotalExpenses    Money
		WeeklyAverage    float64
		MonthlyTotal     Money
		LargestExpense   LargestExpense
		SavingsProgress  float64
		UpcomingPayments int
	}

	// CategoryAmount is an amount aggregated under one category.
	CategoryAmount struct {
		Category Category
		Amount   Money
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyName        = errors.New("empty name")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day precision in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if !s.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	if err := s.StartDate.Validate(); err != nil {
		return err
	}
	if !s.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
