package core

import (
	"errors"
	"testing"
)

func TestExpense_Validate(t *testing.T) {
	valid := Expense{
		ID:          "1",
		Amount:      Money{Cents: 2500},
		Category:    CategoryFood,
		Date:        NewDate(2024, 3, 1),
		Description: "Grocery shopping",
	}

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{"valid expense", func(*Expense) {}, nil},
		{"zero amount is allowed", func(e *Expense) { e.Amount = Money{} }, nil},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -1} }, ErrInvalidAmount},
		{"unknown category", func(e *Expense) { e.Category = "Groceries" }, ErrInvalidCategory},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{"blank description", func(e *Expense) { e.Description = "  " }, ErrEmptyDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSavingsGoal_Validate(t *testing.T) {
	valid := SavingsGoal{
		ID:            "1",
		Title:         "Vacation Fund",
		TargetAmount:  Money{Cents: 100000},
		CurrentAmount: Money{Cents: 35000},
		Deadline:      NewDate(2024, 12, 31),
		Color:         "#6366f1",
	}

	tests := []struct {
		name    string
		mutate  func(*SavingsGoal)
		wantErr error
	}{
		{"valid goal", func(*SavingsGoal) {}, nil},
		{"current may exceed target", func(g *SavingsGoal) { g.CurrentAmount = Money{Cents: 200000} }, nil},
		{"blank title", func(g *SavingsGoal) { g.Title = "" }, ErrEmptyTitle},
		{"zero target", func(g *SavingsGoal) { g.TargetAmount = Money{} }, ErrInvalidAmount},
		{"negative current", func(g *SavingsGoal) { g.CurrentAmount = Money{Cents: -1} }, ErrInvalidAmount},
		{"zero deadline", func(g *SavingsGoal) { g.Deadline = Date{} }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscription_Validate(t *testing.T) {
	valid := Subscription{
		ID:        "1",
		Name:      "Netflix",
		Amount:    Money{Cents: 649},
		Frequency: Monthly,
		StartDate: NewDate(2024, 1, 1),
		Category:  CategoryEntertainment,
	}

	tests := []struct {
		name    string
		mutate  func(*Subscription)
		wantErr error
	}{
		{"valid subscription", func(*Subscription) {}, nil},
		{"blank name", func(s *Subscription) { s.Name = " " }, ErrEmptyName},
		{"zero amount", func(s *Subscription) { s.Amount = Money{} }, ErrInvalidAmount},
		{"unknown frequency", func(s *Subscription) { s.Frequency = "Daily" }, ErrInvalidFrequency},
		{"zero start date", func(s *Subscription) { s.StartDate = Date{} }, ErrInvalidDate},
		{"unknown category", func(s *Subscription) { s.Category = "Streaming" }, ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Category("Misc").IsValid() {
		t.Error("Misc should not be valid")
	}
}
