package http

import "spendsmart/internal/core"

// Request payloads. Ids are never accepted from the client; create
// assigns them and update takes the id from the URL.

type expenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (req expenseRequest) toCore() (core.Expense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Amount:      amount,
		Category:    core.Category(req.Category),
		Date:        date,
		Description: req.Description,
	}, nil
}

type goalRequest struct {
	Title         string `json:"title"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
	Color         string `json:"color"`
}

func (req goalRequest) toCore() (core.SavingsGoal, error) {
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	current := core.Money{}
	if req.CurrentAmount != "" {
		current, err = parseAmount(req.CurrentAmount)
		if err != nil {
			return core.SavingsGoal{}, err
		}
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	return core.SavingsGoal{
		Title:         req.Title,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Color:         req.Color,
	}, nil
}

type subscriptionRequest struct {
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Frequency string `json:"frequency"`
	StartDate string `json:"start_date"`
	Category  string `json:"category"`
}

func (req subscriptionRequest) toCore() (core.Subscription, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Subscription{}, err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return core.Subscription{}, err
	}
	return core.Subscription{
		Name:      req.Name,
		Amount:    amount,
		Frequency: core.Frequency(req.Frequency),
		StartDate: start,
		Category:  core.Category(req.Category),
	}, nil
}
