package store

import (
	"context"

	"spendsmart/internal/core"
)

// Ports for entity snapshots. Each kind is loaded and saved as a whole
// list; the caller owns mutation, implementations own durability. List
// results are always fresh copies, never aliases of internal state.
type (
	ExpenseStore interface {
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		SaveExpenses(ctx context.Context, expenses []core.Expense) error
	}

	GoalStore interface {
		ListGoals(ctx context.Context) ([]core.SavingsGoal, error)
		SaveGoals(ctx context.Context, goals []core.SavingsGoal) error
	}

	SubscriptionStore interface {
		ListSubscriptions(ctx context.Context) ([]core.Subscription, error)
		SaveSubscriptions(ctx context.Context, subscriptions []core.Subscription) error
	}

	// Store is the full entity store consumed by the service layer.
	Store interface {
		ExpenseStore
		GoalStore
		SubscriptionStore
	}
)
