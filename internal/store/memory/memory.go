package memory

import (
	"context"
	"sync"

	"spendsmart/internal/core"
)

// Store keeps the three entity lists in memory. It is the default backend
// and the one tests use. All methods copy on the way in and out so callers
// can never alias internal state.
type Store struct {
	mu            sync.Mutex
	expenses      []core.Expense
	goals         []core.SavingsGoal
	subscriptions []core.Subscription
}

func New() *Store {
	return &Store{}
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *Store) SaveExpenses(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.Expense(nil), expenses...)
	return nil
}

func (s *Store) ListGoals(_ context.Context) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.goals...), nil
}

func (s *Store) SaveGoals(_ context.Context, goals []core.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append([]core.SavingsGoal(nil), goals...)
	return nil
}

func (s *Store) ListSubscriptions(_ context.Context) ([]core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Subscription(nil), s.subscriptions...), nil
}

func (s *Store) SaveSubscriptions(_ context.Context, subscriptions []core.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = append([]core.Subscription(nil), subscriptions...)
	return nil
}
