// Package services orchestrates mutations and derivations over the entity
// store. The core stays pure; everything stateful lives here or below.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spendsmart/internal/amqp"
	"spendsmart/internal/core"
	"spendsmart/internal/store"
)

// ErrNotFound is returned when a mutation targets an id that is not in the
// current snapshot.
var ErrNotFound = errors.New("not found")

// EventPublisher announces entity changes. Satisfied by *amqp.Client; nil
// means events are simply not published.
type EventPublisher interface {
	PublishStateChanged(ctx context.Context, kind, id, op string) error
}

// goalColors is the palette assigned to savings goals created without an
// explicit color, rotated by position so adjacent goals differ.
var goalColors = []string{
	"#6366f1", // indigo
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#f43f5e", // rose
	"#f97316", // orange
	"#eab308", // yellow
	"#22c55e", // green
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#a855f7", // purple
}

// FinanceService owns the mutation flow: load the snapshot, apply the
// change, persist the new snapshot, announce it. Every derivation reads a
// fresh snapshot and a single clock reading so aggregates never mix
// points in time.
type FinanceService struct {
	store  store.Store
	events EventPublisher
	now    func() time.Time
}

func NewFinanceService(st store.Store, events EventPublisher) *FinanceService {
	return &FinanceService{
		store:  st,
		events: events,
		// Stored dates are UTC midnights; keep the clock in the same zone.
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the wall clock, for tests.
func (s *FinanceService) WithClock(now func() time.Time) *FinanceService {
	s.now = now
	return s
}

// Dashboard derives the summary and the upcoming-payments list from a
// fresh snapshot of all three entity lists.
func (s *FinanceService) Dashboard(ctx context.Context) (core.DashboardSummary, []core.Subscription, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return core.DashboardSummary{}, nil, fmt.Errorf("list expenses: %w", err)
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return core.DashboardSummary{}, nil, fmt.Errorf("list goals: %w", err)
	}
	subscriptions, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return core.DashboardSummary{}, nil, fmt.Errorf("list subscriptions: %w", err)
	}
	summary, upcoming := core.DeriveSummary(expenses, goals, subscriptions, s.now())
	return summary, upcoming, nil
}

// CategoryBreakdown derives per-category expense totals.
func (s *FinanceService) CategoryBreakdown(ctx context.Context) ([]core.CategoryAmount, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return core.CategoryTotals(expenses), nil
}

// CostOverview is the subscription-page rollup.
type CostOverview struct {
	MonthlyCents float64
	AnnualCents  float64
	DueIn30Days  int
}

// SubscriptionOverview derives the cross-frequency cost rollup and the
// 30-day upcoming count.
func (s *FinanceService) SubscriptionOverview(ctx context.Context) (CostOverview, error) {
	subscriptions, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return CostOverview{}, fmt.Errorf("list subscriptions: %w", err)
	}
	monthly := core.MonthlyCost(subscriptions)
	return CostOverview{
		MonthlyCents: monthly,
		AnnualCents:  monthly * 12,
		DueIn30Days:  len(core.UpcomingPayments(subscriptions, s.now(), 30)),
	}, nil
}

func (s *FinanceService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}

func (s *FinanceService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.ID = uuid.NewString()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("list expenses: %w", err)
	}
	if err := s.store.SaveExpenses(ctx, append(expenses, e)); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}
	s.publish(ctx, amqp.KindExpense, e.ID, amqp.OpCreated)
	return e, nil
}

func (s *FinanceService) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("list expenses: %w", err)
	}
	found := false
	for i := range expenses {
		if expenses[i].ID == e.ID {
			expenses[i] = e
			found = true
			break
		}
	}
	if !found {
		return core.Expense{}, fmt.Errorf("expense %s: %w", e.ID, ErrNotFound)
	}
	if err := s.store.SaveExpenses(ctx, expenses); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}
	s.publish(ctx, amqp.KindExpense, e.ID, amqp.OpUpdated)
	return e, nil
}

func (s *FinanceService) DeleteExpense(ctx context.Context, id string) error {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	kept := expenses[:0:0]
	for _, e := range expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(expenses) {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	if err := s.store.SaveExpenses(ctx, kept); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	s.publish(ctx, amqp.KindExpense, id, amqp.OpDeleted)
	return nil
}

func (s *FinanceService) ListGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	return s.store.ListGoals(ctx)
}

func (s *FinanceService) AddGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	g.ID = uuid.NewString()
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("list goals: %w", err)
	}
	if g.Color == "" {
		g.Color = goalColors[len(goals)%len(goalColors)]
	}
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	if err := s.store.SaveGoals(ctx, append(goals, g)); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("save goals: %w", err)
	}
	s.publish(ctx, amqp.KindGoal, g.ID, amqp.OpCreated)
	return g, nil
}

func (s *FinanceService) UpdateGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("list goals: %w", err)
	}
	found := false
	for i := range goals {
		if goals[i].ID == g.ID {
			goals[i] = g
			found = true
			break
		}
	}
	if !found {
		return core.SavingsGoal{}, fmt.Errorf("goal %s: %w", g.ID, ErrNotFound)
	}
	if err := s.store.SaveGoals(ctx, goals); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("save goals: %w", err)
	}
	s.publish(ctx, amqp.KindGoal, g.ID, amqp.OpUpdated)
	return g, nil
}

func (s *FinanceService) DeleteGoal(ctx context.Context, id string) error {
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	kept := goals[:0:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	if err := s.store.SaveGoals(ctx, kept); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	s.publish(ctx, amqp.KindGoal, id, amqp.OpDeleted)
	return nil
}

func (s *FinanceService) ListSubscriptions(ctx context.Context) ([]core.Subscription, error) {
	return s.store.ListSubscriptions(ctx)
}

// AddSubscription assigns an id, derives the first payment date from the
// clock and persists the new list.
func (s *FinanceService) AddSubscription(ctx context.Context, sub core.Subscription) (core.Subscription, error) {
	sub.ID = uuid.NewString()
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	sub.NextPaymentDate = core.NextOccurrence(sub.StartDate, sub.Frequency, s.now())

	subscriptions, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("list subscriptions: %w", err)
	}
	if err := s.store.SaveSubscriptions(ctx, append(subscriptions, sub)); err != nil {
		return core.Subscription{}, fmt.Errorf("save subscriptions: %w", err)
	}
	s.publish(ctx, amqp.KindSubscription, sub.ID, amqp.OpCreated)
	return sub, nil
}

// UpdateSubscription replaces the record. The next payment date is
// re-derived only when the frequency or start date changed; otherwise the
// previously derived date stands.
func (s *FinanceService) UpdateSubscription(ctx context.Context, sub core.Subscription) (core.Subscription, error) {
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	subscriptions, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("list subscriptions: %w", err)
	}
	found := false
	for i := range subscriptions {
		existing := subscriptions[i]
		if existing.ID != sub.ID {
			continue
		}
		if existing.Frequency != sub.Frequency || !existing.StartDate.Equal(sub.StartDate.Time) {
			sub.NextPaymentDate = core.NextOccurrence(sub.StartDate, sub.Frequency, s.now())
		} else {
			sub.NextPaymentDate = existing.NextPaymentDate
		}
		subscriptions[i] = sub
		found = true
		break
	}
	if !found {
		return core.Subscription{}, fmt.Errorf("subscription %s: %w", sub.ID, ErrNotFound)
	}
	if err := s.store.SaveSubscriptions(ctx, subscriptions); err != nil {
		return core.Subscription{}, fmt.Errorf("save subscriptions: %w", err)
	}
	s.publish(ctx, amqp.KindSubscription, sub.ID, amqp.OpUpdated)
	return sub, nil
}

func (s *FinanceService) DeleteSubscription(ctx context.Context, id string) error {
	subscriptions, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	kept := subscriptions[:0:0]
	for _, sub := range subscriptions {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	if len(kept) == len(subscriptions) {
		return fmt.Errorf("subscription %s: %w", id, ErrNotFound)
	}
	if err := s.store.SaveSubscriptions(ctx, kept); err != nil {
		return fmt.Errorf("save subscriptions: %w", err)
	}
	s.publish(ctx, amqp.KindSubscription, id, amqp.OpDeleted)
	return nil
}

// ResetData clears all three entity lists.
func (s *FinanceService) ResetData(ctx context.Context) error {
	if err := s.store.SaveExpenses(ctx, nil); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	if err := s.store.SaveGoals(ctx, nil); err != nil {
		return fmt.Errorf("clear goals: %w", err)
	}
	if err := s.store.SaveSubscriptions(ctx, nil); err != nil {
		return fmt.Errorf("clear subscriptions: %w", err)
	}
	s.publish(ctx, amqp.KindExpense, "", amqp.OpDeleted)
	s.publish(ctx, amqp.KindGoal, "", amqp.OpDeleted)
	s.publish(ctx, amqp.KindSubscription, "", amqp.OpDeleted)
	return nil
}

// publish announces a mutation. Event delivery is best effort: the
// snapshot is already persisted, so a broker hiccup must not fail the
// request.
func (s *FinanceService) publish(ctx context.Context, kind, id, op string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStateChanged(ctx, kind, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish state-changed event",
			"kind", kind, "id", id, "op", op, "error", err)
	}
}
