package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spendsmart/internal/amqp"
	"spendsmart/internal/core"
	"spendsmart/internal/store"
)

// RecurringProcessor keeps subscription payment dates fresh. A derived
// NextPaymentDate goes stale the moment real time passes it; this
// processor records each elapsed occurrence as an expense in the
// subscription's category and advances the date until it is in the
// future again.
type RecurringProcessor struct {
	store  store.Store
	events EventPublisher
}

func NewRecurringProcessor(st store.Store, events EventPublisher) *RecurringProcessor {
	return &RecurringProcessor{
		store:  st,
		events: events,
	}
}

// Process refreshes every stale subscription as of now. It returns the
// number of expenses recorded. Both snapshots are saved once at the end,
// so a crash mid-walk loses the whole pass rather than half of it.
func (p *RecurringProcessor) Process(ctx context.Context, now time.Time) (int, error) {
	subscriptions, err := p.store.ListSubscriptions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list subscriptions: %w", err)
	}

	var recorded []core.Expense
	changed := false
	for i := range subscriptions {
		sub := &subscriptions[i]
		for sub.NextPaymentDate.Before(now) {
			expense := core.Expense{
				ID:          uuid.NewString(),
				Amount:      sub.Amount,
				Category:    sub.Category,
				Date:        sub.NextPaymentDate,
				Description: sub.Name + " (subscription)",
			}
			recorded = append(recorded, expense)
			sub.NextPaymentDate = core.Advance(sub.NextPaymentDate, sub.Frequency)
			changed = true

			slog.InfoContext(ctx, "Recorded subscription payment",
				"subscription_id", sub.ID,
				"name", sub.Name,
				"amount_cents", sub.Amount.Cents,
				"payment_date", expense.Date.Format("2006-01-02"),
				"next_payment_date", sub.NextPaymentDate.Format("2006-01-02"))
		}
	}

	if !changed {
		return 0, nil
	}

	expenses, err := p.store.ListExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("list expenses: %w", err)
	}
	if err := p.store.SaveExpenses(ctx, append(expenses, recorded...)); err != nil {
		return 0, fmt.Errorf("save expenses: %w", err)
	}
	if err := p.store.SaveSubscriptions(ctx, subscriptions); err != nil {
		return 0, fmt.Errorf("save subscriptions: %w", err)
	}

	if p.events != nil {
		for _, e := range recorded {
			if err := p.events.PublishStateChanged(ctx, amqp.KindExpense, e.ID, amqp.OpCreated); err != nil {
				slog.ErrorContext(ctx, "Failed to publish recorded payment", "id", e.ID, "error", err)
			}
		}
	}

	slog.InfoContext(ctx, "Recurring payment pass complete",
		"subscriptions", len(subscriptions),
		"payments_recorded", len(recorded))
	return len(recorded), nil
}
