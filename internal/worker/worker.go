// Package worker drives the recurring payment processor: a periodic tick
// plus an optional event-driven fast path over AMQP.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"spendsmart/internal/amqp"
	"spendsmart/internal/services"
)

// Worker runs the recurring processor on an interval. When an AMQP client
// is attached it also reacts to subscription change events, so an edited
// schedule is refreshed without waiting for the next tick.
type Worker struct {
	processor *services.RecurringProcessor
	events    *amqp.Client
	interval  time.Duration
}

func New(processor *services.RecurringProcessor, events *amqp.Client, interval time.Duration) *Worker {
	return &Worker{
		processor: processor,
		events:    events,
		interval:  interval,
	}
}

// Run blocks until ctx is done. An immediate pass runs at startup so a
// long-stopped deployment catches up before the first tick.
func (w *Worker) Run(ctx context.Context) error {
	w.processOnce(ctx, time.Now().UTC())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				w.processOnce(ctx, now.UTC())
			}
		}
	})

	if w.events != nil {
		g.Go(func() error {
			err := w.events.ConsumeStateChanged(ctx, w.handleEvent)
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("consume state-changed events: %w", err)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// handleEvent reacts to subscription changes only; expense and goal
// events never move a payment date.
func (w *Worker) handleEvent(msg *amqp.StateChangedMessage) error {
	if msg.Kind != amqp.KindSubscription {
		return nil
	}
	if msg.Op != amqp.OpCreated && msg.Op != amqp.OpUpdated {
		return nil
	}

	slog.Info("Subscription change received, refreshing payment dates",
		"id", msg.ID, "op", msg.Op)
	_, err := w.processor.Process(context.Background(), time.Now().UTC())
	return err
}

func (w *Worker) processOnce(ctx context.Context, now time.Time) {
	count, err := w.processor.Process(ctx, now)
	if err != nil {
		if ctx.Err() == nil {
			slog.ErrorContext(ctx, "Recurring processing failed", "error", err)
		}
		return
	}
	slog.InfoContext(ctx, "Recurring processing complete",
		"payments_recorded", count,
		"next_check", now.Add(w.interval).Format("15:04:05"))
}
