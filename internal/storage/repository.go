package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"spendsmart/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteRepository is the durable entity store. Snapshot saves replace the
// whole table inside one transaction, which matches the single-writer,
// full-list-replace contract of the store ports and keeps the on-disk
// state identical to the last snapshot handed in.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, category, date, description FROM expenses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			cents   int64
			cat     string
			dateStr string
		)
		if err := rows.Scan(&e.ID, &cents, &cat, &dateStr, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		date, err := parseDate(dateStr)
		if err != nil {
			slog.WarnContext(ctx, "Dropping expense row with bad date", "id", e.ID, "date", dateStr)
			continue
		}
		e.Amount = core.Money{Cents: cents}
		e.Category = core.Category(cat)
		e.Date = date
		if err := e.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid expense row", "id", e.ID, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	return r.replaceAll(ctx, "expenses", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO expenses (id, amount_cents, category, date, description) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range expenses {
			if _, err := stmt.ExecContext(ctx,
				e.ID, e.Amount.Cents, string(e.Category), e.Date.Format(dateLayout), e.Description); err != nil {
				return fmt.Errorf("insert expense %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, target_amount_cents, current_amount_cents, deadline, color FROM savings_goals ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		var (
			g               core.SavingsGoal
			target, current int64
			deadlineStr     string
		)
		if err := rows.Scan(&g.ID, &g.Title, &target, &current, &deadlineStr, &g.Color); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		deadline, err := parseDate(deadlineStr)
		if err != nil {
			slog.WarnContext(ctx, "Dropping goal row with bad deadline", "id", g.ID, "deadline", deadlineStr)
			continue
		}
		g.TargetAmount = core.Money{Cents: target}
		g.CurrentAmount = core.Money{Cents: current}
		g.Deadline = deadline
		if err := g.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid goal row", "id", g.ID, "error", err)
			continue
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveGoals(ctx context.Context, goals []core.SavingsGoal) error {
	return r.replaceAll(ctx, "savings_goals", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO savings_goals (id, title, target_amount_cents, current_amount_cents, deadline, color) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, g := range goals {
			if _, err := stmt.ExecContext(ctx,
				g.ID, g.Title, g.TargetAmount.Cents, g.CurrentAmount.Cents,
				g.Deadline.Format(dateLayout), g.Color); err != nil {
				return fmt.Errorf("insert savings goal %s: %w", g.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListSubscriptions(ctx context.Context) ([]core.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, frequency, start_date, category, next_payment_date FROM subscriptions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var out []core.Subscription
	for rows.Next() {
		var (
			s                 core.Subscription
			cents             int64
			freq, cat         string
			startStr, nextStr string
		)
		if err := rows.Scan(&s.ID, &s.Name, &cents, &freq, &startStr, &cat, &nextStr); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		start, err := parseDate(startStr)
		if err != nil {
			slog.WarnContext(ctx, "Dropping subscription row with bad start date", "id", s.ID, "start_date", startStr)
			continue
		}
		next, err := parseDate(nextStr)
		if err != nil {
			slog.WarnContext(ctx, "Dropping subscription row with bad payment date", "id", s.ID, "next_payment_date", nextStr)
			continue
		}
		s.Amount = core.Money{Cents: cents}
		s.Frequency = core.Frequency(freq)
		s.StartDate = start
		s.Category = core.Category(cat)
		s.NextPaymentDate = next
		if err := s.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid subscription row", "id", s.ID, "error", err)
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveSubscriptions(ctx context.Context, subscriptions []core.Subscription) error {
	return r.replaceAll(ctx, "subscriptions", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO subscriptions (id, name, amount_cents, frequency, start_date, category, next_payment_date) VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, s := range subscriptions {
			if _, err := stmt.ExecContext(ctx,
				s.ID, s.Name, s.Amount.Cents, string(s.Frequency),
				s.StartDate.Format(dateLayout), string(s.Category),
				s.NextPaymentDate.Format(dateLayout)); err != nil {
				return fmt.Errorf("insert subscription %s: %w", s.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) replaceAll(ctx context.Context, table string, insert func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}
