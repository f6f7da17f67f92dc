// Package file persists each entity list as a JSON document in a data
// directory, the durable analog of the browser-local storage this app
// replaces. When a passphrase is configured the documents are encrypted
// at rest with age scrypt recipients.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"filippo.io/age"

	"spendsmart/internal/core"
)

const (
	expensesFile      = "expenses.json"
	goalsFile         = "goals.json"
	subscriptionsFile = "subscriptions.json"
)

// Store reads and writes entity snapshots under baseDir.
type Store struct {
	baseDir   string
	mu        sync.Mutex
	recipient *age.ScryptRecipient
	identity  *age.ScryptIdentity
}

// New creates a file store rooted at baseDir. A non-empty passphrase
// enables age encryption for every document written from then on;
// plaintext documents remain readable either way.
func New(baseDir, passphrase string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &Store{baseDir: baseDir}
	if passphrase != "" {
		recipient, err := age.NewScryptRecipient(passphrase)
		if err != nil {
			return nil, fmt.Errorf("create age recipient: %w", err)
		}
		identity, err := age.NewScryptIdentity(passphrase)
		if err != nil {
			return nil, fmt.Errorf("create age identity: %w", err)
		}
		s.recipient = recipient
		s.identity = identity
	}
	return s, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	records, err := loadRecords[expenseRecord](s, expensesFile)
	if err != nil {
		return nil, err
	}
	out := make([]core.Expense, 0, len(records))
	for _, r := range records {
		e, err := r.toCore()
		if err != nil {
			slog.Warn("Dropping malformed expense record", "id", r.ID, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) SaveExpenses(_ context.Context, expenses []core.Expense) error {
	records := make([]expenseRecord, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, expenseRecordFrom(e))
	}
	return s.save(expensesFile, records)
}

func (s *Store) ListGoals(_ context.Context) ([]core.SavingsGoal, error) {
	records, err := loadRecords[goalRecord](s, goalsFile)
	if err != nil {
		return nil, err
	}
	out := make([]core.SavingsGoal, 0, len(records))
	for _, r := range records {
		g, err := r.toCore()
		if err != nil {
			slog.Warn("Dropping malformed goal record", "id", r.ID, "error", err)
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) SaveGoals(_ context.Context, goals []core.SavingsGoal) error {
	records := make([]goalRecord, 0, len(goals))
	for _, g := range goals {
		records = append(records, goalRecordFrom(g))
	}
	return s.save(goalsFile, records)
}

func (s *Store) ListSubscriptions(_ context.Context) ([]core.Subscription, error) {
	records, err := loadRecords[subscriptionRecord](s, subscriptionsFile)
	if err != nil {
		return nil, err
	}
	out := make([]core.Subscription, 0, len(records))
	for _, r := range records {
		sub, err := r.toCore()
		if err != nil {
			slog.Warn("Dropping malformed subscription record", "id", r.ID, "error", err)
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *Store) SaveSubscriptions(_ context.Context, subscriptions []core.Subscription) error {
	records := make([]subscriptionRecord, 0, len(subscriptions))
	for _, sub := range subscriptions {
		records = append(records, subscriptionRecordFrom(sub))
	}
	return s.save(subscriptionsFile, records)
}

// loadRecords reads one document and decodes it record by record, so a
// single corrupt entry is dropped instead of poisoning the whole list.
// There is no schema versioning to lean on. A missing file means an empty
// list.
func loadRecords[T any](s *Store, name string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(s.baseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	raw, err = s.decrypt(raw)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", name, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	records := make([]T, 0, len(items))
	for _, item := range items {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			slog.Warn("Dropping undecodable record", "file", name, "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// save writes the document atomically: temp file in the same directory,
// then rename over the target.
func (s *Store) save(name string, records any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	raw, err = s.encrypt(raw)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", name, err)
	}

	target := filepath.Join(s.baseDir, name)
	tmp, err := os.CreateTemp(s.baseDir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// ageHeader is the prefix of age-encrypted files.
const ageHeader = "age-encryption.org"

func (s *Store) encrypt(data []byte) ([]byte, error) {
	if s.recipient == nil {
		return data, nil
	}
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, s.recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) decrypt(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, []byte(ageHeader)) {
		return data, nil
	}
	if s.identity == nil {
		return nil, fmt.Errorf("data is encrypted but no passphrase is configured")
	}
	r, err := age.Decrypt(bytes.NewReader(data), s.identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
