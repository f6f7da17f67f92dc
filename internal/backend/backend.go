// Package backend selects and builds the entity store from configuration.
package backend

import (
	"spendsmart/internal/amqp"
	"spendsmart/internal/config"
	"spendsmart/internal/store"
)

// Type identifies a store implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{MemoryBackend, FileBackend, SQLiteBackend}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles the built store with its optional event client and
// cleanup. Events is nil when no AMQP URL is configured or the broker is
// unreachable at startup.
type Result struct {
	Store   store.Store
	Events  *amqp.Client
	Cleanup CleanupFunc
}

// Options holds everything the factory needs, extracted from the
// application config.
type Options struct {
	Type Type

	// file backend
	DataDir        string
	DataPassphrase string

	// memory backend
	SeedFile string

	// sqlite backend
	SQLiteDBPath string

	// optional event publishing, any backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig extracts factory options from the application config.
func FromAppConfig(cfg *config.Config) Options {
	return Options{
		Type:           Type(cfg.DataBackend),
		DataDir:        cfg.DataDir,
		DataPassphrase: cfg.DataPassphrase,
		SeedFile:       cfg.SeedFile,
		SQLiteDBPath:   cfg.SQLiteDBPath,
		AMQPURL:        cfg.AMQPURL,
		AMQPExchange:   cfg.AMQPExchange,
		AMQPQueue:      cfg.AMQPQueue,
	}
}
