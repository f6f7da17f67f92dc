package backend

import (
	"fmt"
	"time"

	"spendsmart/internal/amqp"
	"spendsmart/internal/log"
	"spendsmart/internal/storage"
	"spendsmart/internal/store/file"
	"spendsmart/internal/store/memory"
)

// Factory builds entity stores from options.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentStore)
	}
	return &Factory{logger: logger}
}

// Create builds the store named by opts.Type, plus the AMQP client when a
// broker URL is configured. A broker that is down at startup logs a
// warning and the result carries a nil Events; the store itself must
// succeed or the whole build fails.
func (f *Factory) Create(opts Options) (*Result, error) {
	if !opts.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", opts.Type)
	}

	var result *Result
	var err error
	switch opts.Type {
	case MemoryBackend:
		result, err = f.createMemory(opts)
	case FileBackend:
		result, err = f.createFile(opts)
	case SQLiteBackend:
		result, err = f.createSQLite(opts)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", opts.Type)
	}
	if err != nil {
		return nil, err
	}

	if opts.AMQPURL != "" {
		client, err := amqp.NewClient(opts.AMQPURL, opts.AMQPExchange, opts.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", opts.AMQPExchange,
				"queue", opts.AMQPQueue)
			result.Events = client
			storeCleanup := result.Cleanup
			result.Cleanup = func() error {
				client.Close()
				if storeCleanup != nil {
					return storeCleanup()
				}
				return nil
			}
		}
	}

	return result, nil
}

func (f *Factory) createMemory(opts Options) (*Result, error) {
	if opts.SeedFile != "" {
		st, err := memory.NewFromSeed(opts.SeedFile, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("load seed file: %w", err)
		}
		f.logger.Info("Initialized memory backend from seed", "seed_file", opts.SeedFile)
		return &Result{Store: st}, nil
	}
	f.logger.Info("Initialized memory backend")
	return &Result{Store: memory.New()}, nil
}

func (f *Factory) createFile(opts Options) (*Result, error) {
	st, err := file.New(opts.DataDir, opts.DataPassphrase)
	if err != nil {
		return nil, fmt.Errorf("initialize file store: %w", err)
	}
	f.logger.Info("Initialized file backend",
		"data_dir", opts.DataDir,
		"encrypted", opts.DataPassphrase != "")
	return &Result{Store: st}, nil
}

func (f *Factory) createSQLite(opts Options) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(opts.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", opts.SQLiteDBPath)
	return &Result{Store: repo, Cleanup: repo.Close}, nil
}
