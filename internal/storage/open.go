// Package storage provides the persistent key-value backends progress is
// written to.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/cclvocab/internal/database"
	"github.com/jask/cclvocab/internal/database/repository"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Store is the contract every backend satisfies.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Options selects and locates a backend.
type Options struct {
	Backend  string
	DBPath   string
	FilePath string
}

// Open returns the configured backend and a function releasing it.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }
	switch opts.Backend {
	case BackendSQLite, "":
		if err := os.MkdirAll(filepath.Dir(opts.DBPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		if err := database.RunMigrations(opts.DBPath); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(opts.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		return NewSQLite(ctx, repository.NewKVRepo(db)), db.Close, nil
	case BackendFile:
		f, err := OpenFile(opts.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return f, noop, nil
	case BackendMemory:
		return NewMemory(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
