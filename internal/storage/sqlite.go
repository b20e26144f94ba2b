package storage

import (
	"context"
	"time"

	"github.com/jask/cclvocab/internal/database"
	"github.com/jask/cclvocab/internal/database/repository"
)

// opTimeout bounds each sqlite round trip so a locked database cannot stall
// the UI.
const opTimeout = 2 * time.Second

// SQLite stores pairs in the kv table.
type SQLite struct {
	ctx  context.Context
	repo *repository.KVRepo
}

func NewSQLite(ctx context.Context, repo *repository.KVRepo) *SQLite {
	return &SQLite{ctx: ctx, repo: repo}
}

func (s *SQLite) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, opTimeout)
	defer cancel()
	e, ok, err := s.repo.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(s.ctx, opTimeout)
	defer cancel()
	return s.repo.Upsert(ctx, repository.Entry{Key: key, Value: value, UpdatedAt: database.Now()})
}

func (s *SQLite) Remove(key string) error {
	ctx, cancel := context.WithTimeout(s.ctx, opTimeout)
	defer cancel()
	return s.repo.Delete(ctx, key)
}
