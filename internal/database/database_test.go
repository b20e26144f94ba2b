package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/cclvocab/internal/database"
	"github.com/jask/cclvocab/internal/database/repository"
)

func TestMigrationsAndKV(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, applied, err := database.SchemaVersion(dbPath)
	require.NoError(t, err)
	require.False(t, applied)

	require.NoError(t, database.RunMigrations(dbPath))
	require.NoError(t, database.RunMigrations(dbPath), "second run is a no-op")
	v, dirty, err := database.SchemaVersion(dbPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 1, v)
	t.Log("migrations applied")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewKVRepo(db)
	_, ok, err := repo.Get(ctx, "current")
	require.NoError(t, err)
	require.False(t, ok)

	now := database.Now()
	require.NoError(t, repo.Upsert(ctx, repository.Entry{Key: "current", Value: `{"category":"legal","index":2}`, UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, repository.Entry{Key: "legal", Value: "1", UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, repository.Entry{Key: "legal", Value: "2", UpdatedAt: now}))

	e, ok, err := repo.Get(ctx, "legal")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", e.Value)
	require.True(t, e.UpdatedAt.Equal(now))

	require.NoError(t, repo.Delete(ctx, "current"))
	_, ok, err = repo.Get(ctx, "current")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = repo.Get(ctx, "legal")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, repo.Delete(ctx, "current"), "deleting a missing key is not an error")
}
