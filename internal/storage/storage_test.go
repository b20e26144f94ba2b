package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	out := map[string]Store{}
	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		s, closeFn, err := Open(ctx, Options{
			Backend:  backend,
			DBPath:   filepath.Join(dir, "db", "progress.db"),
			FilePath: filepath.Join(dir, "file", "progress.json"),
		})
		require.NoError(t, err, backend)
		t.Cleanup(func() { _ = closeFn() })
		out[backend] = s
	}
	return out
}

func TestBackendsRoundTrip(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("current")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, s.Set("current", `{"category":"medical","index":0}`))
			require.NoError(t, s.Set("medical", "0"))
			require.NoError(t, s.Set("medical", "4"))

			v, ok, err := s.Get("medical")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "4", v)

			require.NoError(t, s.Remove("medical"))
			require.NoError(t, s.Remove("never-set"))
			_, ok, err = s.Get("medical")
			require.NoError(t, err)
			require.False(t, ok)

			v, ok, err = s.Get("current")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `{"category":"medical","index":0}`, v)
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "progress.db")

	s, closeFn, err := Open(ctx, Options{Backend: BackendSQLite, DBPath: dbPath})
	require.NoError(t, err)
	require.NoError(t, s.Set("bookmarked", `{"legal":[1]}`))
	require.NoError(t, closeFn())

	s, closeFn, err = Open(ctx, Options{Backend: BackendSQLite, DBPath: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	v, ok, err := s.Get("bookmarked")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"legal":[1]}`, v)
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("legal", "2"))

	f, err = OpenFile(path)
	require.NoError(t, err)
	v, ok, err := f.Get("legal")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", v)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileRejectsCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
	_, err := OpenFile(path)
	require.Error(t, err)
}

func TestFileWriteFailureKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.json")
	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("medical", "1"))

	// A directory in the way of the temp file makes the next flush fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))
	require.Error(t, f.Set("medical", "2"))

	v, ok, err := f.Get("medical")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), Options{Backend: "redis"})
	require.EqualError(t, err, `unknown storage backend "redis"`)
}

func TestMemorySnapshotIsCopy(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set("a", "1"))
	snap := m.Snapshot()
	snap["a"] = "2"
	v, _, _ := m.Get("a")
	require.Equal(t, "1", v)
}
