package lexicon

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildThenOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "lexicon.db")

	require.NoError(t, Build(ctx, path, []string{"crane", "slate"}, []string{"adieu", "crane", "slate"}))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	ans, err := s.Answers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, ans)
	all, err := s.Allowed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"adieu", "crane", "slate"}, all)
}

func TestBuildReplacesContents(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lexicon.db")

	require.NoError(t, Build(ctx, path, []string{"crane"}, []string{"crane"}))
	require.NoError(t, Build(ctx, path, []string{"pious", "apple"}, []string{"adieu"}))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	a, g, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, g)
}

func TestMigrationsRecordedOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lexicon.db")
	require.NoError(t, Build(ctx, path, []string{"crane"}, nil))
	require.NoError(t, Build(ctx, path, []string{"crane"}, nil))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestBuildRejectsBadLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")
	err := Build(context.Background(), path, []string{"toolong"}, nil)
	assert.Error(t, err)
}
