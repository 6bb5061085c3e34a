package words

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	l, err := Load(context.Background(), Source{})
	require.NoError(t, err)

	a, g := l.Stats()
	assert.Greater(t, a, 100)
	assert.Greater(t, g, a)
	for _, w := range l.Answers {
		assert.Len(t, w, Length)
		assert.True(t, l.IsAllowed(w), "answer %s must be a legal guess", w)
	}
}

func TestLoadFilesNormalizes(t *testing.T) {
	dir := t.TempDir()
	ans := writeList(t, dir, "answers.txt", "Crane", "  slate ", "toolong", "ab1de", "", "crane")
	all := writeList(t, dir, "allowed.txt", "adieu", "ADIEU", "zesty")

	l, err := Load(context.Background(), Source{AnswersFile: ans, AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "crane"}, l.Answers)
	assert.Equal(t, []string{"adieu", "adieu", "zesty", "crane", "slate"}, l.Guesses)
	assert.True(t, l.IsAnswer("CRANE"))
	assert.False(t, l.IsAnswer("zesty"))
	assert.True(t, l.IsAllowed("zesty"))

	l, err = Load(context.Background(), Source{AnswersFile: ans, AllowedFile: all, UniqueGuesses: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"adieu", "zesty", "crane", "slate"}, l.Guesses)
}

func TestLoadAllowedOnlyUsesItForBoth(t *testing.T) {
	all := writeList(t, t.TempDir(), "allowed.txt", "adieu", "zesty")
	l, err := Load(context.Background(), Source{AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, l.Answers, l.Guesses)
}

func TestLoadEmptyAnswers(t *testing.T) {
	dir := t.TempDir()
	ans := writeList(t, dir, "answers.txt", "nope", "x")
	all := writeList(t, dir, "allowed.txt", "adieu")
	_, err := Load(context.Background(), Source{AnswersFile: ans, AllowedFile: all})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), Source{AllowedFile: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestLoadLexiconDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE answers (word TEXT NOT NULL); CREATE TABLE allowed (word TEXT NOT NULL);
		INSERT INTO answers(word) VALUES ('CRANE'), ('slate'), ('bad');
		INSERT INTO allowed(word) VALUES ('adieu');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	l, err := Load(context.Background(), Source{DB: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Answers)
	assert.Equal(t, []string{"adieu", "crane", "slate"}, l.Guesses)
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]bool{"crane": true, " CRANE ": true, "cran": false, "cränе": false, "cr-ne": false} {
		_, ok := Normalize(in)
		assert.Equal(t, want, ok, in)
	}
}
