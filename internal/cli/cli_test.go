package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the environment the commands read and writes a small
// word list to disk.
func isolate(t *testing.T) (answers, allowed string) {
	t.Helper()
	for _, k := range []string{"WORDS_DB", "WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE", "SOLVER_TOP",
		"SOLVER_MAX_ROUNDS", "SOLVER_TIMEOUT", "SOLVER_KEEP_TAIL", "JWT_SECRET"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	answers = filepath.Join(dir, "answers.txt")
	allowed = filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("apple\nangle\nankle\ncrane\nslate\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("adieu\n"), 0o644))
	return answers, allowed
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRankWithFeedback(t *testing.T) {
	answers, allowed := isolate(t)
	out, err := run(t, "", "rank", "--answers", answers, "--allowed", allowed,
		"--workers", "2", "--keep-tail", "--feedback", "1a !p")
	require.NoError(t, err)
	assert.Contains(t, out, "pool: 2")
	assert.Contains(t, out, "candidates: angle ankle")
}

func TestRankBadFeedback(t *testing.T) {
	answers, allowed := isolate(t)
	_, err := run(t, "", "rank", "--answers", answers, "--allowed", allowed, "--feedback", "7q")
	assert.Error(t, err)
}

func TestSolveWithTokens(t *testing.T) {
	answers, allowed := isolate(t)
	out, err := run(t, "=adieu\n1a !p !g\n", "solve", "--answers", answers, "--allowed", allowed,
		"--workers", "2", "--keep-tail")
	require.NoError(t, err)
	assert.Contains(t, out, "round 1, pool: 5")
	assert.Contains(t, out, "solved: ankle")
}

func TestSolveWithGuessAndMarks(t *testing.T) {
	answers, allowed := isolate(t)
	out, err := run(t, "crane 00202\n", "solve", "--answers", answers, "--allowed", allowed,
		"--workers", "2", "--keep-tail")
	require.NoError(t, err)
	assert.Contains(t, out, "solved: slate")
}

func TestSolveRepromptsOnBadInput(t *testing.T) {
	answers, allowed := isolate(t)
	out, err := run(t, "zz9\n\n1a\nq\n", "solve", "--answers", answers, "--allowed", allowed,
		"--workers", "2", "--keep-tail")
	require.NoError(t, err)
	assert.Contains(t, out, "invalid token")
	assert.Contains(t, out, "round 2, pool: 3")
	assert.Contains(t, out, "stopped with 3 candidates")
}

func TestSolveEOFStops(t *testing.T) {
	answers, allowed := isolate(t)
	out, err := run(t, "", "solve", "--answers", answers, "--allowed", allowed, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "stopped with 5 candidates")
}

func TestPlayAnswer(t *testing.T) {
	answers, allowed := isolate(t)
	out, err := run(t, "", "play", "--answer", "ankle", "--answers", answers, "--allowed", allowed,
		"--workers", "2", "--keep-tail", "--max-rounds", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "ankle  ggggg")
	assert.Contains(t, out, "won in")
}

func TestPlayNeedsAnswerOrDaily(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "play")
	assert.Error(t, err)
	_, err = run(t, "", "play", "--answer", "toolong")
	assert.Error(t, err)
}

func TestPlayDailyIsDeterministic(t *testing.T) {
	answers, allowed := isolate(t)
	args := []string{"play", "--daily", "--date", "2025-01-31", "--answers", answers, "--allowed", allowed,
		"--workers", "2", "--keep-tail", "--max-rounds", "10"}
	a, err := run(t, "", args...)
	require.NoError(t, err)
	b, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTokenCommand(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "token", "--subject", "alice")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	out, err := run(t, "", "token", "--subject", "alice", "--days", "1")
	require.NoError(t, err)
	first := strings.SplitN(out, "\n", 2)[0]
	assert.Len(t, strings.Split(first, "."), 3)
	assert.Contains(t, out, "expires")
}

func TestLexiconBuildThenRank(t *testing.T) {
	answers, allowed := isolate(t)
	db := filepath.Join(t.TempDir(), "lexicon.db")

	out, err := run(t, "", "lexicon", "build", db, "--answers", answers, "--allowed", allowed)
	require.NoError(t, err)
	assert.Contains(t, out, "5 answers, 6 guesses")

	out, err = run(t, "", "lexicon", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "answers: 5")

	out, err = run(t, "", "rank", "--db", db, "--workers", "2", "--feedback", "!a")
	require.NoError(t, err)
	assert.Contains(t, out, "pool: 0")
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SOLVER_TOP", "4")
	t.Setenv("SOLVER_TIMEOUT", "1s")

	rank, _, err := NewRootCmd().Find([]string{"rank"})
	require.NoError(t, err)
	require.NoError(t, rank.ParseFlags([]string{"--top", "7"}))

	// Changed() is read from the command; values from the receiver.
	c := (&rootFlags{top: 7}).config(rank)
	assert.Equal(t, 7, c.Top)
	assert.Equal(t, time.Second, c.Timeout)
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2026, 2, 23, 22, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	got, err := resolveDate(now, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-23", got.Format("2006-01-02"))

	got, err = resolveDate(now, "2026-02-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-15", got.Format("2006-01-02"))

	_, err = resolveDate(now, "2026/02/15")
	assert.Error(t, err)
}
