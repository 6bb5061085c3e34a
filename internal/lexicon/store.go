// internal/lexicon/store.go
//
// Read-only SQLite word-list lexicon.
// Responsibilities:
//   - Opening a lexicon database with safe defaults (read-only, busy timeout).
//   - Reading the answer corpus and guess vocabulary in insertion order.
//
// Expected schema:
//   CREATE TABLE answers (word TEXT NOT NULL);
//   CREATE TABLE allowed (word TEXT NOT NULL);
//
// The solver never writes to the lexicon.

package lexicon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Store wraps a read-only lexicon database.
type Store struct{ db *sql.DB }

/**
 * Open opens an existing lexicon database read-only.
 *
 * - Fails if the file does not exist (read-only mode never creates it).
 * - Configures a busy timeout so concurrent writers do not fail reads.
 * - Pings to surface a bad path or corrupt file immediately.
 */
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping lexicon: %w", err)
	}
	log.Debug().Str("path", path).Msg("lexicon opened")
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Answers returns the answer corpus in insertion order.
func (s *Store) Answers(ctx context.Context) ([]string, error) {
	return s.list(ctx, `SELECT word FROM answers ORDER BY rowid`)
}

// Allowed returns the guess vocabulary in insertion order.
func (s *Store) Allowed(ctx context.Context) ([]string, error) {
	return s.list(ctx, `SELECT word FROM allowed ORDER BY rowid`)
}

// Stats returns (answers, allowed) row counts.
func (s *Store) Stats(ctx context.Context) (int, int, error) {
	var a, g int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM answers`).Scan(&a); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM allowed`).Scan(&g); err != nil {
		return 0, 0, err
	}
	return a, g, nil
}

func (s *Store) list(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query lexicon: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w sql.NullString
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		if w.Valid {
			out = append(out, w.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNoWords
	}
	return out, nil
}

// ErrNoWords is returned when a lexicon table has no rows.
var ErrNoWords = errors.New("lexicon: table is empty")
