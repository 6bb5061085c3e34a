// internal/lexicon/build.go
//
// Writer side of the lexicon: creates or refreshes a database from word lists.
// Responsibilities:
//   - Opening SQLite with safe defaults (rollback journal, busy timeout, parent dir created).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Replacing both word tables in a single transaction.

package lexicon

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

/**
 * openRW opens (and creates if missing) a lexicon database for writing.
 *
 * - Ensures the parent directory exists for relative paths (e.g. ./data/lexicon.db).
 * - Configures a busy timeout. The journal stays in rollback mode so the
 *   finished file can be opened with mode=ro.
 */
func openRW(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=DELETE")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open lexicon %s: %w", path, err)
	}
	return db, nil
}

/**
 * migrate applies the embedded sql/*.sql files in lexical order.
 *
 * - Uses a _migrations table to track applied files.
 * - Each file runs in its own transaction together with its bookkeeping row.
 */
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Build creates the lexicon at path (or refreshes an existing one) so that
// it holds exactly answers and allowed, in order. Words are stored as given;
// callers normalize first.
func Build(ctx context.Context, path string, answers, allowed []string) error {
	db, err := openRW(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []struct {
		name  string
		words []string
	}{{"answers", answers}, {"allowed", allowed}} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table.name); err != nil {
			return fmt.Errorf("clear %s: %w", table.name, err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table.name+` (word) VALUES (?)`)
		if err != nil {
			return err
		}
		for _, w := range table.words {
			if _, err := stmt.ExecContext(ctx, w); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("insert %s %q: %w", table.name, w, err)
			}
		}
		_ = stmt.Close()
	}

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES ('built_at', ?)`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("answers", len(answers)).Int("allowed", len(allowed)).Msg("lexicon built")
	return nil
}
