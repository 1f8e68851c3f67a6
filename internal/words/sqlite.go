// internal/words/sqlite.go
//
// SQLite-backed word list source.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Creating the words table if missing (idempotent).
//   - Importing a plain word list and reading it back in insertion order.
//
// The table only stores dictionary entries; no game state is ever written here.

package words

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// OpenSQLite opens (and creates if missing) a SQLite database file and
// ensures the words table exists.
func OpenSQLite(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := migrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// migrateSQLite creates the words table. Safe to run on every start.
func migrateSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS words (
            word     TEXT PRIMARY KEY,
            added_at TEXT NOT NULL
        );`)
	if err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}

// ImportSQLite inserts entries inside one transaction, ignoring duplicates.
// Returns the number of rows actually added.
func ImportSQLite(ctx context.Context, db *sql.DB, entries []string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word, added_at) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	added := 0
	for _, w := range entries {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, w, now)
		if err != nil {
			return 0, fmt.Errorf("import %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	log.Info().Int("added", added).Int("seen", len(entries)).Msg("word list imported")
	return added, nil
}

// LoadSQLite reads every stored entry in insertion order.
func LoadSQLite(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT word FROM words ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
