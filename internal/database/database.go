// internal/database/database.go
//
// SQLite access for the word search server.
// Responsibilities:
//   - Open the database file with WAL journaling, a busy timeout and
//     foreign keys enforced.
//   - Apply embedded *.sql migrations once each, in file name order,
//     tracking applied names in _migrations.
//
// Only history lives here (users, finished games, daily results). Live
// grids never touch the database.

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// MigrationsDir is the directory inside the migrations FS holding *.sql.
const MigrationsDir = "sql"

const dsnParams = "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"

// Open opens the SQLite file at file, creating its parent directory when
// needed (e.g. ./data/app.db on a fresh checkout).
func Open(file string) (*sql.DB, error) {
	if dir := filepath.Dir(file); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", file+dsnParams)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", file, err)
	}
	return db, nil
}

// migration is one *.sql file from the migrations FS.
type migration struct {
	name string // base name, recorded in _migrations
	body string
}

// selfManaged scripts open their own transaction or toggle foreign keys,
// neither of which works inside an outer transaction.
func (m migration) selfManaged() bool {
	u := strings.ToUpper(m.body)
	return strings.Contains(u, "BEGIN TRANSACTION") ||
		strings.Contains(u, "PRAGMA FOREIGN_KEYS=OFF") ||
		strings.Contains(u, "PRAGMA FOREIGN_KEYS = OFF")
}

// Migrate applies every migration under MigrationsDir in fsys that has
// not been recorded yet. It stops at the first failure; a failed file is
// not recorded.
func Migrate(db *sql.DB, fsys fs.FS) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	all, err := loadMigrations(fsys)
	if err != nil {
		return err
	}
	for _, m := range all {
		applied, err := isApplied(ctx, db, m.name)
		if err != nil {
			return err
		}
		if applied {
			log.Debug().Str("migration", m.name).Msg("already applied")
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return err
		}
		log.Info().Str("migration", m.name).Bool("selfManaged", m.selfManaged()).Msg("applied")
	}
	return nil
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	var paths []string
	err := fs.WalkDir(fsys, MigrationsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".sql") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", MigrationsDir, err)
	}
	sort.Strings(paths)

	out := make([]migration, 0, len(paths))
	for _, p := range paths {
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		out = append(out, migration{name: path.Base(p), body: string(b)})
	}
	return out, nil
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("query _migrations: %w", err)
	}
	return true, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func runAndRecord(ctx context.Context, ex execer, m migration) error {
	if _, err := ex.ExecContext(ctx, m.body); err != nil {
		return fmt.Errorf("apply %s: %w", m.name, err)
	}
	if _, err := ex.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
		return fmt.Errorf("record %s: %w", m.name, err)
	}
	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	if m.selfManaged() {
		return runAndRecord(ctx, db, m)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := runAndRecord(ctx, tx, m); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", m.name, err)
	}
	return nil
}
