package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/robalobadob/wordsearch/assets"
)

func TestOpenCreatesParentDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "app.db")
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(db, assets.Migrations); err != nil {
			t.Fatalf("Migrate pass %d: %v", i+1, err)
		}
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("_migrations rows = %d, want 1", n)
	}
	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateOrderAndFailure(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"sql/002_seed.sql":  {Data: []byte(`INSERT INTO notes(body) VALUES ('hello');`)},
		"sql/001_notes.sql": {Data: []byte(`CREATE TABLE notes (body TEXT NOT NULL);`)},
		"sql/README.md":     {Data: []byte("not a migration")},
	}
	if err := Migrate(db, fsys); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	var body string
	if err := db.QueryRow(`SELECT body FROM notes`).Scan(&body); err != nil || body != "hello" {
		t.Fatalf("notes body = %q, %v", body, err)
	}

	broken := fstest.MapFS{"sql/003_broken.sql": {Data: []byte(`CREATE TABLE;`)}}
	if err := Migrate(db, broken); err == nil {
		t.Fatal("expected an error for invalid SQL")
	}
	var n int
	_ = db.QueryRow(`SELECT COUNT(*) FROM _migrations WHERE name='003_broken.sql'`).Scan(&n)
	if n != 0 {
		t.Fatal("failed migration was recorded")
	}
}
