// Package sqlite implements the repository interfaces on SQLite.
//
// SQLite is embedded — the whole store is a single file (or ":memory:" in
// tests), no database server to run. We use modernc.org/sqlite, a pure Go
// translation of the SQLite sources, so the binary cross-compiles without
// CGo.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements
// repository.AthleteRepository.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests) and runs
// migrations. The caller owns the returned DB and must Close it.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pool connection to ":memory:" would get its own empty
	// database; pin the pool to one connection so tests see one store.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Surface a bad path or permissions problem now rather than on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — the default
	// rollback journal locks the whole file per write.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Off by default in SQLite; the videos table references athletes.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe
// to run on every startup.
//
// The UNIQUE constraints on user_id and email are load-bearing: they are
// the storage-layer backstop for the registration duplicate check, which
// is otherwise a non-atomic read-then-write.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS athletes (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			age           INTEGER NOT NULL,
			sport         TEXT NOT NULL,
			position      TEXT NOT NULL,
			phone         TEXT NOT NULL,
			location      TEXT NOT NULL,
			achievements  TEXT NOT NULL DEFAULT '',
			photo         TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating athletes table: %w", err)
	}

	// Video entries are embedded in their athlete's record conceptually;
	// relationally they get their own table, replaced wholesale on Save.
	// seq preserves the list order.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS videos (
			id         TEXT PRIMARY KEY,
			athlete_id TEXT NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
			seq        INTEGER NOT NULL,
			title      TEXT NOT NULL,
			url        TEXT NOT NULL,
			added_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_videos_athlete_id ON videos(athlete_id);
	`)
	if err != nil {
		return fmt.Errorf("creating videos table: %w", err)
	}

	return nil
}
