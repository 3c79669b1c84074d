package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a shared sqlx connection pool. A single handle is constructed at
// the process entry point and passed to every repository.
type DB struct {
	*sqlx.DB
}

// Connect opens a database connection and initializes the schema.
// Supported drivers are "sqlite3" and "postgres".
func Connect(driver, dsn string) (*DB, error) {
	if driver == "sqlite3" && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	handle := &DB{db}
	if err := handle.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return handle, nil
}

// initializeSchema creates necessary tables if they don't exist
func (db *DB) initializeSchema() error {
	// AUTOINCREMENT-style primary keys differ between the two dialects
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		pk = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				telegram_chat_id BIGINT NOT NULL DEFAULT 0,
				reminder_hour INTEGER NOT NULL DEFAULT -1,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, pk),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS words (
				id %s,
				word TEXT NOT NULL UNIQUE,
				definition TEXT NOT NULL DEFAULT '',
				pronunciation TEXT NOT NULL DEFAULT '',
				examples TEXT NOT NULL DEFAULT '[]',
				translations TEXT NOT NULL DEFAULT '{}',
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`, pk),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS assignments (
				id %s,
				user_id BIGINT NOT NULL,
				word_id BIGINT NOT NULL,
				assigned_at TIMESTAMP NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (word_id) REFERENCES words(id),
				UNIQUE(user_id, word_id)
			)
		`, pk),
		`CREATE INDEX IF NOT EXISTS idx_assignments_user_time ON assignments(user_id, assigned_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
