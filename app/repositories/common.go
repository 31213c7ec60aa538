package repositories

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT NOT NULL UNIQUE,
	subtitle  TEXT NOT NULL,
	date      TEXT NOT NULL,
	body      TEXT NOT NULL,
	img_url   TEXT NOT NULL,
	author_id INTEGER NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS comments (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	text      TEXT NOT NULL,
	author_id INTEGER NOT NULL REFERENCES users(id),
	post_id   INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE
);
`

// Open connects to the SQLite database at path and ensures the schema
// exists. Schema creation is idempotent; existing data is never touched.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %v", err)
	}

	return db, nil
}

// Reset drops all tables and recreates them empty. Development tool; the
// HTTP route exposing it is admin-guarded.
func Reset(db *sqlx.DB) error {
	drop := `
DROP TABLE IF EXISTS comments;
DROP TABLE IF EXISTS posts;
DROP TABLE IF EXISTS users;
`
	if _, err := db.Exec(drop); err != nil {
		return fmt.Errorf("failed to drop tables: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to recreate schema: %v", err)
	}
	return nil
}

// mapSQLiteError converts driver-level constraint violations into the
// package sentinel errors so callers can use errors.Is.
func mapSQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrDuplicate
		}
	}
	return err
}
