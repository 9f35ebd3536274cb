package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrUnavailable marks failures to open or reach the local database file.
var ErrUnavailable = errors.New("storage unavailable")

// Open returns a handle with a single connection so that every transaction
// against the file is serialized.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %w", ErrUnavailable, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite database: %w", ErrUnavailable, err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: set busy timeout: %w", ErrUnavailable, err)
	}
	return db, nil
}
