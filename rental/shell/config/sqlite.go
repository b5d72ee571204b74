package config

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "modernc.org/sqlite" // sqlite driver
)

// Applied by the driver to every new connection, so they survive a discarded connection.
const sqliteConnectionPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenSQLiteDB opens the SQLite database file at path with foreign keys enforced.
//
// The pool is limited to one connection. SQLite allows a single writer, and with one connection
// concurrent transactions queue up in database/sql instead of failing with SQLITE_BUSY.
func OpenSQLiteDB(ctx context.Context, path string) (*sql.DB, error) {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	db, err := sql.Open("sqlite", path+separator+sqliteConnectionPragmas)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, execErr := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); execErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, execErr)
	}

	return db, nil
}
