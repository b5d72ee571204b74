package sqlengine

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/videorental/store"
)

// schemaStatements returns the DDL for all tables and indexes. The column types are chosen so the
// same statements run on Postgres and SQLite: ids are TEXT, timestamps are BIGINT unix nanoseconds (UTC)
// and is_checked_out is an INTEGER holding 0 or 1.
func (s Store) schemaStatements() []string {
	t := s.tables

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	release_date TEXT NOT NULL,
	total_inventory INTEGER NOT NULL CHECK (total_inventory >= 0)
)`, t.videos),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT NOT NULL,
	postal_code TEXT NOT NULL,
	registered_at BIGINT NOT NULL
)`, t.customers),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL REFERENCES %s (id),
	customer_id TEXT NOT NULL REFERENCES %s (id),
	checked_out_at BIGINT NOT NULL,
	due_date BIGINT NOT NULL,
	is_checked_out INTEGER NOT NULL CHECK (is_checked_out IN (0, 1)),
	checked_in_at BIGINT
)`, t.rentals, t.videos, t.customers),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %srentals_video_open_idx ON %s (video_id, is_checked_out)`, t.prefix, t.rentals),
		fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %srentals_pair_open_idx ON %s (video_id, customer_id, is_checked_out, checked_out_at)`,
			t.prefix,
			t.rentals,
		),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %srentals_customer_idx ON %s (customer_id)`, t.prefix, t.rentals),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %srentals_due_date_idx ON %s (is_checked_out, due_date)`, t.prefix, t.rentals),
	}
}

// Migrate creates the tables and indexes if they do not exist yet. It is safe to call repeatedly.
// Statements are executed one at a time because not every driver accepts multi-statement strings.
func (s Store) Migrate(ctx context.Context) error {
	for _, statement := range s.schemaStatements() {
		if _, err := s.db.Exec(ctx, statement); err != nil {
			s.logError(ctx, logMsgMigrationFailed, err, logAttrQuery, statement)
			s.recordErrorMetrics(ctx, operationMigrate, errorTypeMigration)
			return store.StorageError(store.ErrMigrationFailed, err)
		}
	}

	s.logOperation(ctx, operationMigrate, logAttrTablePrefix, s.tables.prefix)

	return nil
}
