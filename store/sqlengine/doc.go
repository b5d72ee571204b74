// Package sqlengine provides a SQL implementation of the video store persistence layer.
//
// The Store keeps videos, customers and rentals in three relational tables linked by foreign keys.
// All SQL is built with goqu and executed through one of the supported connection types:
//
//	db, _ := pgxpool.New(ctx, dsn)
//	s, _ := sqlengine.NewStoreFromPGXPool(db, sqlengine.WithLogger(slog.Default()))
//
//	sqliteDB, _ := sql.Open("sqlite", path)
//	s, _ := sqlengine.NewStoreFromSQLDB(sqliteDB, sqlengine.WithDialect(sqlengine.DialectSQLite))
//
// Call Migrate once to create the tables. Multi-step writes run inside WithinTransaction,
// which hands an explicit store.Tx to the callback and commits or rolls back on every exit path.
// On Postgres the transactional reads lock the rows they return (SELECT ... FOR UPDATE).
// SQLite serializes writers itself, so callers are expected to use a single connection.
package sqlengine
