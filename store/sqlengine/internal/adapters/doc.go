// Package adapters provide database adapter implementations for the SQL store.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the store to work with any supported connection type.
//
// Every adapter can begin a transaction. The returned DBTx offers the same Query and Exec
// methods as the adapter itself, so query code is written once against the Querier interface.
package adapters
