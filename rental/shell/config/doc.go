// Package config loads the video store configuration and opens database connections.
//
// Configuration is resolved by viper in this order: command line flags, VIDEOSTORE_* environment
// variables (dots become underscores, e.g. VIDEOSTORE_DATABASE_DSN), an optional YAML file passed
// with --config, and finally built-in defaults.
//
// The connection factories create pgx.Pool, sql.DB (lib/pq or modernc.org/sqlite) and sqlx.DB
// connections with pool settings tuned for the store, and NewStore wires the matching sqlengine.Store.
package config
