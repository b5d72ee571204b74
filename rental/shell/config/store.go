package config

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/videorental/store/sqlengine"
)

// CloseFunc releases the database connection behind a store.
type CloseFunc func() error

// NewStore opens the configured database and creates a sqlengine.Store on top of it.
// The table prefix from the config is applied; further options are appended.
func NewStore(ctx context.Context, cfg Database, options ...sqlengine.Option) (sqlengine.Store, CloseFunc, error) {
	if cfg.TablePrefix != "" {
		options = append([]sqlengine.Option{sqlengine.WithTablePrefix(cfg.TablePrefix)}, options...)
	}

	switch cfg.Driver {
	case DriverPGX:
		pool, err := NewPGXPool(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		s, err := sqlengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return sqlengine.Store{}, nil, err
		}

		closePool := func() error {
			pool.Close()
			return nil
		}

		return s, closePool, nil

	case DriverPostgres:
		db, err := NewPostgresSQLDB(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		s, err := sqlengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			return sqlengine.Store{}, nil, errors.Join(err, db.Close())
		}

		return s, db.Close, nil

	case DriverSQLX:
		db, err := NewPostgresSQLX(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		s, err := sqlengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			return sqlengine.Store{}, nil, errors.Join(err, db.Close())
		}

		return s, db.Close, nil

	case DriverSQLite:
		db, err := OpenSQLiteDB(ctx, cfg.DSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)

		s, err := sqlengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			return sqlengine.Store{}, nil, errors.Join(err, db.Close())
		}

		return s, db.Close, nil

	default:
		return sqlengine.Store{}, nil, ErrInvalidConfig
	}
}
