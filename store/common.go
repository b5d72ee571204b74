package store

import (
	"errors"
	"fmt"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyTablePrefix = errors.New("empty table prefix supplied")
var ErrInvalidTablePrefix = errors.New("table prefix may only contain lowercase letters, digits and underscores")
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

// ErrNotFound is returned when an id does not resolve to a stored record.
var ErrNotFound = errors.New("not found")

var (
	ErrVideoNotFound    = fmt.Errorf("video %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrRentalNotFound   = fmt.Errorf("rental %w", ErrNotFound)
)

// ErrEntityInUse is returned when deleting a video or customer that is referenced by rentals.
var ErrEntityInUse = errors.New("entity is referenced by rentals")

// ErrStorage marks every failure that originates in the database or its driver.
// It is always joined with one of the more specific sentinels below and the driver error.
var ErrStorage = errors.New("storage error")

var (
	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingFailed            = errors.New("querying failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrWritingFailed             = errors.New("writing failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrBeginningTxFailed         = errors.New("beginning transaction failed")
	ErrCommittingTxFailed        = errors.New("committing transaction failed")
	ErrMigrationFailed           = errors.New("schema migration failed")
)

// StorageError wraps a driver error so that errors.Is matches ErrStorage and the given sentinel.
func StorageError(sentinel error, cause error) error {
	return errors.Join(ErrStorage, sentinel, cause)
}
