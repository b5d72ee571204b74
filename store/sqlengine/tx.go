package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/videorental/store"
	"github.com/AntonStoeckl/videorental/store/sqlengine/internal/adapters"
)

// WithinTransaction runs fn inside one database transaction.
//
// The transaction is committed when fn returns nil and rolled back when fn returns an error,
// panics, or ctx is canceled before the commit. Errors returned by fn are passed through unchanged.
func (s Store) WithinTransaction(ctx context.Context, fn store.TxFunc) error {
	return s.inTransaction(ctx, func(ctx context.Context, dbTx adapters.DBTx) error {
		return fn(ctx, &sqlTx{store: s, dbTx: dbTx})
	})
}

func (s Store) inTransaction(ctx context.Context, fn func(ctx context.Context, dbTx adapters.DBTx) error) error {
	start := time.Now()

	dbTx, err := s.db.BeginTx(ctx)
	if err != nil {
		s.logError(ctx, logMsgBeginTxFailed, err)
		s.recordErrorMetrics(ctx, operationTransaction, errorTypeBeginTx)
		return store.StorageError(store.ErrBeginningTxFailed, err)
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		// The rollback must still reach the database when ctx is already canceled.
		rollbackErr := dbTx.Rollback(context.WithoutCancel(ctx))
		if rollbackErr != nil && !isTxAlreadyClosed(rollbackErr) {
			s.logWarn(ctx, logMsgRollbackTxFailed, logAttrError, rollbackErr.Error())
		}
	}()

	if fnErr := fn(ctx, dbTx); fnErr != nil {
		s.recordDurationMetrics(ctx, operationTransaction, time.Since(start), statusRolledBack)
		return fnErr
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.recordDurationMetrics(ctx, operationTransaction, time.Since(start), statusRolledBack)
		return store.StorageError(store.ErrCommittingTxFailed, ctxErr)
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitTxFailed, commitErr)
		s.recordErrorMetrics(ctx, operationTransaction, errorTypeCommitTx)
		return store.StorageError(store.ErrCommittingTxFailed, commitErr)
	}

	committed = true
	s.recordDurationMetrics(ctx, operationTransaction, time.Since(start), statusCommitted)

	return nil
}

// isTxAlreadyClosed reports whether the driver already ended the transaction, e.g. after ctx was canceled.
func isTxAlreadyClosed(err error) bool {
	return errors.Is(err, sql.ErrTxDone) || errors.Is(err, pgx.ErrTxClosed)
}

// sqlTx implements store.Tx on top of a running database transaction.
type sqlTx struct {
	store Store
	dbTx  adapters.DBTx
}

func (t *sqlTx) LockVideo(ctx context.Context, videoID uuid.UUID) (store.Video, error) {
	return t.store.getVideo(ctx, t.dbTx, videoID, true)
}

func (t *sqlTx) GetCustomer(ctx context.Context, customerID uuid.UUID) (store.Customer, error) {
	return t.store.getCustomer(ctx, t.dbTx, customerID, false)
}

func (t *sqlTx) OpenRentalsForVideo(ctx context.Context, videoID uuid.UUID) (store.Rentals, error) {
	return t.store.openRentalsForVideo(ctx, t.dbTx, videoID)
}

func (t *sqlTx) OpenRentalsForCustomer(ctx context.Context, customerID uuid.UUID) (store.Rentals, error) {
	return t.store.openRentalsForCustomer(ctx, t.dbTx, customerID)
}

// OpenRentalsForPair also locks the returned rows on Postgres.
func (t *sqlTx) OpenRentalsForPair(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (store.Rentals, error) {
	return t.store.openRentalsForPair(ctx, t.dbTx, videoID, customerID, true)
}

func (t *sqlTx) CreateRental(ctx context.Context, rental store.Rental) (store.Rental, error) {
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}

	if err := t.store.insert(ctx, t.dbTx, operationCreateRental, t.store.tables.rentals, rental.ID, rentalRecord(rental)); err != nil {
		return store.Rental{}, err
	}

	t.store.logOperation(
		ctx,
		operationCreateRental,
		logAttrRentalID, rental.ID.String(),
		logAttrVideoID, rental.VideoID.String(),
		logAttrCustomerID, rental.CustomerID.String(),
	)

	return rental, nil
}

func (t *sqlTx) UpdateRental(ctx context.Context, rental store.Rental) error {
	err := t.store.update(
		ctx,
		t.dbTx,
		operationUpdateRental,
		t.store.tables.rentals,
		rental.ID,
		rentalRecord(rental),
		store.ErrRentalNotFound,
	)
	if err != nil {
		return err
	}

	t.store.logOperation(ctx, operationUpdateRental, logAttrRentalID, rental.ID.String())

	return nil
}
