package sqlengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/videorental/store"
	"github.com/AntonStoeckl/videorental/store/sqlengine/internal/adapters"
)

const (
	logMsgBuildQueryFailed   = "failed to build sql query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database statement execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgBeginTxFailed      = "failed to begin transaction"
	logMsgCommitTxFailed     = "failed to commit transaction"
	logMsgRollbackTxFailed   = "failed to roll back transaction"
	logMsgMigrationFailed    = "schema migration failed"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "store operation: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrDurationMS        = "duration_ms"
	logAttrRowCount          = "row_count"
	logAttrVideoID           = "video_id"
	logAttrCustomerID        = "customer_id"
	logAttrRentalID          = "rental_id"
	logAttrTablePrefix       = "table_prefix"
)

// Store is the SQL backed persistence for videos, customers and rentals.
type Store struct {
	db               adapters.DBAdapter
	dialect          string
	tables           tableNames
	logger           store.Logger
	contextualLogger store.ContextualLogger
	metricsCollector store.MetricsCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
// Pass WithDialect(DialectSQLite) for a modernc.org/sqlite connection.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:      db,
		dialect: DialectPostgres,
		tables:  newTableNames(""),
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// GetVideo returns the video with the given id or store.ErrVideoNotFound.
func (s Store) GetVideo(ctx context.Context, videoID uuid.UUID) (store.Video, error) {
	return s.getVideo(ctx, s.db, videoID, false)
}

// ListVideos returns all videos ordered by title.
func (s Store) ListVideos(ctx context.Context) (store.Videos, error) {
	return s.queryVideos(ctx, s.db, operationListVideos, s.selectVideos().Order(goqu.C(colTitle).Asc(), goqu.C(colID).Asc()))
}

// CreateVideo inserts the video and returns it with its assigned id.
func (s Store) CreateVideo(ctx context.Context, video store.Video) (store.Video, error) {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}

	if err := s.insert(ctx, s.db, operationCreateVideo, s.tables.videos, video.ID, videoRecord(video)); err != nil {
		return store.Video{}, err
	}

	s.logOperation(ctx, operationCreateVideo, logAttrVideoID, video.ID.String())

	return video, nil
}

// UpdateVideo overwrites title, release date and total inventory of an existing video.
func (s Store) UpdateVideo(ctx context.Context, video store.Video) error {
	return s.update(ctx, s.db, operationUpdateVideo, s.tables.videos, video.ID, videoRecord(video), store.ErrVideoNotFound)
}

// DeleteVideo removes a video that has never been rented.
// Videos with rental history are kept and store.ErrEntityInUse is returned.
func (s Store) DeleteVideo(ctx context.Context, videoID uuid.UUID) error {
	return s.inTransaction(ctx, func(ctx context.Context, q adapters.DBTx) error {
		if _, err := s.getVideo(ctx, q, videoID, true); err != nil {
			return err
		}

		if err := s.ensureUnreferenced(ctx, q, colVideoID, videoID); err != nil {
			return err
		}

		return s.delete(ctx, q, operationDeleteVideo, s.tables.videos, videoID, store.ErrVideoNotFound)
	})
}

// GetCustomer returns the customer with the given id or store.ErrCustomerNotFound.
func (s Store) GetCustomer(ctx context.Context, customerID uuid.UUID) (store.Customer, error) {
	return s.getCustomer(ctx, s.db, customerID, false)
}

// ListCustomers returns all customers ordered by name.
func (s Store) ListCustomers(ctx context.Context) (store.Customers, error) {
	return s.queryCustomers(ctx, s.db, operationListCustomers, s.selectCustomers().Order(goqu.C(colName).Asc(), goqu.C(colID).Asc()))
}

// CreateCustomer inserts the customer and returns it with its assigned id and registration timestamp.
func (s Store) CreateCustomer(ctx context.Context, customer store.Customer) (store.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	if customer.RegisteredAt.IsZero() {
		customer.RegisteredAt = time.Now()
	}

	customer.RegisteredAt = store.ToStoredTime(customer.RegisteredAt)

	if err := s.insert(ctx, s.db, operationCreateCustomer, s.tables.customers, customer.ID, customerRecord(customer)); err != nil {
		return store.Customer{}, err
	}

	s.logOperation(ctx, operationCreateCustomer, logAttrCustomerID, customer.ID.String())

	return customer, nil
}

// UpdateCustomer overwrites name, phone and postal code of an existing customer. RegisteredAt is immutable.
func (s Store) UpdateCustomer(ctx context.Context, customer store.Customer) error {
	record := customerRecord(customer)
	delete(record, colRegisteredAt)

	return s.update(ctx, s.db, operationUpdateCustomer, s.tables.customers, customer.ID, record, store.ErrCustomerNotFound)
}

// DeleteCustomer removes a customer that has never rented anything.
// Customers with rental history are kept and store.ErrEntityInUse is returned.
func (s Store) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	return s.inTransaction(ctx, func(ctx context.Context, q adapters.DBTx) error {
		if _, err := s.getCustomer(ctx, q, customerID, true); err != nil {
			return err
		}

		if err := s.ensureUnreferenced(ctx, q, colCustomerID, customerID); err != nil {
			return err
		}

		return s.delete(ctx, q, operationDeleteCustomer, s.tables.customers, customerID, store.ErrCustomerNotFound)
	})
}

// GetRental returns the rental with the given id or store.ErrRentalNotFound.
func (s Store) GetRental(ctx context.Context, rentalID uuid.UUID) (store.Rental, error) {
	rentals, err := s.queryRentals(ctx, s.db, operationGetRental, s.selectRentals().Where(goqu.Ex{colID: rentalID.String()}))
	if err != nil {
		return store.Rental{}, err
	}

	if len(rentals) == 0 {
		return store.Rental{}, store.ErrRentalNotFound
	}

	return rentals[0], nil
}

// ListRentals returns all rentals, newest checkout first.
func (s Store) ListRentals(ctx context.Context) (store.Rentals, error) {
	return s.queryRentals(ctx, s.db, operationListRentals, s.selectRentals().Order(newestFirst()...))
}

// RentalsForVideo returns the rental history of a video, newest checkout first.
// It returns an empty slice for an unknown video; callers check existence first where it matters.
func (s Store) RentalsForVideo(ctx context.Context, videoID uuid.UUID) (store.Rentals, error) {
	return s.queryRentals(
		ctx,
		s.db,
		operationRentalsForVideo,
		s.selectRentals().Where(goqu.Ex{colVideoID: videoID.String()}).Order(newestFirst()...),
	)
}

// RentalsForCustomer returns the rental history of a customer, newest checkout first.
func (s Store) RentalsForCustomer(ctx context.Context, customerID uuid.UUID) (store.Rentals, error) {
	return s.queryRentals(
		ctx,
		s.db,
		operationRentalsForCustomer,
		s.selectRentals().Where(goqu.Ex{colCustomerID: customerID.String()}).Order(newestFirst()...),
	)
}

// OpenRentalsForVideo returns the currently checked out rentals of a video.
func (s Store) OpenRentalsForVideo(ctx context.Context, videoID uuid.UUID) (store.Rentals, error) {
	return s.openRentalsForVideo(ctx, s.db, videoID)
}

// OpenRentalsForPair returns the open rentals of the (video, customer) pair, oldest checkout first.
func (s Store) OpenRentalsForPair(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (store.Rentals, error) {
	return s.openRentalsForPair(ctx, s.db, videoID, customerID, false)
}

// OpenRentals returns all currently checked out rentals ordered by due date.
func (s Store) OpenRentals(ctx context.Context) (store.Rentals, error) {
	return s.queryRentals(
		ctx,
		s.db,
		operationOpenRentals,
		s.selectRentals().Where(goqu.Ex{colIsCheckedOut: checkedOut}).Order(byDueDate()...),
	)
}

// OverdueRentals returns open rentals whose due date is before asOf, ordered by due date.
func (s Store) OverdueRentals(ctx context.Context, asOf time.Time) (store.Rentals, error) {
	return s.queryRentals(
		ctx,
		s.db,
		operationOverdueRentals,
		s.selectRentals().
			Where(goqu.Ex{colIsCheckedOut: checkedOut}, goqu.C(colDueDate).Lt(toUnixNanos(asOf))).
			Order(byDueDate()...),
	)
}
