package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/store"
	"github.com/AntonStoeckl/videorental/store/sqlengine/internal/adapters"
)

const (
	tableVideos    = "videos"
	tableCustomers = "customers"
	tableRentals   = "rentals"

	colID             = "id"
	colTitle          = "title"
	colReleaseDate    = "release_date"
	colTotalInventory = "total_inventory"
	colName           = "name"
	colPhone          = "phone"
	colPostalCode     = "postal_code"
	colRegisteredAt   = "registered_at"
	colVideoID        = "video_id"
	colCustomerID     = "customer_id"
	colCheckedOutAt   = "checked_out_at"
	colDueDate        = "due_date"
	colIsCheckedOut   = "is_checked_out"
	colCheckedInAt    = "checked_in_at"
	aliasRefCount     = "ref_count"

	checkedOut = 1
	checkedIn  = 0
)

const (
	operationGetVideo            = "get_video"
	operationLockVideo           = "lock_video"
	operationListVideos          = "list_videos"
	operationCreateVideo         = "create_video"
	operationUpdateVideo         = "update_video"
	operationDeleteVideo         = "delete_video"
	operationGetCustomer         = "get_customer"
	operationListCustomers       = "list_customers"
	operationCreateCustomer      = "create_customer"
	operationUpdateCustomer      = "update_customer"
	operationDeleteCustomer      = "delete_customer"
	operationCountReferences     = "count_references"
	operationGetRental           = "get_rental"
	operationListRentals         = "list_rentals"
	operationRentalsForVideo     = "rentals_for_video"
	operationRentalsForCustomer  = "rentals_for_customer"
	operationOpenRentalsForVideo = "open_rentals_for_video"
	operationOpenRentalsForCust  = "open_rentals_for_customer"
	operationOpenRentalsForPair  = "open_rentals_for_pair"
	operationOpenRentals         = "open_rentals"
	operationOverdueRentals      = "overdue_rentals"
	operationCreateRental        = "create_rental"
	operationUpdateRental        = "update_rental"
	operationMigrate             = "migrate"
	operationTransaction         = "transaction"
)

type tableNames struct {
	prefix    string
	videos    string
	customers string
	rentals   string
}

func newTableNames(prefix string) tableNames {
	return tableNames{
		prefix:    prefix,
		videos:    prefix + tableVideos,
		customers: prefix + tableCustomers,
		rentals:   prefix + tableRentals,
	}
}

func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(s.dialect)
}

func (s Store) selectVideos() *goqu.SelectDataset {
	return s.builder().
		From(s.tables.videos).
		Select(colID, colTitle, colReleaseDate, colTotalInventory)
}

func (s Store) selectCustomers() *goqu.SelectDataset {
	return s.builder().
		From(s.tables.customers).
		Select(colID, colName, colPhone, colPostalCode, colRegisteredAt)
}

func (s Store) selectRentals() *goqu.SelectDataset {
	return s.builder().
		From(s.tables.rentals).
		Select(colID, colVideoID, colCustomerID, colCheckedOutAt, colDueDate, colIsCheckedOut, colCheckedInAt)
}

// forUpdate adds a row lock on dialects that support one. SQLite has no row locks.
func (s Store) forUpdate(ds *goqu.SelectDataset, lock bool) *goqu.SelectDataset {
	if lock && s.dialect == DialectPostgres {
		return ds.ForUpdate(exp.Wait)
	}

	return ds
}

func newestFirst() []exp.OrderedExpression {
	return []exp.OrderedExpression{goqu.C(colCheckedOutAt).Desc(), goqu.C(colID).Desc()}
}

func oldestFirst() []exp.OrderedExpression {
	return []exp.OrderedExpression{goqu.C(colCheckedOutAt).Asc(), goqu.C(colID).Asc()}
}

func byDueDate() []exp.OrderedExpression {
	return []exp.OrderedExpression{goqu.C(colDueDate).Asc(), goqu.C(colID).Asc()}
}

func videoRecord(video store.Video) goqu.Record {
	return goqu.Record{
		colTitle:          video.Title,
		colReleaseDate:    video.ReleaseDate,
		colTotalInventory: video.TotalInventory,
	}
}

func customerRecord(customer store.Customer) goqu.Record {
	return goqu.Record{
		colName:         customer.Name,
		colPhone:        customer.Phone,
		colPostalCode:   customer.PostalCode,
		colRegisteredAt: toUnixNanos(customer.RegisteredAt),
	}
}

func rentalRecord(rental store.Rental) goqu.Record {
	isCheckedOut := checkedIn
	if rental.IsCheckedOut {
		isCheckedOut = checkedOut
	}

	var checkedInAt any
	if rental.CheckedInAt != nil {
		checkedInAt = toUnixNanos(*rental.CheckedInAt)
	}

	return goqu.Record{
		colVideoID:      rental.VideoID.String(),
		colCustomerID:   rental.CustomerID.String(),
		colCheckedOutAt: toUnixNanos(rental.CheckedOutAt),
		colDueDate:      toUnixNanos(rental.DueDate),
		colIsCheckedOut: isCheckedOut,
		colCheckedInAt:  checkedInAt,
	}
}

func toUnixNanos(t time.Time) int64 {
	return store.ToStoredTime(t).UnixNano()
}

func fromUnixNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func (s Store) getVideo(ctx context.Context, q adapters.Querier, videoID uuid.UUID, lock bool) (store.Video, error) {
	operation := operationGetVideo
	if lock {
		operation = operationLockVideo
	}

	videos, err := s.queryVideos(
		ctx,
		q,
		operation,
		s.forUpdate(s.selectVideos().Where(goqu.Ex{colID: videoID.String()}), lock),
	)
	if err != nil {
		return store.Video{}, err
	}

	if len(videos) == 0 {
		return store.Video{}, store.ErrVideoNotFound
	}

	return videos[0], nil
}

func (s Store) getCustomer(ctx context.Context, q adapters.Querier, customerID uuid.UUID, lock bool) (store.Customer, error) {
	customers, err := s.queryCustomers(
		ctx,
		q,
		operationGetCustomer,
		s.forUpdate(s.selectCustomers().Where(goqu.Ex{colID: customerID.String()}), lock),
	)
	if err != nil {
		return store.Customer{}, err
	}

	if len(customers) == 0 {
		return store.Customer{}, store.ErrCustomerNotFound
	}

	return customers[0], nil
}

func (s Store) openRentalsForVideo(ctx context.Context, q adapters.Querier, videoID uuid.UUID) (store.Rentals, error) {
	return s.queryRentals(
		ctx,
		q,
		operationOpenRentalsForVideo,
		s.selectRentals().
			Where(goqu.Ex{colVideoID: videoID.String(), colIsCheckedOut: checkedOut}).
			Order(oldestFirst()...),
	)
}

func (s Store) openRentalsForCustomer(ctx context.Context, q adapters.Querier, customerID uuid.UUID) (store.Rentals, error) {
	return s.queryRentals(
		ctx,
		q,
		operationOpenRentalsForCust,
		s.selectRentals().
			Where(goqu.Ex{colCustomerID: customerID.String(), colIsCheckedOut: checkedOut}).
			Order(oldestFirst()...),
	)
}

func (s Store) openRentalsForPair(
	ctx context.Context,
	q adapters.Querier,
	videoID uuid.UUID,
	customerID uuid.UUID,
	lock bool,
) (store.Rentals, error) {

	ds := s.selectRentals().
		Where(goqu.Ex{
			colVideoID:      videoID.String(),
			colCustomerID:   customerID.String(),
			colIsCheckedOut: checkedOut,
		}).
		Order(oldestFirst()...)

	return s.queryRentals(ctx, q, operationOpenRentalsForPair, s.forUpdate(ds, lock))
}

// ensureUnreferenced fails with store.ErrEntityInUse if any rental, open or closed, references the id in column.
func (s Store) ensureUnreferenced(ctx context.Context, q adapters.Querier, column string, id uuid.UUID) error {
	ds := s.builder().
		From(s.tables.rentals).
		Select(goqu.COUNT(goqu.Star()).As(aliasRefCount)).
		Where(goqu.Ex{column: id.String()})

	var refCount int64
	err := s.runQuery(ctx, q, operationCountReferences, ds, func(rows adapters.DBRows) error {
		return rows.Scan(&refCount)
	})
	if err != nil {
		return err
	}

	if refCount > 0 {
		return store.ErrEntityInUse
	}

	return nil
}

func (s Store) insert(ctx context.Context, q adapters.Querier, operation string, table string, id uuid.UUID, record goqu.Record) error {
	record[colID] = id.String()

	sqlQuery, _, err := s.builder().Insert(table).Rows(record).ToSQL()
	if err != nil {
		return s.buildQueryFailed(ctx, operation, err)
	}

	_, err = s.runExec(ctx, q, operation, sqlQuery)

	return err
}

func (s Store) update(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	table string,
	id uuid.UUID,
	record goqu.Record,
	errNotFound error,
) error {

	sqlQuery, _, err := s.builder().Update(table).Set(record).Where(goqu.Ex{colID: id.String()}).ToSQL()
	if err != nil {
		return s.buildQueryFailed(ctx, operation, err)
	}

	rowsAffected, err := s.runExec(ctx, q, operation, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errNotFound
	}

	return nil
}

func (s Store) delete(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	table string,
	id uuid.UUID,
	errNotFound error,
) error {

	sqlQuery, _, err := s.builder().Delete(table).Where(goqu.Ex{colID: id.String()}).ToSQL()
	if err != nil {
		return s.buildQueryFailed(ctx, operation, err)
	}

	rowsAffected, err := s.runExec(ctx, q, operation, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errNotFound
	}

	return nil
}
