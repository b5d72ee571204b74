package sqlengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/store"
	"github.com/AntonStoeckl/videorental/store/sqlengine/internal/adapters"
)

// runQuery executes the select statement and calls scanRow once per result row.
func (s Store) runQuery(
	ctx context.Context,
	q adapters.Querier,
	operation string,
	ds *goqu.SelectDataset,
	scanRow func(rows adapters.DBRows) error,
) error {

	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		return s.buildQueryFailed(ctx, operation, err)
	}

	start := time.Now()

	rows, err := q.Query(ctx, sqlQuery)
	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(ctx, operation, errorTypeQuery)
		return store.StorageError(store.ErrQueryingFailed, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}()

	rowCount := 0
	for rows.Next() {
		if scanErr := scanRow(rows); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr, logAttrQuery, sqlQuery)
			s.recordErrorMetrics(ctx, operation, errorTypeScan)
			return store.StorageError(store.ErrScanningDBRowFailed, scanErr)
		}
		rowCount++
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(ctx, operation, errorTypeQuery)
		return store.StorageError(store.ErrQueryingFailed, rowsErr)
	}

	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration, logAttrRowCount, rowCount)
	s.recordDurationMetrics(ctx, operation, duration, statusSuccess)

	return nil
}

// runExec executes a write statement and returns the number of affected rows.
func (s Store) runExec(ctx context.Context, q adapters.Querier, operation string, sqlQuery string) (int64, error) {
	start := time.Now()

	result, err := q.Exec(ctx, sqlQuery)
	if err != nil {
		s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		s.recordErrorMetrics(ctx, operation, errorTypeExec)
		return 0, store.StorageError(store.ErrWritingFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, err)
		s.recordErrorMetrics(ctx, operation, errorTypeRowsAffected)
		return 0, store.StorageError(store.ErrGettingRowsAffectedFailed, err)
	}

	duration := time.Since(start)
	s.logQueryWithDuration(ctx, sqlQuery, operation, duration, logAttrRowCount, rowsAffected)
	s.recordDurationMetrics(ctx, operation, duration, statusSuccess)

	return rowsAffected, nil
}

func (s Store) buildQueryFailed(ctx context.Context, operation string, err error) error {
	s.logError(ctx, logMsgBuildQueryFailed, err)
	s.recordErrorMetrics(ctx, operation, errorTypeBuildQuery)

	return store.StorageError(store.ErrBuildingQueryFailed, err)
}

func (s Store) queryVideos(ctx context.Context, q adapters.Querier, operation string, ds *goqu.SelectDataset) (store.Videos, error) {
	videos := store.Videos{}

	err := s.runQuery(ctx, q, operation, ds, func(rows adapters.DBRows) error {
		var id string
		var video store.Video

		if err := rows.Scan(&id, &video.Title, &video.ReleaseDate, &video.TotalInventory); err != nil {
			return err
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return err
		}

		video.ID = parsed
		videos = append(videos, video)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return videos, nil
}

func (s Store) queryCustomers(ctx context.Context, q adapters.Querier, operation string, ds *goqu.SelectDataset) (store.Customers, error) {
	customers := store.Customers{}

	err := s.runQuery(ctx, q, operation, ds, func(rows adapters.DBRows) error {
		var id string
		var registeredAt int64
		var customer store.Customer

		if err := rows.Scan(&id, &customer.Name, &customer.Phone, &customer.PostalCode, &registeredAt); err != nil {
			return err
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return err
		}

		customer.ID = parsed
		customer.RegisteredAt = fromUnixNanos(registeredAt)
		customers = append(customers, customer)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (s Store) queryRentals(ctx context.Context, q adapters.Querier, operation string, ds *goqu.SelectDataset) (store.Rentals, error) {
	rentals := store.Rentals{}

	err := s.runQuery(ctx, q, operation, ds, func(rows adapters.DBRows) error {
		rental, err := scanRental(rows)
		if err != nil {
			return err
		}

		rentals = append(rentals, rental)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rentals, nil
}

func scanRental(rows adapters.DBRows) (store.Rental, error) {
	var (
		id, videoID, customerID string
		checkedOutAt, dueDate   int64
		isCheckedOut            int
		checkedInAt             sql.NullInt64
	)

	if err := rows.Scan(&id, &videoID, &customerID, &checkedOutAt, &dueDate, &isCheckedOut, &checkedInAt); err != nil {
		return store.Rental{}, err
	}

	rental := store.Rental{
		CheckedOutAt: fromUnixNanos(checkedOutAt),
		DueDate:      fromUnixNanos(dueDate),
		IsCheckedOut: isCheckedOut == checkedOut,
	}

	var err error
	if rental.ID, err = uuid.Parse(id); err != nil {
		return store.Rental{}, err
	}

	if rental.VideoID, err = uuid.Parse(videoID); err != nil {
		return store.Rental{}, err
	}

	if rental.CustomerID, err = uuid.Parse(customerID); err != nil {
		return store.Rental{}, err
	}

	if checkedInAt.Valid {
		closedAt := fromUnixNanos(checkedInAt.Int64)
		rental.CheckedInAt = &closedAt
	}

	return rental, nil
}
