package helper

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/videorental/rental/shell/config"
	"github.com/AntonStoeckl/videorental/store"
	"github.com/AntonStoeckl/videorental/store/sqlengine"
)

// FixedNow is the reference timestamp used by tests that need a deterministic clock.
var FixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

// NewSQLiteStore creates a migrated sqlengine.Store backed by a fresh SQLite file in t.TempDir().
// The connection is closed when the test finishes.
func NewSQLiteStore(t testing.TB, options ...sqlengine.Option) sqlengine.Store {
	t.Helper()

	ctx := context.Background()

	db, err := config.OpenSQLiteDB(ctx, filepath.Join(t.TempDir(), "videostore.db"))
	require.NoError(t, err, "error in arranging test data")

	t.Cleanup(func() { _ = db.Close() })

	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)

	s, err := sqlengine.NewStoreFromSQLDB(db, options...)
	require.NoError(t, err, "error in arranging test data")

	require.NoError(t, s.Migrate(ctx), "error in arranging test data")

	return s
}

// GivenVideo stores a video with the given total inventory.
func GivenVideo(t testing.TB, ctx context.Context, s sqlengine.Store, totalInventory int) store.Video {
	t.Helper()

	video, err := s.CreateVideo(ctx, store.BuildVideo("Blade Runner", "1982-06-25", totalInventory))
	require.NoError(t, err, "error in arranging test data")

	return video
}

// GivenCustomer stores a customer.
func GivenCustomer(t testing.TB, ctx context.Context, s sqlengine.Store) store.Customer {
	t.Helper()

	customer, err := s.CreateCustomer(
		ctx,
		store.BuildCustomer("Shelley Rocha", "(533) 279-6614", "24309", FixedNow.Add(-30*24*time.Hour)),
	)
	require.NoError(t, err, "error in arranging test data")

	return customer
}

// GivenOpenRental stores a checked out rental directly, bypassing the lifecycle rules.
func GivenOpenRental(
	t testing.TB,
	ctx context.Context,
	s sqlengine.Store,
	videoID uuid.UUID,
	customerID uuid.UUID,
	checkedOutAt time.Time,
	dueDate time.Time,
) store.Rental {

	t.Helper()

	var rental store.Rental
	err := s.WithinTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		var createErr error
		rental, createErr = tx.CreateRental(ctx, store.BuildOpenRental(videoID, customerID, checkedOutAt, dueDate))

		return createErr
	})
	require.NoError(t, err, "error in arranging test data")

	return rental
}

// CloseRental checks the rental in at checkedInAt directly, bypassing the lifecycle rules.
func CloseRental(t testing.TB, ctx context.Context, s sqlengine.Store, rental store.Rental, checkedInAt time.Time) store.Rental {
	t.Helper()

	closed := rental.Closed(checkedInAt)
	err := s.WithinTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		return tx.UpdateRental(ctx, closed)
	})
	require.NoError(t, err, "error in arranging test data")

	return closed
}
