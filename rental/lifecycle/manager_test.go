package lifecycle_test

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/rental/lifecycle"
	"github.com/AntonStoeckl/videorental/rental/shell"
	"github.com/AntonStoeckl/videorental/store"
	. "github.com/AntonStoeckl/videorental/testutil/helper" //nolint:revive
)

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current time and advances the clock by one minute.
func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now
	c.now = c.now.Add(time.Minute)

	return now
}

func newManager(t *testing.T, s lifecycle.Store, options ...lifecycle.Option) lifecycle.Manager {
	t.Helper()

	clock := &steppingClock{now: FixedNow}
	options = append([]lifecycle.Option{lifecycle.WithClock(clock.Now)}, options...)

	manager, err := lifecycle.NewManager(s, options...)
	require.NoError(t, err, "error in arranging test data")

	return manager
}

func Test_Manager_SingleCopy_CheckoutCheckoutCheckin(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 1)
	customerA := GivenCustomer(t, ctx, s)
	customerB := GivenCustomer(t, ctx, s)
	manager := newManager(t, s)

	// act
	checkedOut, checkoutAErr := manager.CheckOut(ctx, video.ID, customerA.ID)
	_, checkoutBErr := manager.CheckOut(ctx, video.ID, customerB.ID)
	checkedIn, checkinAErr := manager.CheckIn(ctx, video.ID, customerA.ID)

	// assert
	require.NoError(t, checkoutAErr)
	assert.Equal(t, 0, checkedOut.AvailableInventory)

	assert.ErrorIs(t, checkoutBErr, core.ErrInventoryExhausted)

	require.NoError(t, checkinAErr)
	assert.Equal(t, 1, checkedIn.AvailableInventory)
	assert.Equal(t, checkedOut.Rental.ID, checkedIn.Rental.ID)
}

func Test_Manager_CheckoutThenCheckin_RestoresAvailableInventory(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 4)
	customer := GivenCustomer(t, ctx, s)
	manager := newManager(t, s)

	before, err := manager.AvailableInventory(ctx, video.ID)
	require.NoError(t, err)

	// act
	_, checkoutErr := manager.CheckOut(ctx, video.ID, customer.ID)
	_, checkinErr := manager.CheckIn(ctx, video.ID, customer.ID)

	// assert
	require.NoError(t, checkoutErr)
	require.NoError(t, checkinErr)

	after, err := manager.AvailableInventory(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Inventory, after.Inventory)
}

func Test_Manager_CheckoutAtZeroAvailable_CreatesNoRental(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 0)
	customer := GivenCustomer(t, ctx, s)
	manager := newManager(t, s)

	// act
	_, err := manager.CheckOut(ctx, video.ID, customer.ID)

	// assert
	assert.ErrorIs(t, err, core.ErrInventoryExhausted)

	rentals, listErr := s.ListRentals(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, rentals)
}

func Test_Manager_CheckinWithoutOpenRental_ChangesNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 2)
	customer := GivenCustomer(t, ctx, s)
	other := GivenCustomer(t, ctx, s)
	manager := newManager(t, s)

	_, err := manager.CheckOut(ctx, video.ID, other.ID)
	require.NoError(t, err)

	before, err := s.ListRentals(ctx)
	require.NoError(t, err)

	// act
	_, err = manager.CheckIn(ctx, video.ID, customer.ID)

	// assert
	assert.ErrorIs(t, err, core.ErrNoOpenRental)

	after, listErr := s.ListRentals(ctx)
	require.NoError(t, listErr)
	assert.Equal(t, before, after)
}

func Test_Manager_DuplicateOpenRentals_CheckinClosesTheOldestOnly(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 2)
	customer := GivenCustomer(t, ctx, s)
	manager := newManager(t, s)

	first, err := manager.CheckOut(ctx, video.ID, customer.ID)
	require.NoError(t, err)
	second, err := manager.CheckOut(ctx, video.ID, customer.ID)
	require.NoError(t, err)
	require.True(t, first.Rental.CheckedOutAt.Before(second.Rental.CheckedOutAt))

	// act
	checkedIn, err := manager.CheckIn(ctx, video.ID, customer.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, first.Rental.ID, checkedIn.Rental.ID)
	assert.Equal(t, 1, checkedIn.CustomerOpenRentals)

	stillOpen, err := s.GetRental(ctx, second.Rental.ID)
	require.NoError(t, err)
	assert.True(t, stillOpen.IsCheckedOut)
}

func Test_Manager_SecondCheckin_FailsAndLeavesTheClosedRentalUnchanged(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 1)
	customer := GivenCustomer(t, ctx, s)
	manager := newManager(t, s)

	_, err := manager.CheckOut(ctx, video.ID, customer.ID)
	require.NoError(t, err)
	checkedIn, err := manager.CheckIn(ctx, video.ID, customer.ID)
	require.NoError(t, err)

	// act
	_, err = manager.CheckIn(ctx, video.ID, customer.ID)

	// assert
	assert.ErrorIs(t, err, core.ErrNoOpenRental)

	persisted, getErr := s.GetRental(ctx, checkedIn.Rental.ID)
	require.NoError(t, getErr)
	assert.False(t, persisted.IsCheckedOut)
	require.NotNil(t, persisted.CheckedInAt)
	assert.True(t, persisted.CheckedInAt.Equal(*checkedIn.Rental.CheckedInAt))
}

func Test_Manager_ConcurrentCheckouts_NeverOversubscribe(t *testing.T) {
	// arrange
	const copies = 3
	const attempts = 12

	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, copies)
	customerIDs := make([]uuid.UUID, attempts)
	for i := range customerIDs {
		customerIDs[i] = GivenCustomer(t, ctx, s).ID
	}
	manager := newManager(t, s)

	errs := make(chan error, attempts)
	var wg sync.WaitGroup

	// act
	for _, customerID := range customerIDs {
		wg.Add(1)
		go func(customerID uuid.UUID) {
			defer wg.Done()
			_, err := manager.CheckOut(ctx, video.ID, customerID)
			errs <- err
		}(customerID)
	}
	wg.Wait()
	close(errs)

	// assert
	succeeded, exhausted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case core.KindOf(err) == core.KindInventoryExhausted:
			exhausted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, copies, succeeded)
	assert.Equal(t, attempts-copies, exhausted)

	open, err := s.OpenRentalsForVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Len(t, open, copies)
}

func Test_Manager_AvailableInventory_StaysWithinBounds(t *testing.T) {
	// arrange
	const copies = 3

	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, copies)
	customers := []store.Customer{GivenCustomer(t, ctx, s), GivenCustomer(t, ctx, s), GivenCustomer(t, ctx, s)}
	manager := newManager(t, s)
	random := rand.New(rand.NewPCG(1, 2))

	// act / assert
	for i := 0; i < 60; i++ {
		customer := customers[random.IntN(len(customers))]

		if random.IntN(2) == 0 {
			_, err := manager.CheckOut(ctx, video.ID, customer.ID)
			if err != nil {
				require.ErrorIs(t, err, core.ErrInventoryExhausted)
			}
		} else {
			_, err := manager.CheckIn(ctx, video.ID, customer.ID)
			if err != nil {
				require.ErrorIs(t, err, core.ErrNoOpenRental)
			}
		}

		result, err := manager.AvailableInventory(ctx, video.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Inventory.Available, 0)
		assert.LessOrEqual(t, result.Inventory.Available, copies)
		assert.False(t, result.Inventory.Inconsistent)
	}
}

func Test_Manager_CheckOut_UsesConfiguredLoanPeriod(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 1)
	customer := GivenCustomer(t, ctx, s)
	manager := newManager(t, s, lifecycle.WithLoanPeriod(3*24*time.Hour))

	// act
	result, err := manager.CheckOut(ctx, video.ID, customer.ID)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Rental.CheckedOutAt.Equal(FixedNow))
	assert.True(t, result.Rental.DueDate.Equal(FixedNow.Add(3*24*time.Hour)))
}

func Test_Manager_OverdueRentals_UsesTheClock(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 2)
	customer := GivenCustomer(t, ctx, s)
	overdue := GivenOpenRental(t, ctx, s, video.ID, customer.ID, FixedNow.Add(-10*24*time.Hour), FixedNow.Add(-3*24*time.Hour))
	manager := newManager(t, s)

	// act
	result, err := manager.OverdueRentals(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, result.Rentals, 1)
	assert.Equal(t, overdue.ID, result.Rentals[0].Rental.ID)
}

func Test_Manager_LogsAndMeasuresEveryOperation(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := NewSQLiteStore(t)
	video := GivenVideo(t, ctx, s, 1)
	customer := GivenCustomer(t, ctx, s)
	logHandler := NewTestLogHandler(false)
	metrics := NewMetricsCollectorSpy()
	manager := newManager(t, s, lifecycle.WithContextualLogger(slog.New(logHandler)), lifecycle.WithMetrics(metrics))

	// act
	_, checkoutErr := manager.CheckOut(ctx, video.ID, customer.ID)
	_, checkinErr := manager.CheckIn(ctx, video.ID, customer.ID)
	_, queryErr := manager.AvailableInventory(ctx, video.ID)

	// assert
	require.NoError(t, checkoutErr)
	require.NoError(t, checkinErr)
	require.NoError(t, queryErr)

	assert.Equal(t, 1, metrics.CountCounterRecords(
		shell.CommandHandlerCallsMetric,
		map[string]string{shell.LogAttrCommandType: "CheckOutVideo", shell.LogAttrStatus: shell.StatusSuccess},
	))
	assert.Equal(t, 1, metrics.CountCounterRecords(
		shell.CommandHandlerCallsMetric,
		map[string]string{shell.LogAttrCommandType: "CheckInVideo", shell.LogAttrStatus: shell.StatusSuccess},
	))
	assert.Equal(t, 1, metrics.CountCounterRecords(
		shell.QueryHandlerCallsMetric,
		map[string]string{shell.LogAttrQueryType: "AvailableInventory", shell.LogAttrStatus: shell.StatusSuccess},
	))
	assert.True(t, logHandler.HasLog(slog.LevelInfo, shell.LogMsgCommandCompleted))
	assert.True(t, logHandler.HasLog(slog.LevelInfo, shell.LogMsgQueryCompleted))
}

func Test_NewManager_InvalidOptions(t *testing.T) {
	s := NewSQLiteStore(t)

	_, loanPeriodErr := lifecycle.NewManager(s, lifecycle.WithLoanPeriod(0))
	_, clockErr := lifecycle.NewManager(s, lifecycle.WithClock(nil))

	assert.ErrorIs(t, loanPeriodErr, lifecycle.ErrInvalidLoanPeriod)
	assert.ErrorIs(t, clockErr, lifecycle.ErrNilClock)
}
