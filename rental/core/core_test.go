package core_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/store"
)

func Test_AvailableInventory_CountsOnlyOpenRentalsOfTheVideo(t *testing.T) {
	// arrange
	video := store.Video{ID: uuid.New(), TotalInventory: 3}
	otherVideoID := uuid.New()
	now := time.Now()

	rentals := store.Rentals{
		givenOpenRental(video.ID, now),
		givenOpenRental(video.ID, now),
		givenOpenRental(video.ID, now).Closed(now),
		givenOpenRental(otherVideoID, now),
	}

	// act
	inventory := core.AvailableInventory(video, rentals)

	// assert
	assert.Equal(t, core.Inventory{Total: 3, OpenRentals: 2, Available: 1}, inventory)
}

func Test_AvailableInventory_NoRentals(t *testing.T) {
	video := store.Video{ID: uuid.New(), TotalInventory: 2}

	inventory := core.AvailableInventory(video, nil)

	assert.Equal(t, 2, inventory.Available)
	assert.False(t, inventory.Inconsistent)
}

func Test_AvailableInventory_ZeroTotalInventory(t *testing.T) {
	video := store.Video{ID: uuid.New(), TotalInventory: 0}

	inventory := core.AvailableInventory(video, store.Rentals{})

	assert.Equal(t, 0, inventory.Available)
	assert.False(t, inventory.Inconsistent)
}

func Test_AvailableInventory_FlagsMoreOpenRentalsThanCopies(t *testing.T) {
	// arrange
	video := store.Video{ID: uuid.New(), TotalInventory: 1}
	now := time.Now()
	rentals := store.Rentals{givenOpenRental(video.ID, now), givenOpenRental(video.ID, now)}

	// act
	inventory := core.AvailableInventory(video, rentals)

	// assert
	assert.Equal(t, 0, inventory.Available, "available inventory is clamped to zero")
	assert.Equal(t, 2, inventory.OpenRentals)
	assert.True(t, inventory.Inconsistent)
}

func Test_DueDate_AddsLoanPeriod(t *testing.T) {
	checkedOutAt := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.March, 22, 10, 30, 0, 0, time.UTC), core.DueDate(checkedOutAt, core.DefaultLoanPeriod))
}

func Test_KindOf(t *testing.T) {
	testCases := []struct {
		err      error
		expected core.ErrorKind
	}{
		{err: nil, expected: core.KindNone},
		{err: fmt.Errorf("%w: video_id is required", core.ErrValidation), expected: core.KindValidation},
		{err: store.ErrVideoNotFound, expected: core.KindNotFound},
		{err: store.ErrCustomerNotFound, expected: core.KindNotFound},
		{err: core.ErrInventoryExhausted, expected: core.KindInventoryExhausted},
		{err: core.ErrNoOpenRental, expected: core.KindNoOpenRental},
		{err: store.ErrEntityInUse, expected: core.KindEntityInUse},
		{err: core.ErrDataInconsistency, expected: core.KindDataInconsistency},
		{err: store.StorageError(store.ErrWritingFailed, errors.New("disk full")), expected: core.KindStorage},
		{err: errors.New("something else"), expected: core.KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(string(tc.expected), func(t *testing.T) {
			assert.Equal(t, tc.expected, core.KindOf(tc.err))
		})
	}
}

func Test_DecisionResult_HasError(t *testing.T) {
	success := core.SuccessDecision(store.Rental{}, core.Inventory{})
	failure := core.ErrorDecision(core.Inventory{}, core.ErrInventoryExhausted)

	assert.NoError(t, success.HasError())
	assert.ErrorIs(t, failure.HasError(), core.ErrInventoryExhausted)
}

func givenOpenRental(videoID uuid.UUID, checkedOutAt time.Time) store.Rental {
	return store.BuildOpenRental(videoID, uuid.New(), checkedOutAt, core.DueDate(checkedOutAt, core.DefaultLoanPeriod))
}
