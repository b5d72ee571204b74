package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/videorental/store"
)

func Test_BuildOpenRental_NormalizesTimestamps(t *testing.T) {
	// arrange
	local := time.FixedZone("CET", 3600)
	checkedOutAt := time.Date(2024, time.March, 15, 11, 30, 0, 123456789, local)
	dueDate := checkedOutAt.Add(7 * 24 * time.Hour)

	// act
	rental := store.BuildOpenRental(uuid.New(), uuid.New(), checkedOutAt, dueDate)

	// assert
	assert.True(t, rental.IsCheckedOut)
	assert.Nil(t, rental.CheckedInAt)
	assert.Equal(t, time.UTC, rental.CheckedOutAt.Location())
	assert.Equal(t, 123456000, rental.CheckedOutAt.Nanosecond())
	assert.True(t, rental.CheckedOutAt.Equal(checkedOutAt.Truncate(time.Microsecond)))
	assert.True(t, rental.DueDate.Equal(dueDate.Truncate(time.Microsecond)))
}

func Test_Rental_Closed(t *testing.T) {
	// arrange
	checkedOutAt := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	rental := store.BuildOpenRental(uuid.New(), uuid.New(), checkedOutAt, checkedOutAt.Add(48*time.Hour))
	checkedInAt := checkedOutAt.Add(24 * time.Hour)

	// act
	closed := rental.Closed(checkedInAt)

	// assert
	assert.False(t, closed.IsCheckedOut)
	if assert.NotNil(t, closed.CheckedInAt) {
		assert.True(t, closed.CheckedInAt.Equal(checkedInAt))
	}
	assert.True(t, rental.IsCheckedOut, "the original rental must stay untouched")
	assert.Nil(t, rental.CheckedInAt, "the original rental must stay untouched")
}

func Test_Rental_IsOverdueAt(t *testing.T) {
	checkedOutAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	dueDate := checkedOutAt.Add(7 * 24 * time.Hour)
	open := store.BuildOpenRental(uuid.New(), uuid.New(), checkedOutAt, dueDate)

	assert.False(t, open.IsOverdueAt(dueDate.Add(-time.Second)))
	assert.False(t, open.IsOverdueAt(dueDate))
	assert.True(t, open.IsOverdueAt(dueDate.Add(time.Second)))
	assert.False(t, open.Closed(dueDate).IsOverdueAt(dueDate.Add(time.Hour)), "closed rentals are never overdue")
}

func Test_StorageError_MatchesAllParts(t *testing.T) {
	// arrange
	cause := errors.New("connection reset by peer")

	// act
	err := store.StorageError(store.ErrQueryingFailed, cause)

	// assert
	assert.ErrorIs(t, err, store.ErrStorage)
	assert.ErrorIs(t, err, store.ErrQueryingFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, store.ErrWritingFailed)
}

func Test_NotFoundErrors_WrapErrNotFound(t *testing.T) {
	assert.ErrorIs(t, store.ErrVideoNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrCustomerNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrRentalNotFound, store.ErrNotFound)
	assert.NotErrorIs(t, store.ErrVideoNotFound, store.ErrCustomerNotFound)
}
