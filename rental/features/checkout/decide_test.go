package checkout_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/rental/features/checkout"
	"github.com/AntonStoeckl/videorental/store"
)

func Test_Decide_Success_WhenCopiesAreAvailable(t *testing.T) {
	// arrange
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	video := givenVideo(2)
	customerID := uuid.New()
	openRentals := store.Rentals{givenOpenRental(video.ID, uuid.New(), now.Add(-time.Hour))}

	command := checkout.BuildCommand(video.ID, customerID, now)

	// act
	result := checkout.Decide(video, openRentals, command, core.DefaultLoanPeriod)

	// assert
	assert.NoError(t, result.HasError())
	assert.Equal(t, video.ID, result.Rental.VideoID)
	assert.Equal(t, customerID, result.Rental.CustomerID)
	assert.True(t, result.Rental.IsCheckedOut)
	assert.Nil(t, result.Rental.CheckedInAt)
	assert.True(t, result.Rental.CheckedOutAt.Equal(now))
	assert.True(t, result.Rental.DueDate.Equal(now.Add(7*24*time.Hour)))
	assert.Equal(t, core.Inventory{Total: 2, OpenRentals: 2, Available: 0}, result.Inventory)
}

func Test_Decide_Success_CustomerAlreadyHasThisVideo(t *testing.T) {
	// arrange
	now := time.Now()
	video := givenVideo(2)
	customerID := uuid.New()
	openRentals := store.Rentals{givenOpenRental(video.ID, customerID, now.Add(-time.Hour))}

	// act
	result := checkout.Decide(video, openRentals, checkout.BuildCommand(video.ID, customerID, now), core.DefaultLoanPeriod)

	// assert
	assert.NoError(t, result.HasError(), "a checkout always creates a new rental")
	assert.Equal(t, 0, result.Inventory.Available)
}

func Test_Decide_UsesConfiguredLoanPeriod(t *testing.T) {
	now := time.Now()
	video := givenVideo(1)

	result := checkout.Decide(video, nil, checkout.BuildCommand(video.ID, uuid.New(), now), 3*24*time.Hour)

	assert.True(t, result.Rental.DueDate.Equal(store.ToStoredTime(now.Add(3*24*time.Hour))))
}

func Test_Decide_Error_WhenNoCopyIsAvailable(t *testing.T) {
	// arrange
	now := time.Now()
	video := givenVideo(1)
	openRentals := store.Rentals{givenOpenRental(video.ID, uuid.New(), now.Add(-time.Hour))}

	// act
	result := checkout.Decide(video, openRentals, checkout.BuildCommand(video.ID, uuid.New(), now), core.DefaultLoanPeriod)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInventoryExhausted)
	assert.Equal(t, store.Rental{}, result.Rental)
	assert.Equal(t, core.Inventory{Total: 1, OpenRentals: 1, Available: 0}, result.Inventory)
}

func Test_Decide_Error_WhenVideoHasNoInventory(t *testing.T) {
	video := givenVideo(0)

	result := checkout.Decide(video, nil, checkout.BuildCommand(video.ID, uuid.New(), time.Now()), core.DefaultLoanPeriod)

	assert.ErrorIs(t, result.HasError(), core.ErrInventoryExhausted)
}

func Test_Decide_Error_WhenInventoryIsInconsistent(t *testing.T) {
	// arrange
	now := time.Now()
	video := givenVideo(1)
	openRentals := store.Rentals{
		givenOpenRental(video.ID, uuid.New(), now.Add(-2*time.Hour)),
		givenOpenRental(video.ID, uuid.New(), now.Add(-time.Hour)),
	}

	// act
	result := checkout.Decide(video, openRentals, checkout.BuildCommand(video.ID, uuid.New(), now), core.DefaultLoanPeriod)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInventoryExhausted)
	assert.True(t, result.Inventory.Inconsistent)
	assert.Equal(t, 0, result.Inventory.Available)
}

func Test_Command_Validate(t *testing.T) {
	assert.NoError(t, checkout.BuildCommand(uuid.New(), uuid.New(), time.Now()).Validate())
	assert.ErrorIs(t, checkout.BuildCommand(uuid.Nil, uuid.New(), time.Now()).Validate(), core.ErrValidation)
	assert.ErrorIs(t, checkout.BuildCommand(uuid.New(), uuid.Nil, time.Now()).Validate(), core.ErrValidation)
}

func givenVideo(totalInventory int) store.Video {
	return store.Video{ID: uuid.New(), Title: "Arrival", ReleaseDate: "2016-11-11", TotalInventory: totalInventory}
}

func givenOpenRental(videoID uuid.UUID, customerID uuid.UUID, checkedOutAt time.Time) store.Rental {
	rental := store.BuildOpenRental(videoID, customerID, checkedOutAt, checkedOutAt.Add(core.DefaultLoanPeriod))
	rental.ID = uuid.New()

	return rental
}
