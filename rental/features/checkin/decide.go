package checkin

import (
	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/store"
)

// Decide implements the business logic to determine which rental a checkin closes.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A video with VideoID and a customer with CustomerID
//	WHEN: CheckInVideo command is received
//	THEN: the oldest open rental of this pair is closed at OccurredAt
//	ERROR: ErrNoOpenRental if the customer has no open rental of this video
//
// pairOpenRentals are the open rentals of this video by this customer, the candidates to close.
// videoOpenRentals are all open rentals of the video, they determine the resulting inventory.
func Decide(
	video store.Video,
	pairOpenRentals store.Rentals,
	videoOpenRentals store.Rentals,
	command Command,
) core.DecisionResult {

	candidate, found := oldestOpenRentalOfPair(pairOpenRentals, command)
	if !found {
		return core.ErrorDecision(core.AvailableInventory(video, videoOpenRentals), core.ErrNoOpenRental)
	}

	closed := candidate.Closed(command.OccurredAt)

	remaining := make(store.Rentals, 0, len(videoOpenRentals))
	for _, rental := range videoOpenRentals {
		if rental.ID != closed.ID {
			remaining = append(remaining, rental)
		}
	}

	return core.SuccessDecision(closed, core.AvailableInventory(video, remaining))
}

// oldestOpenRentalOfPair picks the open rental with the earliest checkout, ties broken by id.
func oldestOpenRentalOfPair(rentals store.Rentals, command Command) (store.Rental, bool) {
	var oldest store.Rental
	found := false

	for _, rental := range rentals {
		if !rental.IsCheckedOut || rental.VideoID != command.VideoID || rental.CustomerID != command.CustomerID {
			continue
		}

		if !found || isOlder(rental, oldest) {
			oldest = rental
			found = true
		}
	}

	return oldest, found
}

func isOlder(a store.Rental, b store.Rental) bool {
	if !a.CheckedOutAt.Equal(b.CheckedOutAt) {
		return a.CheckedOutAt.Before(b.CheckedOutAt)
	}

	return a.ID.String() < b.ID.String()
}
