package checkout

import (
	"time"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/store"
)

// Decide implements the business logic to determine whether a video can be checked out.
// This is a pure function with no side effects. It takes the video, its currently open rentals
// and the command, and returns the rental that should be created.
//
// Business Rules:
//
//	GIVEN: A video with VideoID and a customer with CustomerID
//	WHEN: CheckOutVideo command is received
//	THEN: a new open Rental is created, due at OccurredAt + loanPeriod
//	ERROR: ErrInventoryExhausted if no copy of the video is available
//
// A checkout always creates a new rental, also if the customer already has this video.
func Decide(video store.Video, openRentals store.Rentals, command Command, loanPeriod time.Duration) core.DecisionResult {
	inventory := core.AvailableInventory(video, openRentals)

	if inventory.Available <= 0 {
		return core.ErrorDecision(inventory, core.ErrInventoryExhausted)
	}

	rental := store.BuildOpenRental(
		video.ID,
		command.CustomerID,
		command.OccurredAt,
		core.DueDate(command.OccurredAt, loanPeriod),
	)

	after := inventory
	after.OpenRentals++
	after.Available--

	return core.SuccessDecision(rental, after)
}
