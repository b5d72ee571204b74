package checkin

import (
	"context"

	"github.com/AntonStoeckl/videorental/rental/shell"
	"github.com/AntonStoeckl/videorental/store"
)

// Result is the outcome of a successful checkin.
type Result struct {
	shell.HandlerResult

	// Rental is the rental that was closed.
	Rental store.Rental

	// AvailableInventory is the number of copies of the video available after the checkin.
	AvailableInventory int

	// CustomerOpenRentals is the number of videos the customer still has checked out.
	CustomerOpenRentals int
}

// CommandHandler orchestrates the checkin workflow: Lock -> Load -> Decide -> Write, in one transaction.
type CommandHandler struct {
	transactor store.Transactor
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(transactor store.Transactor) CommandHandler {
	return CommandHandler{transactor: transactor}
}

// Handle executes the checkin. Failures are store.ErrVideoNotFound, store.ErrCustomerNotFound,
// core.ErrNoOpenRental, core.ErrValidation or a store.ErrStorage. Nothing is written on failure.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := command.Validate(); err != nil {
		return Result{}, err
	}

	var result Result

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		video, err := tx.LockVideo(ctx, command.VideoID)
		if err != nil {
			return err
		}

		if _, err = tx.GetCustomer(ctx, command.CustomerID); err != nil {
			return err
		}

		pairOpenRentals, err := tx.OpenRentalsForPair(ctx, command.VideoID, command.CustomerID)
		if err != nil {
			return err
		}

		videoOpenRentals, err := tx.OpenRentalsForVideo(ctx, video.ID)
		if err != nil {
			return err
		}

		decision := Decide(video, pairOpenRentals, videoOpenRentals, command)
		result.HandlerResult = shell.NewHandlerResult(video.ID, decision.Inventory)

		if decisionErr := decision.HasError(); decisionErr != nil {
			return decisionErr
		}

		if err = tx.UpdateRental(ctx, decision.Rental); err != nil {
			return err
		}

		customerRentals, err := tx.OpenRentalsForCustomer(ctx, command.CustomerID)
		if err != nil {
			return err
		}

		result.Rental = decision.Rental
		result.AvailableInventory = decision.Inventory.Available
		result.CustomerOpenRentals = len(customerRentals)

		return nil
	})
	if err != nil {
		return Result{HandlerResult: result.HandlerResult}, err
	}

	return result, nil
}
