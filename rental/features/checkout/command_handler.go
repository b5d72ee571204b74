package checkout

import (
	"context"
	"time"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/rental/shell"
	"github.com/AntonStoeckl/videorental/store"
)

// Result is the outcome of a successful checkout.
type Result struct {
	shell.HandlerResult

	Rental store.Rental

	// AvailableInventory is the number of copies of the video still available after the checkout.
	AvailableInventory int

	// CustomerOpenRentals is the number of videos the customer has checked out, including this one.
	CustomerOpenRentals int
}

// CommandHandler orchestrates the checkout workflow: Lock -> Load -> Decide -> Write, in one transaction.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	transactor store.Transactor
	loanPeriod time.Duration
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithLoanPeriod overrides core.DefaultLoanPeriod. Non-positive values are ignored.
func WithLoanPeriod(loanPeriod time.Duration) Option {
	return func(h *CommandHandler) {
		if loanPeriod > 0 {
			h.loanPeriod = loanPeriod
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(transactor store.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		transactor: transactor,
		loanPeriod: core.DefaultLoanPeriod,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the checkout. Failures are store.ErrVideoNotFound, store.ErrCustomerNotFound,
// core.ErrInventoryExhausted, core.ErrValidation or a store.ErrStorage. Nothing is written on failure.
// The returned Result carries the observed inventory also when the checkout was rejected.
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

		openRentals, err := tx.OpenRentalsForVideo(ctx, video.ID)
		if err != nil {
			return err
		}

		decision := Decide(video, openRentals, command, h.loanPeriod)
		result.HandlerResult = shell.NewHandlerResult(video.ID, decision.Inventory)

		if decisionErr := decision.HasError(); decisionErr != nil {
			return decisionErr
		}

		rental, err := tx.CreateRental(ctx, decision.Rental)
		if err != nil {
			return err
		}

		customerRentals, err := tx.OpenRentalsForCustomer(ctx, command.CustomerID)
		if err != nil {
			return err
		}

		result.Rental = rental
		result.AvailableInventory = decision.Inventory.Available
		result.CustomerOpenRentals = len(customerRentals)

		return nil
	})
	if err != nil {
		return Result{HandlerResult: result.HandlerResult}, err
	}

	return result, nil
}
