package store

import (
	"context"

	"github.com/google/uuid"
)

// TxFunc is the unit of work executed inside one transaction.
// Returning a non-nil error rolls the transaction back.
type TxFunc func(ctx context.Context, tx Tx) error

// Tx is an explicit transaction handle.
// It is only valid inside the TxFunc it was passed to.
type Tx interface {
	// LockVideo reads the video and, where the dialect supports it, locks its row until the transaction ends.
	LockVideo(ctx context.Context, videoID uuid.UUID) (Video, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (Customer, error)

	// OpenRentalsForVideo returns all rentals of the video that are currently checked out.
	OpenRentalsForVideo(ctx context.Context, videoID uuid.UUID) (Rentals, error)

	// OpenRentalsForCustomer returns all rentals of the customer that are currently checked out.
	OpenRentalsForCustomer(ctx context.Context, customerID uuid.UUID) (Rentals, error)

	// OpenRentalsForPair returns the open rentals of the (video, customer) pair ordered by checkout timestamp, oldest first.
	OpenRentalsForPair(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (Rentals, error)

	CreateRental(ctx context.Context, rental Rental) (Rental, error)
	UpdateRental(ctx context.Context, rental Rental) error
}

// Transactor runs a TxFunc atomically.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
