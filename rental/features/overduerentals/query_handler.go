package overduerentals

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/shell"
	"github.com/AntonStoeckl/videorental/store"
)

// RentalReader is the part of the store the query needs.
type RentalReader interface {
	OverdueRentals(ctx context.Context, asOf time.Time) (store.Rentals, error)
	GetVideo(ctx context.Context, videoID uuid.UUID) (store.Video, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (store.Customer, error)
}

// OverdueRental is an open rental past its due date with the details needed to follow it up.
type OverdueRental struct {
	Rental             store.Rental
	Title              string
	CustomerName       string
	CustomerPostalCode string

	// OverdueBy is the time passed since the due date, relative to Query.AsOf.
	OverdueBy time.Duration
}

// Result lists the overdue rentals ordered by due date, most overdue first.
type Result struct {
	shell.HandlerResult

	AsOf    time.Time
	Rentals []OverdueRental
}

// QueryHandler answers overdue queries outside of a transaction.
type QueryHandler struct {
	reader RentalReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reader RentalReader) QueryHandler {
	return QueryHandler{reader: reader}
}

// Handle returns the overdue rentals as of query.AsOf. The result is never nil.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Result, error) {
	if err := query.Validate(); err != nil {
		return Result{}, err
	}

	rentals, err := h.reader.OverdueRentals(ctx, query.AsOf)
	if err != nil {
		return Result{}, err
	}

	videos := make(map[uuid.UUID]store.Video)
	customers := make(map[uuid.UUID]store.Customer)
	overdue := make([]OverdueRental, 0, len(rentals))

	for _, rental := range rentals {
		video, ok := videos[rental.VideoID]
		if !ok {
			if video, err = h.reader.GetVideo(ctx, rental.VideoID); err != nil {
				return Result{}, err
			}
			videos[rental.VideoID] = video
		}

		customer, ok := customers[rental.CustomerID]
		if !ok {
			if customer, err = h.reader.GetCustomer(ctx, rental.CustomerID); err != nil {
				return Result{}, err
			}
			customers[rental.CustomerID] = customer
		}

		overdue = append(overdue, OverdueRental{
			Rental:             rental,
			Title:              video.Title,
			CustomerName:       customer.Name,
			CustomerPostalCode: customer.PostalCode,
			OverdueBy:          query.AsOf.Sub(rental.DueDate),
		})
	}

	return Result{
		AsOf:    query.AsOf,
		Rentals: overdue,
	}, nil
}
