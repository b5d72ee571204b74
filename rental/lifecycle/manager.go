package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/core"
	"github.com/AntonStoeckl/videorental/rental/features/availableinventory"
	"github.com/AntonStoeckl/videorental/rental/features/checkin"
	"github.com/AntonStoeckl/videorental/rental/features/checkout"
	"github.com/AntonStoeckl/videorental/rental/features/overduerentals"
	"github.com/AntonStoeckl/videorental/rental/shell"
	"github.com/AntonStoeckl/videorental/rental/shell/observable"
	"github.com/AntonStoeckl/videorental/store"
)

// Store is everything the Manager needs from persistence. sqlengine.Store satisfies it.
type Store interface {
	store.Transactor
	availableinventory.VideoReader
	overduerentals.RentalReader
}

// Manager runs the rental lifecycle operations.
type Manager struct {
	checkOut     shell.CoreCommandHandler[checkout.Command, checkout.Result]
	checkIn      shell.CoreCommandHandler[checkin.Command, checkin.Result]
	availability shell.CoreQueryHandler[availableinventory.Query, availableinventory.Result]
	overdue      shell.CoreQueryHandler[overduerentals.Query, overduerentals.Result]
	clock        func() time.Time
}

// NewManager creates a Manager on top of s.
func NewManager(s Store, options ...Option) (Manager, error) {
	cfg := settings{
		loanPeriod: core.DefaultLoanPeriod,
		clock:      time.Now,
	}

	for _, option := range options {
		if err := option(&cfg); err != nil {
			return Manager{}, err
		}
	}

	checkOut, err := observable.NewCommandWrapper[checkout.Command, checkout.Result](
		checkout.NewCommandHandler(s, checkout.WithLoanPeriod(cfg.loanPeriod)),
		observable.WithCommandLogging[checkout.Command, checkout.Result](cfg.logger),
		observable.WithCommandContextualLogging[checkout.Command, checkout.Result](cfg.contextualLogger),
		observable.WithCommandMetrics[checkout.Command, checkout.Result](cfg.metricsCollector),
	)
	if err != nil {
		return Manager{}, err
	}

	checkIn, err := observable.NewCommandWrapper[checkin.Command, checkin.Result](
		checkin.NewCommandHandler(s),
		observable.WithCommandLogging[checkin.Command, checkin.Result](cfg.logger),
		observable.WithCommandContextualLogging[checkin.Command, checkin.Result](cfg.contextualLogger),
		observable.WithCommandMetrics[checkin.Command, checkin.Result](cfg.metricsCollector),
	)
	if err != nil {
		return Manager{}, err
	}

	availability, err := observable.NewQueryWrapper[availableinventory.Query, availableinventory.Result](
		availableinventory.NewQueryHandler(s),
		observable.WithQueryLogging[availableinventory.Query, availableinventory.Result](cfg.logger),
		observable.WithQueryContextualLogging[availableinventory.Query, availableinventory.Result](cfg.contextualLogger),
		observable.WithQueryMetrics[availableinventory.Query, availableinventory.Result](cfg.metricsCollector),
	)
	if err != nil {
		return Manager{}, err
	}

	overdue, err := observable.NewQueryWrapper[overduerentals.Query, overduerentals.Result](
		overduerentals.NewQueryHandler(s),
		observable.WithQueryLogging[overduerentals.Query, overduerentals.Result](cfg.logger),
		observable.WithQueryContextualLogging[overduerentals.Query, overduerentals.Result](cfg.contextualLogger),
		observable.WithQueryMetrics[overduerentals.Query, overduerentals.Result](cfg.metricsCollector),
	)
	if err != nil {
		return Manager{}, err
	}

	return Manager{
		checkOut:     checkOut,
		checkIn:      checkIn,
		availability: availability,
		overdue:      overdue,
		clock:        cfg.clock,
	}, nil
}

// CheckOut rents one copy of the video to the customer.
func (m Manager) CheckOut(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (checkout.Result, error) {
	return m.checkOut.Handle(ctx, checkout.BuildCommand(videoID, customerID, m.clock()))
}

// CheckIn closes the customer's oldest open rental of the video.
func (m Manager) CheckIn(ctx context.Context, videoID uuid.UUID, customerID uuid.UUID) (checkin.Result, error) {
	return m.checkIn.Handle(ctx, checkin.BuildCommand(videoID, customerID, m.clock()))
}

// AvailableInventory returns the video and how many of its copies can be checked out right now.
func (m Manager) AvailableInventory(ctx context.Context, videoID uuid.UUID) (availableinventory.Result, error) {
	return m.availability.Handle(ctx, availableinventory.BuildQuery(videoID))
}

// OverdueRentals returns the open rentals that are past their due date now.
func (m Manager) OverdueRentals(ctx context.Context) (overduerentals.Result, error) {
	return m.overdue.Handle(ctx, overduerentals.BuildQuery(m.clock()))
}
