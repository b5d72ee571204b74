package store

import (
	"time"

	"github.com/google/uuid"
)

// ReleaseDateLayout is the calendar date format used for Video.ReleaseDate.
const ReleaseDateLayout = "2006-01-02"

// Videos is an alias type for a slice of Video.
type Videos = []Video

// Customers is an alias type for a slice of Customer.
type Customers = []Customer

// Rentals is an alias type for a slice of Rental.
type Rentals = []Rental

// Video is a title the store owns TotalInventory physical copies of.
type Video struct {
	ID             uuid.UUID
	Title          string
	ReleaseDate    string
	TotalInventory int
}

// Customer is a registered customer of the store.
type Customer struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	PostalCode   string
	RegisteredAt time.Time
}

// Rental is the historical record of one copy of a Video being checked out by a Customer.
//
// A Rental is created by a checkout with IsCheckedOut = true and is closed by exactly one checkin
// which flips IsCheckedOut to false and sets CheckedInAt. Rentals are never deleted.
type Rental struct {
	ID           uuid.UUID
	VideoID      uuid.UUID
	CustomerID   uuid.UUID
	CheckedOutAt time.Time
	DueDate      time.Time
	IsCheckedOut bool
	CheckedInAt  *time.Time
}

// ToStoredTime normalizes a time the way the store persists it: UTC with microsecond precision.
func ToStoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// BuildVideo creates a Video without an ID. The store assigns the ID on create.
func BuildVideo(title string, releaseDate string, totalInventory int) Video {
	return Video{
		Title:          title,
		ReleaseDate:    releaseDate,
		TotalInventory: totalInventory,
	}
}

// BuildCustomer creates a Customer without an ID. The store assigns ID and RegisteredAt on create
// unless registeredAt is non-zero.
func BuildCustomer(name string, phone string, postalCode string, registeredAt time.Time) Customer {
	return Customer{
		Name:         name,
		Phone:        phone,
		PostalCode:   postalCode,
		RegisteredAt: registeredAt,
	}
}

// BuildOpenRental creates a new, checked out Rental without an ID.
func BuildOpenRental(videoID uuid.UUID, customerID uuid.UUID, checkedOutAt time.Time, dueDate time.Time) Rental {
	return Rental{
		VideoID:      videoID,
		CustomerID:   customerID,
		CheckedOutAt: ToStoredTime(checkedOutAt),
		DueDate:      ToStoredTime(dueDate),
		IsCheckedOut: true,
	}
}

// Closed returns a copy of the Rental checked in at the given time.
func (r Rental) Closed(checkedInAt time.Time) Rental {
	closedAt := ToStoredTime(checkedInAt)
	r.IsCheckedOut = false
	r.CheckedInAt = &closedAt

	return r
}

// IsOverdueAt reports whether an open rental is past its due date at the given time.
func (r Rental) IsOverdueAt(t time.Time) bool {
	return r.IsCheckedOut && r.DueDate.Before(t)
}
