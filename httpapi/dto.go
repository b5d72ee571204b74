package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/videorental/rental/features/overduerentals"
	"github.com/AntonStoeckl/videorental/store"
)

type videoRequest struct {
	Title          string `json:"title" validate:"required"`
	ReleaseDate    string `json:"release_date" validate:"required,datetime=2006-01-02"`
	TotalInventory *int   `json:"total_inventory" validate:"required,gte=0"`
}

func (r videoRequest) toVideo(id uuid.UUID) store.Video {
	video := store.BuildVideo(r.Title, r.ReleaseDate, *r.TotalInventory)
	video.ID = id

	return video
}

type customerRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

func (r customerRequest) toCustomer(id uuid.UUID) store.Customer {
	customer := store.BuildCustomer(r.Name, r.Phone, r.PostalCode, time.Time{})
	customer.ID = id

	return customer
}

type rentalRequest struct {
	VideoID    string `json:"video_id" validate:"required,uuid"`
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

type idResponse struct {
	ID uuid.UUID `json:"id"`
}

type videoResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	ReleaseDate        string    `json:"release_date"`
	TotalInventory     int       `json:"total_inventory"`
	AvailableInventory *int      `json:"available_inventory,omitempty"`
}

func toVideoResponse(video store.Video) videoResponse {
	return videoResponse{
		ID:             video.ID,
		Title:          video.Title,
		ReleaseDate:    video.ReleaseDate,
		TotalInventory: video.TotalInventory,
	}
}

type customerResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Phone                 string    `json:"phone"`
	PostalCode            string    `json:"postal_code"`
	RegisteredAt          time.Time `json:"registered_at"`
	VideosCheckedOutCount *int      `json:"videos_checked_out_count,omitempty"`
}

func toCustomerResponse(customer store.Customer) customerResponse {
	return customerResponse{
		ID:           customer.ID,
		Name:         customer.Name,
		Phone:        customer.Phone,
		PostalCode:   customer.PostalCode,
		RegisteredAt: customer.RegisteredAt,
	}
}

type rentalResponse struct {
	ID           uuid.UUID  `json:"id"`
	VideoID      uuid.UUID  `json:"video_id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CheckedOutAt time.Time  `json:"checked_out_at"`
	DueDate      time.Time  `json:"due_date"`
	IsCheckedOut bool       `json:"is_checked_out"`
	CheckedInAt  *time.Time `json:"checked_in_at"`
}

func toRentalResponse(rental store.Rental) rentalResponse {
	return rentalResponse{
		ID:           rental.ID,
		VideoID:      rental.VideoID,
		CustomerID:   rental.CustomerID,
		CheckedOutAt: rental.CheckedOutAt,
		DueDate:      rental.DueDate,
		IsCheckedOut: rental.IsCheckedOut,
		CheckedInAt:  rental.CheckedInAt,
	}
}

func toRentalResponses(rentals store.Rentals) []rentalResponse {
	out := make([]rentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		out = append(out, toRentalResponse(rental))
	}

	return out
}

// lifecycleResponse is the body of check-out and check-in.
type lifecycleResponse struct {
	Rental                rentalResponse `json:"rental"`
	VideosCheckedOutCount int            `json:"videos_checked_out_count"`
	AvailableInventory    int            `json:"available_inventory"`
}

type overdueResponse struct {
	RentalID     uuid.UUID `json:"rental_id"`
	VideoID      uuid.UUID `json:"video_id"`
	Title        string    `json:"title"`
	CustomerID   uuid.UUID `json:"customer_id"`
	Name         string    `json:"name"`
	PostalCode   string    `json:"postal_code"`
	CheckedOutAt time.Time `json:"checked_out_at"`
	DueDate      time.Time `json:"due_date"`
	DaysOverdue  int       `json:"days_overdue"`
}

func toOverdueResponses(rentals []overduerentals.OverdueRental) []overdueResponse {
	out := make([]overdueResponse, 0, len(rentals))
	for _, overdue := range rentals {
		out = append(out, overdueResponse{
			RentalID:     overdue.Rental.ID,
			VideoID:      overdue.Rental.VideoID,
			Title:        overdue.Title,
			CustomerID:   overdue.Rental.CustomerID,
			Name:         overdue.CustomerName,
			PostalCode:   overdue.CustomerPostalCode,
			CheckedOutAt: overdue.Rental.CheckedOutAt,
			DueDate:      overdue.Rental.DueDate,
			DaysOverdue:  int(overdue.OverdueBy / (24 * time.Hour)),
		})
	}

	return out
}
