package core

import (
	"github.com/AntonStoeckl/videorental/store"
)

// Inventory is the availability of one video derived from its rentals.
type Inventory struct {
	Total       int
	OpenRentals int

	// Available is never negative. It is clamped to 0 when Inconsistent is set.
	Available int

	// Inconsistent reports that more rentals are open than copies exist.
	Inconsistent bool
}

// AvailableInventory counts the rentals of video that are still checked out and subtracts them
// from its total inventory. Rentals of other videos are ignored, so callers may pass a wider set.
func AvailableInventory(video store.Video, rentals store.Rentals) Inventory {
	open := 0
	for _, rental := range rentals {
		if rental.VideoID == video.ID && rental.IsCheckedOut {
			open++
		}
	}

	inventory := Inventory{
		Total:       video.TotalInventory,
		OpenRentals: open,
		Available:   video.TotalInventory - open,
	}

	if inventory.Available < 0 {
		inventory.Available = 0
		inventory.Inconsistent = true
	}

	return inventory
}
