package httpapi

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/videorental/rental/core"
)

// POST /rentals/check-out
func (s *Server) checkOut(c echo.Context) error {
	videoID, customerID, err := rentalIDs(c)
	if err != nil {
		return err
	}

	result, err := s.lifecycle.CheckOut(c.Request().Context(), videoID, customerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lifecycleResponse{
		Rental:                toRentalResponse(result.Rental),
		VideosCheckedOutCount: result.CustomerOpenRentals,
		AvailableInventory:    result.AvailableInventory,
	})
}

// POST /rentals/check-in
func (s *Server) checkIn(c echo.Context) error {
	videoID, customerID, err := rentalIDs(c)
	if err != nil {
		return err
	}

	result, err := s.lifecycle.CheckIn(c.Request().Context(), videoID, customerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lifecycleResponse{
		Rental:                toRentalResponse(result.Rental),
		VideosCheckedOutCount: result.CustomerOpenRentals,
		AvailableInventory:    result.AvailableInventory,
	})
}

// GET /rentals/overdue
func (s *Server) overdueRentals(c echo.Context) error {
	result, err := s.lifecycle.OverdueRentals(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOverdueResponses(result.Rentals))
}

func rentalIDs(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	var req rentalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	videoID, err := uuid.Parse(req.VideoID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: video_id must be a UUID", core.ErrValidation)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: customer_id must be a UUID", core.ErrValidation)
	}

	return videoID, customerID, nil
}
