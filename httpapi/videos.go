package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// POST /videos
func (s *Server) createVideo(c echo.Context) error {
	var req videoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	video, err := s.store.CreateVideo(c.Request().Context(), req.toVideo(uuid.Nil))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toVideoResponse(video))
}

// GET /videos
func (s *Server) listVideos(c echo.Context) error {
	videos, err := s.store.ListVideos(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]videoResponse, 0, len(videos))
	for _, video := range videos {
		out = append(out, toVideoResponse(video))
	}

	return c.JSON(http.StatusOK, out)
}

// GET /videos/:id
func (s *Server) getVideo(c echo.Context) error {
	id, err := idParam(c, "video")
	if err != nil {
		return err
	}

	result, err := s.lifecycle.AvailableInventory(c.Request().Context(), id)
	if err != nil {
		return err
	}

	out := toVideoResponse(result.Video)
	available := result.Inventory.Available
	out.AvailableInventory = &available

	return c.JSON(http.StatusOK, out)
}

// PUT /videos/:id
func (s *Server) updateVideo(c echo.Context) error {
	id, err := idParam(c, "video")
	if err != nil {
		return err
	}

	var req videoRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	video := req.toVideo(id)
	if err = s.store.UpdateVideo(c.Request().Context(), video); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toVideoResponse(video))
}

// DELETE /videos/:id
func (s *Server) deleteVideo(c echo.Context) error {
	id, err := idParam(c, "video")
	if err != nil {
		return err
	}

	if err = s.store.DeleteVideo(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, idResponse{ID: id})
}

// GET /videos/:id/rentals
func (s *Server) videoRentals(c echo.Context) error {
	id, err := idParam(c, "video")
	if err != nil {
		return err
	}

	if _, err = s.store.GetVideo(c.Request().Context(), id); err != nil {
		return err
	}

	rentals, err := s.store.RentalsForVideo(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRentalResponses(rentals))
}
