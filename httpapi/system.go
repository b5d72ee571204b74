package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/videorental/oteladapters"
)

type healthResponse struct {
	Status string `json:"status"`
}

// GET /health
func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// GET /metrics
func (s *Server) metrics(c echo.Context) error {
	if s.metricsReader == nil {
		return echo.NewHTTPError(http.StatusNotFound, "metrics are disabled")
	}

	points, err := oteladapters.Snapshot(c.Request().Context(), s.metricsReader)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, points)
}
