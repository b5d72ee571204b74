package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	logMsgRequest = "http request"

	logAttrMethod    = "method"
	logAttrPath      = "path"
	logAttrStatus    = "status"
	logAttrLatencyMS = "latency_ms"
	logAttrRequestID = "request_id"
	logAttrError     = "error"
)

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.requestLogger())
}

// requestLogger renders the error itself so the logged status is the one sent to the client.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			s.logger.InfoContext(
				c.Request().Context(),
				logMsgRequest,
				logAttrMethod, c.Request().Method,
				logAttrPath, c.Path(),
				logAttrStatus, c.Response().Status,
				logAttrLatencyMS, float64(time.Since(start).Nanoseconds())/1e6,
				logAttrRequestID, c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}
