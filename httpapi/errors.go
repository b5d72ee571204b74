package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/videorental/rental/core"
)

const (
	logMsgRequestFailed = "http request failed"

	kindHTTP = "http"

	messageInternal = "internal error"
)

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// statusOf maps an error kind to the HTTP status code sent to the client.
func statusOf(kind core.ErrorKind) int {
	switch kind {
	case core.KindNotFound:
		return http.StatusNotFound
	case core.KindValidation, core.KindInventoryExhausted, core.KindNoOpenRental:
		return http.StatusBadRequest
	case core.KindEntityInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError implements echo.HTTPErrorHandler.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.errorResponse(err)

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(
			c.Request().Context(),
			logMsgRequestFailed,
			logAttrPath, c.Path(),
			logAttrRequestID, c.Response().Header().Get(echo.HeaderXRequestID),
			logAttrError, err.Error(),
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}

	if writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), logMsgRequestFailed, logAttrError, writeErr.Error())
	}
}

func (s *Server) errorResponse(err error) (int, errorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}

		kind := kindHTTP
		if httpErr.Code == http.StatusBadRequest {
			kind = string(core.KindValidation)
		}

		return httpErr.Code, errorResponse{Message: message, Kind: kind}
	}

	kind := core.KindOf(err)
	status := statusOf(kind)

	// Storage details stay in the logs.
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = messageInternal
	}

	return status, errorResponse{Message: message, Kind: string(kind)}
}
