package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"confidencevoice/internal/analysis"
	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ok writes the success envelope: {"success": true, "message": ..., ...data}.
func ok(c echo.Context, status int, message string, data echo.Map) error {
	body := echo.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	return c.JSON(status, body)
}

func failMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// fail maps a service error onto a status code and the error envelope.
func fail(c echo.Context, err error) error {
	var verr *service.ValidationError
	var dup *service.DuplicateCheckoutError
	var svcErr *analysis.ServiceError

	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": verr.Error(), "errors": verr.Fields})
	case errors.Is(err, service.ErrValidation):
		return failMessage(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return failMessage(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return failMessage(c, http.StatusForbidden, "You are not allowed to access this resource")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, analysis.ErrUnknownService):
		return failMessage(c, http.StatusNotFound, "Resource not found")
	case errors.As(err, &dup):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": dup.Error(), "order_id": dup.OrderID})
	case errors.Is(err, service.ErrConflict):
		return failMessage(c, http.StatusConflict, err.Error())
	case errors.As(err, &svcErr):
		status := svcErr.StatusCode
		if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		return failMessage(c, status, svcErr.Message)
	default:
		logger.Error().Err(err).Msgf("%s %s failed", c.Request().Method, c.Path())
		return failMessage(c, http.StatusInternalServerError, "Database error")
	}
}

// intParam parses a positive path parameter. The error renders as a 400 through fail.
func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, &service.ValidationError{Message: "Invalid " + name}
	}
	return v, nil
}

func invalidPayload(c echo.Context) error {
	return failMessage(c, http.StatusBadRequest, "Invalid request payload")
}
