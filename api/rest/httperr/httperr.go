// Package httperr maps dataset failures onto echo HTTP errors.
package httperr

import (
	"errors"
	"net/http"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/labstack/echo/v4"
)

// From converts err into the *echo.HTTPError a handler should return.
// Unknown records are 404, malformed requests 400, and addresses that
// do not resolve 422. Anything else is an internal error.
func From(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dataset.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, dataset.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, dataset.ErrResolution):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// BadRequest reports a body or parameter the handler could not read.
func BadRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "bad request").SetInternal(err)
}
