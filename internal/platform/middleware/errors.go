package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ward/ward/pkg/apperr"
)

// domainError returns the apperr failure carried by err, looking through
// an HTTPError's internal error, or nil.
func domainError(err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var ie *apperr.IntegrityError
	if errors.As(err, &ie) {
		return ie
	}
	return nil
}

// StatusOf returns the HTTP status a handler error is answered with.
// Validation failures map to 400 and integrity failures to 409, even when
// wrapped in an HTTPError with another code.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	switch domainError(err).(type) {
	case *apperr.ValidationError:
		return http.StatusBadRequest
	case *apperr.IntegrityError:
		return http.StatusConflict
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// ErrorHandler answers domain errors with their mapped status and message
// and defers everything else to echo's default handler.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if d := domainError(err); d != nil {
			err = echo.NewHTTPError(StatusOf(d), d.Error()).SetInternal(d)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
