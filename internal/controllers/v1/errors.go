package v1

import (
	"errors"
	"net/http"

	"github.com/churchops/backend/internal/httputil"
	"github.com/churchops/backend/internal/models"
)

// httpError is used for error responses that contain a body.
type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

var errMonthAndYearRequired = errors.New("the month and year query parameters must be set")

// status determines the appropriate status code for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError

	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, httputil.ErrRequestBodyEmpty):
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}
