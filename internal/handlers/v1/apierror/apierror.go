// Package apierror translates engine failures into HTTP errors.
package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/engine"
)

// FromEngine maps an engine error onto the HTTP status the API contract
// promises. Anything outside the taxonomy is reported as a generic internal
// failure so storage details never leak to clients.
func FromEngine(err error) error {
	switch {
	case errors.Is(err, engine.ErrMissingField):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrInvalidAmount):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrForbidden):
		return huma.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrTypeMismatch):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrInsufficientBalance):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrConflict):
		return huma.NewError(http.StatusConflict, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, "internal failure", err)
	}
}
