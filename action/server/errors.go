package server

import (
	"errors"
	"net/http"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
)

func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, contractx.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, contractx.ErrMissingAction),
		errors.Is(err, contractx.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error, action string) string {
	switch {
	case errors.Is(err, contractx.ErrUnknownAction):
		return "No registered action found for name '" + action + "'."
	case errors.Is(err, contractx.ErrMissingAction):
		return "No action name given."
	case errors.Is(err, contractx.ErrInvalidRequest):
		return "Invalid action request."
	default:
		return "Internal error."
	}
}
