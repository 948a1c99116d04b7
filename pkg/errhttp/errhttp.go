// Package errhttp maps domain errors to HTTP responses.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stuffkeeper/pkg/httpx"
	stuffdomain "github.com/ghuser/stuffkeeper/services/stuff/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Validation failures become 422 with the field-to-messages map as the body,
// e.g. {"name": ["can't be blank"]}; everything else becomes {"error": msg}.
// Uses errors.Is/As so wrapped errors are matched correctly.
// Unrecognized errors become 500 with a generic message so internal details
// never reach clients.
func WriteError(w http.ResponseWriter, err error) {
	var ve *stuffdomain.ValidationError
	if errors.As(err, &ve) {
		httpx.JSON(w, http.StatusUnprocessableEntity, ve.Fields)
		return
	}
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	httpx.JSONError(w, status, msg)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, stuffdomain.ErrStuffNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, stuffdomain.ErrTagNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, stuffdomain.ErrUnknownScope):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
