// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/familyhub/pkg/auth"
	"github.com/ghuser/familyhub/pkg/httpx"
	calendardomain "github.com/ghuser/familyhub/services/calendar/domain"
	familydomain "github.com/ghuser/familyhub/services/family/domain"
	grocerydomain "github.com/ghuser/familyhub/services/grocery/domain"
	listdomain "github.com/ghuser/familyhub/services/list/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become 500 with a generic message: internal details
// never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		httpx.JSONError(w, status, "internal server error")
		return
	}
	httpx.JSONError(w, status, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	// Absent, foreign, and malformed ids are indistinguishable on purpose:
	// a 404 never confirms that a resource exists in another family.
	case errors.Is(err, familydomain.ErrFamilyNotFound),
		errors.Is(err, familydomain.ErrMemberNotFound),
		errors.Is(err, listdomain.ErrListNotFound),
		errors.Is(err, listdomain.ErrListItemNotFound),
		errors.Is(err, grocerydomain.ErrGroceryItemNotFound),
		errors.Is(err, calendardomain.ErrEventNotFound),
		// A join code the caller typed but nobody owns is an absent resource,
		// not a malformed request.
		errors.Is(err, familydomain.ErrInvalidJoinCode):
		return http.StatusNotFound // 404

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrIdentityNotFound),
		errors.Is(err, familydomain.ErrInvalidCredentials):
		return http.StatusUnauthorized // 401

	case errors.Is(err, familydomain.ErrFamilyFull),
		errors.Is(err, familydomain.ErrEmailTaken):
		return http.StatusBadRequest // 400

	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, familydomain.ErrInvalidFamilyName),
		errors.Is(err, familydomain.ErrInvalidMemberName),
		errors.Is(err, listdomain.ErrInvalidListTitle),
		errors.Is(err, listdomain.ErrInvalidItemText),
		errors.Is(err, listdomain.ErrInvalidPriority),
		errors.Is(err, grocerydomain.ErrInvalidItemName),
		errors.Is(err, grocerydomain.ErrInvalidUnit),
		errors.Is(err, grocerydomain.ErrInvalidCategory),
		errors.Is(err, grocerydomain.ErrInvalidPriority),
		errors.Is(err, grocerydomain.ErrInvalidFrequency),
		errors.Is(err, calendardomain.ErrInvalidEventTitle),
		errors.Is(err, calendardomain.ErrInvalidTimeWindow),
		errors.Is(err, calendardomain.ErrInvalidCategory),
		errors.Is(err, calendardomain.ErrInvalidResponse),
		errors.Is(err, calendardomain.ErrInvalidReminder),
		errors.Is(err, calendardomain.ErrInvalidRecurrence):
		return http.StatusUnprocessableEntity // 422

	default:
		return http.StatusInternalServerError // 500
	}
}
