// Package apperr defines the fixed error vocabulary of the service and
// how each kind renders at the HTTP boundary. Every failure a client
// can see is one of these kinds, serialized as {"message": "..."} with
// the kind's status code. Internal details never reach the response.
package apperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind classifies a request rejection or failure.
type Kind int

const (
	Unauthenticated Kind = iota // missing/invalid/expired token
	TenantRequired              // no tenant candidate on the request
	TenantMismatch              // resolved tenant conflicts with token claim
	TenantNotFound
	Forbidden // role not permitted
	NotFound  // resource absent or cross-tenant, indistinguishable
	Validation
	Internal
)

var statuses = map[Kind]int{
	Unauthenticated: http.StatusUnauthorized,
	TenantRequired:  http.StatusBadRequest,
	TenantMismatch:  http.StatusForbidden,
	TenantNotFound:  http.StatusNotFound,
	Forbidden:       http.StatusForbidden,
	NotFound:        http.StatusNotFound,
	Validation:      http.StatusBadRequest,
	Internal:        http.StatusInternalServerError,
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	if s, ok := statuses[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// JSON terminates the request with the kind's status and a
// human-readable message.
func JSON(c echo.Context, k Kind, message string) error {
	return c.JSON(k.Status(), echo.Map{"message": message})
}
