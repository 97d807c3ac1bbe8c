package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/cart"
	"tillpoint/internal/checkout"
	"tillpoint/internal/journal"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
	"tillpoint/internal/session"
	"tillpoint/internal/void"
)

// fail maps a workflow error onto an HTTP status. The sentinel taxonomy
// keeps this a lookup rather than string matching.
func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, checkout.ErrNoCashier):
		return http.StatusUnauthorized

	case errors.Is(err, void.ErrManagerRole),
		errors.Is(err, void.ErrSelfApproval):
		return http.StatusForbidden

	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, void.ErrNoTargetOrder),
		errors.Is(err, journal.ErrSaleNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound

	case errors.Is(err, void.ErrVoidInProgress),
		errors.Is(err, void.ErrSubmitInFlight),
		errors.Is(err, void.ErrNotAwaitingAuth),
		errors.Is(err, void.ErrNotAwaitingReason),
		errors.Is(err, void.ErrAlreadyVoided):
		return http.StatusConflict

	case errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, cart.ErrMissingProduct),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrNegativePrice),
		errors.Is(err, checkout.ErrUnknownMethod),
		errors.Is(err, void.ErrReasonRequired),
		errors.Is(err, void.ErrNoItemsResolved):
		return http.StatusBadRequest
	}

	if platform.IsAuthError(err) {
		return http.StatusUnauthorized
	}
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
